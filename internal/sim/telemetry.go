package sim

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Telemetry is a read-only snapshot for logs, the HUD and the cockpit.
type Telemetry struct {
	Tick      uint64
	Position  Vec3
	Heading   float64 // degrees in [0, 360)
	Throttle  float64 // percent
	Momentum  float64
	GroundSpd float64 // world units per tick
	Airborne  bool
	Daylight  float64
}

// NormalizeHeading wraps a yaw in degrees into [0, 360). Only used for display;
// the flight model keeps the unwrapped yaw.
func NormalizeHeading(yaw float64) float64 {
	h := math.Mod(yaw, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func NewTelemetry(tick uint64, plane PlaneState, daylight Daylight) Telemetry {
	return Telemetry{
		Tick:      tick,
		Position:  plane.Position,
		Heading:   NormalizeHeading(plane.Rotation.Y),
		Throttle:  plane.Speed * 100,
		Momentum:  plane.Momentum,
		GroundSpd: plane.Speed * plane.Momentum * ForwardGain,
		Airborne:  plane.Airborne(),
		Daylight:  daylight.Level,
	}
}

func (t Telemetry) Status() string {
	if t.Airborne {
		return "AIRBORNE"
	}
	return "GROUND"
}

// FormatDigits rounds v to at most digits decimals and drops trailing zeros.
// humanize.FtoaWithDigits truncates, so the rounding happens here first.
func FormatDigits(v float64, digits int) string {
	p := math.Pow(10, float64(digits))
	r := math.Round(v*p) / p
	if r == 0 {
		r = 0 // no "-0"
	}
	return humanize.FtoaWithDigits(r, digits)
}

func (t Telemetry) String() string {
	var b strings.Builder
	b.WriteString("tick ")
	b.WriteString(humanize.Comma(int64(t.Tick)))
	b.WriteString(" | ")
	b.WriteString(t.Status())
	b.WriteString(" | alt ")
	b.WriteString(FormatDigits(t.Position.Y, 1))
	b.WriteString(" | hdg ")
	b.WriteString(FormatDigits(t.Heading, 1))
	b.WriteString(" | thr ")
	b.WriteString(FormatDigits(t.Throttle, 1))
	b.WriteString("% | mom ")
	b.WriteString(FormatDigits(t.Momentum, 3))
	b.WriteString(" | pos ")
	b.WriteString(humanize.Commaf(math.Round(t.Position.X)))
	b.WriteString(", ")
	b.WriteString(humanize.Commaf(math.Round(t.Position.Z)))
	return b.String()
}
