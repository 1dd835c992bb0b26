package sim

import "math"

const (
	DefaultDaylight = 0.6
	daylightStep    = 0.05
	minDaylight     = 0.2
	maxDaylight     = 0.9

	daylightEpsilon = 1e-9
)

// Daylight is the scene light level stepped by the hour keys.
type Daylight struct {
	Level float64
}

func NewDaylight() Daylight { return Daylight{Level: DefaultDaylight} }

func (d *Daylight) Darker() {
	if d.Level > minDaylight+daylightEpsilon {
		d.Level = snapDaylight(d.Level - daylightStep)
	}
}

func (d *Daylight) Lighter() {
	if d.Level < maxDaylight-daylightEpsilon {
		d.Level = snapDaylight(d.Level + daylightStep)
	}
}

// ClearColor is the sky color for the current level.
func (d Daylight) ClearColor() [3]float32 {
	half := float32(d.Level / 2)
	return [3]float32{0.07 + half - 0.1, 0.13 + half - 0.1, 0.17 + half - 0.1}
}

func (d Daylight) LightColor() [3]float32 {
	l := float32(d.Level)
	return [3]float32{l, l, l}
}

// snapDaylight keeps the level on the 0.05 grid so repeated steps stop exactly
// at the bounds.
func snapDaylight(v float64) float64 {
	return math.Round(v/daylightStep) * daylightStep
}
