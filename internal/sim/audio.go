package sim

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
)

const (
	EngineSampleRate = beep.SampleRate(44100)

	engineIdleHz = 55.0
	engineSpanHz = 165.0
	engineIdle   = 0.05
	engineSpan   = 0.25
)

// EngineHum is an endless streamer whose pitch and loudness follow the
// throttle. SetSpeed may be called from the simulation goroutine while the
// speaker goroutine streams.
type EngineHum struct {
	sr    beep.SampleRate
	speed atomic.Uint64 // math.Float64bits of the throttle
	phase float64
	gain  float64 // smoothed, touched only by Stream
}

func NewEngineHum(sr beep.SampleRate) *EngineHum {
	return &EngineHum{sr: sr, gain: engineIdle}
}

func (e *EngineHum) SetSpeed(speed float64) {
	e.speed.Store(math.Float64bits(clamp(speed, 0, 1)))
}

func (e *EngineHum) Speed() float64 { return math.Float64frombits(e.speed.Load()) }

// Frequency is the fundamental in Hz for the current throttle.
func (e *EngineHum) Frequency() float64 { return engineIdleHz + engineSpanHz*e.Speed() }

// TargetGain is the loudness the hum settles to for the current throttle.
func (e *EngineHum) TargetGain() float64 { return engineIdle + engineSpan*e.Speed() }

func (e *EngineHum) Stream(samples [][2]float64) (n int, ok bool) {
	freq := e.Frequency()
	target := e.TargetGain()
	step := freq / float64(e.sr)
	for i := range samples {
		// One-pole smoothing so throttle changes do not click.
		e.gain += (target - e.gain) * 0.0005
		fundamental := math.Sin(2 * math.Pi * e.phase)
		harmonic := 0.35 * math.Sin(4*math.Pi*e.phase)
		v := e.gain * (fundamental + harmonic) / 1.35
		samples[i][0] = v
		samples[i][1] = v
		e.phase += step
		if e.phase >= 1 {
			e.phase -= math.Floor(e.phase)
		}
	}
	return len(samples), true
}

func (e *EngineHum) Err() error { return nil }
