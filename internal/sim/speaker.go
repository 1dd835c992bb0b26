//go:build !test
// +build !test

package sim

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// AudioSystem plays the engine hum on the default output device.
type AudioSystem struct {
	engine *EngineHum
	ctrl   *beep.Ctrl
	closed bool
}

func NewAudioSystem() (*AudioSystem, error) {
	if err := speaker.Init(EngineSampleRate, EngineSampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio init: %w", err)
	}
	engine := NewEngineHum(EngineSampleRate)
	volume := &effects.Volume{Streamer: engine, Base: 2, Volume: -1}
	ctrl := &beep.Ctrl{Streamer: volume}
	speaker.Play(ctrl)
	return &AudioSystem{engine: engine, ctrl: ctrl}, nil
}

func (a *AudioSystem) Engine() *EngineHum { return a.engine }

// SetMuted pauses the hum without tearing down the device.
func (a *AudioSystem) SetMuted(muted bool) {
	if a == nil || a.closed {
		return
	}
	speaker.Lock()
	a.ctrl.Paused = muted
	speaker.Unlock()
}

func (a *AudioSystem) Close() {
	if a == nil || a.closed {
		return
	}
	speaker.Clear()
	speaker.Close()
	a.closed = true
}
