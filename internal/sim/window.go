//go:build !test
// +build !test

package sim

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Run drives the simulator from a glfw window until it is closed. Simulation
// runs at the fixed UPS from Config; rendering interpolates between ticks.
func (s *Simulator) Run(window *glfw.Window) error {
	input := NewInputHandler()
	input.SetupCallbacks(window)

	renderer, err := NewRenderer(s.scene.PostProcess)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	hudRenderer, err := NewHUDRenderer()
	if err != nil {
		return err
	}
	defer hudRenderer.Delete()

	var audio *AudioSystem
	if s.cfg.Audio {
		audio, err = NewAudioSystem()
		if err != nil {
			// The simulator is usable without sound.
			s.log.Warn("audio disabled", "err", err)
		} else {
			defer audio.Close()
			s.AttachEngine(audio.Engine())
		}
	}

	printControls()
	s.log.Info("simulator started", "scene", s.scene.Name, "ups", s.cfg.UPS, "postprocess", s.scene.PostProcess, "camera", s.mode)
	input.SetCaptured(window, s.mode == FreeFlyCamera)

	var (
		hud       HUD
		hudOn     = true
		muted     bool
		fps       float64
		telemetry float64
		clock     = FixedStep{Target: s.TickInterval(), MaxSteps: s.cfg.MaxSubSteps}
		prev      = time.Now()
	)

	for !window.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		if dt := frame.Seconds(); dt > 0 {
			fps = fps*0.9 + (1/dt)*0.1
		}

		if input.WasKeyPressed(glfw.KeyEscape) {
			window.SetShouldClose(true)
		}
		if input.WasKeyPressed(glfw.KeyN) {
			s.daylight.Darker()
		}
		if input.WasKeyPressed(glfw.KeyM) {
			s.daylight.Lighter()
		}
		if input.WasKeyPressed(glfw.KeyF1) {
			hudOn = !hudOn
		}
		if input.WasKeyPressed(glfw.KeyP) {
			renderer.SetPostProcess(!renderer.PostProcess())
		}
		if input.WasKeyPressed(glfw.KeyR) {
			s.Reset()
			input.SetCaptured(window, s.mode == FreeFlyCamera)
			s.log.Info("reset")
		}
		if input.WasKeyPressed(glfw.KeyC) {
			mode := s.ToggleCamera()
			input.SetCaptured(window, mode == FreeFlyCamera)
			s.log.Info("camera", "mode", mode)
		}
		if input.WasKeyPressed(glfw.KeyV) && audio != nil {
			muted = !muted
			audio.SetMuted(muted)
		}

		free := s.mode == FreeFlyCamera
		if free {
			input.ApplyFreeCamera(&s.free)
			s.Fly(input.FlyKeys(), frame)
		} else if input.ApplyCamera(&s.rig) {
			s.Rederive()
		}

		steps, alpha := clock.Advance(frame)
		keys := input.Keys(!free)
		for i := 0; i < steps; i++ {
			s.Step(keys)
		}

		width, height := window.GetFramebufferSize()
		plane, camera := s.Interpolated(alpha)
		f := Frame{
			Scene:    s.scene,
			Plane:    plane,
			Camera:   camera,
			Daylight: s.daylight,
			Width:    width,
			Height:   height,
		}
		// Minimized windows report a zero framebuffer; keep simulating and
		// polling but draw nothing.
		if f.Visible() {
			if err := renderer.Render(f); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if hudOn {
				hud.Begin(width, height)
				hud.DrawFlightPanel(s.Telemetry(), fps)
				hudRenderer.Flush(&hud)
			}
		}

		telemetry += frame.Seconds()
		if telemetry >= 2.0 {
			s.log.Info("telemetry", "status", s.Telemetry().String())
			telemetry = 0
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func printControls() {
	fmt.Println("=== FLIGHT SIMULATOR ===")
	fmt.Println("  W/Up    - Throttle up (climb above 50%)")
	fmt.Println("  S/Down  - Throttle down")
	fmt.Println("  A/D     - Turn left/right")
	fmt.Println("  Right mouse drag - Look around, Scroll - Zoom")
	fmt.Println("  C       - Free camera (arrows move, mouse looks)")
	fmt.Println("  N/M     - Darker/Lighter")
	fmt.Println("  P - Post-process pass  F1 - HUD  V - Mute  R - Reset  Esc - Quit")
	fmt.Println()
}
