package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Simulator owns the single plane/camera pair and everything that feeds the
// per-tick update. The windowed, headless and terminal front ends all drive it
// through Step.
type Simulator struct {
	cfg   Config
	scene Scene
	log   *slog.Logger

	plane      PlaneState
	camera     CameraState
	prevPlane  PlaneState
	prevCamera CameraState

	rig      CameraRig
	free     FreeCamera
	mode     CameraMode
	initMode CameraMode
	controls Controls
	daylight Daylight
	tick     uint64

	engine *EngineHum
}

func NewSimulator(cfg Config, logger *slog.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulator config: %w", err)
	}
	scene, err := SceneByName(cfg.Scene)
	if err != nil {
		return nil, err
	}
	if cfg.PostProcess {
		scene.PostProcess = true
	}
	if logger == nil {
		logger = slog.Default()
	}

	initMode := FollowCamera
	if scene.FreeFly {
		initMode = FreeFlyCamera
	}
	if cfg.Camera != "" {
		if initMode, err = ParseCameraMode(cfg.Camera); err != nil {
			return nil, err
		}
	}

	s := &Simulator{
		cfg:      cfg,
		scene:    scene,
		log:      logger,
		initMode: initMode,
	}
	s.Reset()
	return s, nil
}

// Reset puts the plane back at the origin with the throttle closed.
func (s *Simulator) Reset() {
	s.plane = NewPlane()
	s.rig = NewCameraRig()
	s.free = NewFreeCamera()
	s.mode = s.initMode
	s.camera = s.rig.Follow(s.plane)
	s.prevPlane, s.prevCamera = s.plane, s.camera
	s.controls.Reset()
	s.daylight = NewDaylight()
	s.tick = 0
}

// AttachEngine routes the throttle to an engine hum after every step.
func (s *Simulator) AttachEngine(e *EngineHum) { s.engine = e }

// Step runs one fixed tick with the given key levels.
func (s *Simulator) Step(keys KeyState) {
	s.prevPlane, s.prevCamera = s.plane, s.camera

	input := s.controls.Step(keys, s.plane.Airborne())
	s.plane, s.camera = Tick(s.plane, input, s.rig)
	s.tick++

	if s.engine != nil {
		s.engine.SetSpeed(s.plane.Speed)
	}
}

// RunHeadless steps with the same keys held until steps ticks have run or
// ctx is done. It returns the number of ticks performed.
func (s *Simulator) RunHeadless(ctx context.Context, steps int, keys KeyState) int {
	performed := 0
	for performed < steps {
		if ctx.Err() != nil {
			break
		}
		s.Step(keys)
		performed++
	}
	return performed
}

// RunScript plays a control script to the end, logging telemetry every
// logEvery ticks when logEvery > 0.
func (s *Simulator) RunScript(ctx context.Context, script Script, logEvery int) int {
	performed := 0
	for {
		keys, ok := script.KeysAt(performed)
		if !ok || ctx.Err() != nil {
			break
		}
		s.Step(keys)
		performed++
		if logEvery > 0 && performed%logEvery == 0 {
			s.log.Info("telemetry", "status", s.Telemetry().String())
		}
	}
	return performed
}

// Fly moves the free camera for one rendered frame. It does nothing in
// follow mode.
func (s *Simulator) Fly(keys FlyKeys, frame time.Duration) {
	if s.mode == FreeFlyCamera {
		s.free.Move(keys, frame.Seconds())
	}
}

func (s *Simulator) CameraMode() CameraMode      { return s.mode }
func (s *Simulator) SetCameraMode(m CameraMode) { s.mode = m }

// ToggleCamera switches between the follow and free cameras and returns the
// new mode.
func (s *Simulator) ToggleCamera() CameraMode {
	if s.mode == FollowCamera {
		s.mode = FreeFlyCamera
	} else {
		s.mode = FollowCamera
	}
	return s.mode
}

// Interpolated blends the last two ticks for rendering between updates. In
// free mode the camera is the free camera as it stands.
func (s *Simulator) Interpolated(alpha float64) (PlaneState, CameraState) {
	alpha = clamp(alpha, 0, 1)
	plane := s.plane
	plane.Position = lerpVec(s.prevPlane.Position, s.plane.Position, alpha)
	plane.Rotation = lerpVec(s.prevPlane.Rotation, s.plane.Rotation, alpha)

	camera := s.camera
	camera.Position = lerpVec(s.prevCamera.Position, s.camera.Position, alpha)
	camera.Yaw = s.prevCamera.Yaw + (s.camera.Yaw-s.prevCamera.Yaw)*alpha
	if s.mode == FreeFlyCamera {
		camera = s.free.State()
	}
	return plane, camera
}

func lerpVec(a, b Vec3, t float64) Vec3 { return a.Add(b.Sub(a).Mul(t)) }

// Rederive recomputes the camera after the rig changed between ticks.
func (s *Simulator) Rederive() { s.camera = s.rig.Follow(s.plane) }

func (s *Simulator) Plane() PlaneState   { return s.plane }
// Camera is the active camera: the follow camera derived by the last tick, or
// the free camera.
func (s *Simulator) Camera() CameraState {
	if s.mode == FreeFlyCamera {
		return s.free.State()
	}
	return s.camera
}

func (s *Simulator) FreeCamera() *FreeCamera { return &s.free }
func (s *Simulator) Rig() *CameraRig     { return &s.rig }
func (s *Simulator) Daylight() *Daylight { return &s.daylight }
func (s *Simulator) Scene() Scene        { return s.scene }
func (s *Simulator) Config() Config      { return s.cfg }
func (s *Simulator) Ticks() uint64       { return s.tick }
func (s *Simulator) Controls() Controls  { return s.controls }

func (s *Simulator) Telemetry() Telemetry {
	return NewTelemetry(s.tick, s.plane, s.daylight)
}

// TickInterval is the wall-clock length of one fixed update.
func (s *Simulator) TickInterval() time.Duration {
	return time.Second / time.Duration(s.cfg.UPS)
}

// FixedStep is the render-loop accumulator: wall-clock frame time goes in,
// a number of fixed ticks and an interpolation factor come out.
type FixedStep struct {
	Target   time.Duration
	MaxSteps int
	acc      time.Duration
}

// Advance adds one frame of wall time. Frames longer than a quarter second are
// clamped so a stall cannot queue an unbounded catch-up.
func (f *FixedStep) Advance(frame time.Duration) (steps int, alpha float64) {
	if frame > time.Second/4 {
		frame = time.Second / 4
	}
	if frame < 0 {
		frame = 0
	}
	f.acc += frame
	for f.acc >= f.Target && steps < f.MaxSteps {
		f.acc -= f.Target
		steps++
	}
	if steps == f.MaxSteps && f.acc > f.Target {
		// Drop the backlog we refused to simulate.
		f.acc = f.Target
	}
	alpha = float64(f.acc) / float64(f.Target)
	return steps, clamp(alpha, 0, 1)
}
