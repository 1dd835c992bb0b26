package sim_test

import (
	"math"
	"math/rand"
	"testing"

	sim "flight-simulator/internal/sim"
)

const eps = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestNewPlane(t *testing.T) {
	p := sim.NewPlane()
	if p.Position != (sim.Vec3{}) {
		t.Fatalf("expected origin, got %+v", p.Position)
	}
	if p.Speed != 0 {
		t.Fatalf("expected speed 0, got %v", p.Speed)
	}
	if p.Yaw() != sim.InitialYaw {
		t.Fatalf("expected yaw %v, got %v", sim.InitialYaw, p.Yaw())
	}
	if p.Airborne() {
		t.Fatalf("new plane should be on the ground")
	}
}

func TestDragDecaysTowardZero(t *testing.T) {
	rig := sim.NewCameraRig()
	for i := 0; i <= 20; i++ {
		speed := float64(i) / 20
		for _, alt := range []float64{0, 50} {
			p := sim.NewPlane()
			p.Speed = speed
			p.Position.Y = alt
			next, _ := sim.Tick(p, sim.InputState{}, rig)
			if speed == 0 {
				if next.Speed != 0 {
					t.Fatalf("speed 0 should stay 0, got %v", next.Speed)
				}
				continue
			}
			if next.Speed >= speed || next.Speed < 0 {
				t.Fatalf("speed %v alt %v: expected decay toward 0, got %v", speed, alt, next.Speed)
			}
		}
	}
}

func TestThrottleRates(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	p.Speed = 0.5

	up, _ := sim.Tick(p, sim.InputState{ThrottleUp: true}, rig)
	down, _ := sim.Tick(p, sim.InputState{ThrottleDown: true}, rig)
	drag, _ := sim.Tick(p, sim.InputState{}, rig)

	if !near(up.Speed-0.5, sim.ThrottleIncrement, eps) {
		t.Fatalf("throttle up: got %v", up.Speed)
	}
	if !near(0.5-down.Speed, sim.BrakeDecrement, eps) {
		t.Fatalf("throttle down: got %v", down.Speed)
	}
	if !near(0.5-drag.Speed, sim.DragDecrement, eps) {
		t.Fatalf("drag: got %v", drag.Speed)
	}
	if !(sim.BrakeDecrement > sim.ThrottleIncrement && sim.ThrottleIncrement > sim.DragDecrement) {
		t.Fatalf("rates must order brake > accelerate > drag")
	}
}

func TestThrottleUpRampFromZero(t *testing.T) {
	rig := sim.NewCameraRig()
	for _, n := range []int{1, 10, 100, 625, 1250, 2000} {
		p := sim.NewPlane()
		for i := 0; i < n; i++ {
			p, _ = sim.Tick(p, sim.InputState{ThrottleUp: true}, rig)
		}
		want := math.Min(1, float64(n)*sim.ThrottleIncrement)
		if !near(p.Speed, want, 1e-9) {
			t.Fatalf("after %d ticks expected speed %v, got %v", n, want, p.Speed)
		}
	}
}

func TestAltitudeNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rig := sim.NewCameraRig()
	var controls sim.Controls
	p := sim.NewPlane()
	keys := sim.KeyState{}
	for i := 0; i < 20000; i++ {
		if i%90 == 0 {
			keys = sim.KeyState{
				ThrottleUp:   rng.Intn(2) == 0,
				ThrottleDown: rng.Intn(3) == 0,
				TurnLeft:     rng.Intn(3) == 0,
				TurnRight:    rng.Intn(3) == 0,
			}
		}
		p, _ = sim.Tick(p, controls.Step(keys, p.Airborne()), rig)
		if p.Position.Y < 0 {
			t.Fatalf("tick %d: negative altitude %v", i, p.Position.Y)
		}
		if p.Speed < 0 || p.Speed > 1 {
			t.Fatalf("tick %d: speed out of range %v", i, p.Speed)
		}
	}
}

func TestLevelSpeedHasNoPitch(t *testing.T) {
	rig := sim.NewCameraRig()

	p := sim.NewPlane()
	p.Speed = 0.5
	p.Rotation.Y = 0
	next, _ := sim.Tick(p, sim.InputState{}, rig)
	if next.DeltaAltitude != 0 {
		t.Fatalf("expected deltaAltitude 0, got %v", next.DeltaAltitude)
	}
	if next.Position.Y != 0 {
		t.Fatalf("expected no vertical displacement, got %v", next.Position.Y)
	}

	p.Position.Y = 40
	next, _ = sim.Tick(p, sim.InputState{}, rig)
	if next.DeltaAltitude != 0 {
		t.Fatalf("airborne: expected deltaAltitude 0, got %v", next.DeltaAltitude)
	}
	if next.Rotation.X != 0 || next.Rotation.Z != 0 {
		t.Fatalf("expected level attitude, got %+v", next.Rotation)
	}
	// Drag drops the throttle under level speed in the same tick, so an
	// idle plane at exactly level speed starts to sink: 40 -> 39.985.
	wantY := 40 + (0.5-sim.DragDecrement-sim.LevelFlightSpeed)*sim.DescentGain
	if !near(next.Position.Y, wantY, 1e-9) || !near(next.Position.Y, 39.985, 1e-9) {
		t.Fatalf("expected sink to %v, got %v", wantY, next.Position.Y)
	}
}

func TestClimbAndDescentGains(t *testing.T) {
	rig := sim.NewCameraRig()

	p := sim.NewPlane()
	p.Speed = 0.9
	climb, _ := sim.Tick(p, sim.InputState{ThrottleUp: true}, rig)
	wantClimb := (0.9 + sim.ThrottleIncrement - 0.5) * sim.ClimbGain
	if !near(climb.Position.Y, wantClimb, eps) {
		t.Fatalf("climb: expected %v, got %v", wantClimb, climb.Position.Y)
	}

	p = sim.NewPlane()
	p.Speed = 0.2
	p.Position.Y = 100
	sink, _ := sim.Tick(p, sim.InputState{}, rig)
	wantY := 100 + (0.2-sim.DragDecrement-0.5)*sim.DescentGain
	if !near(sink.Position.Y, wantY, eps) {
		t.Fatalf("descent: expected %v, got %v", wantY, sink.Position.Y)
	}
}

func TestGroundClamp(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	p.Speed = 0.1
	p.Position.Y = 3
	next, _ := sim.Tick(p, sim.InputState{ThrottleDown: true}, rig)
	if next.Position.Y != 0 {
		t.Fatalf("expected clamp to exactly 0, got %v", next.Position.Y)
	}

	// On the ground below level speed the plane taxis without sinking.
	next, _ = sim.Tick(next, sim.InputState{}, rig)
	if next.Position.Y != 0 {
		t.Fatalf("expected to stay on the ground, got %v", next.Position.Y)
	}
}

func TestFullThrottleForwardDisplacement(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	p.Speed = 1
	p.Rotation.Y = 0
	p.Position.Y = 100

	next, _ := sim.Tick(p, sim.InputState{ThrottleUp: true}, rig)

	// deltaAltitude 1 at cruise coupling gives a 25 degree pitch term,
	// quartered for a non-positive yaw.
	angle := sim.TurnAngle(sim.CruiseCoupling, 0, 0)
	if !near(angle, 6.25, eps) {
		t.Fatalf("expected angle 6.25, got %v", angle)
	}
	momentum := math.Abs(math.Cos(angle * math.Pi / 180))
	if !near(next.Momentum, momentum, eps) {
		t.Fatalf("expected momentum %v, got %v", momentum, next.Momentum)
	}
	if !near(next.Position.Z, 15*momentum, 1e-9) {
		t.Fatalf("expected z displacement %v, got %v", 15*momentum, next.Position.Z)
	}
	if !near(next.Position.X, 0, 1e-9) {
		t.Fatalf("expected no x displacement, got %v", next.Position.X)
	}
	if !near(next.Position.Y, 100+0.5*sim.ClimbGain, eps) {
		t.Fatalf("expected climb to %v, got %v", 100+0.5*sim.ClimbGain, next.Position.Y)
	}
}

func TestTurnAngleYawAsymmetry(t *testing.T) {
	if got := sim.TurnAngle(10, -5, 30); !near(got, 30, eps) {
		t.Fatalf("positive yaw: expected 30, got %v", got)
	}
	if got := sim.TurnAngle(10, -5, -30); !near(got, 3.75, eps) {
		t.Fatalf("negative yaw: expected 3.75, got %v", got)
	}
	if got := sim.TurnAngle(10, -5, 0); !near(got, 3.75, eps) {
		t.Fatalf("zero yaw: expected 3.75, got %v", got)
	}
}

func TestMomentum(t *testing.T) {
	if got := sim.Momentum(0); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := sim.Momentum(90); got > 1e-12 {
		t.Fatalf("expected ~0 at 90 degrees, got %v", got)
	}
	if got := sim.Momentum(180); !near(got, 1, eps) {
		t.Fatalf("expected 1 at 180 degrees, got %v", got)
	}
}

func TestGroundedPlaneIgnoresTilt(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	p.Speed = 0.3
	next, _ := sim.Tick(p, sim.InputState{TiltSpeed: sim.MaxTiltSpeed}, rig)
	if next.Rotation.X != 0 || next.Rotation.Z != 0 {
		t.Fatalf("expected no attitude on the ground, got %+v", next.Rotation)
	}
	if next.Momentum != 1 {
		t.Fatalf("expected full momentum on the ground, got %v", next.Momentum)
	}
}

func TestAirborneTiltStrafe(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	p.Speed = 0.5
	p.Rotation.Y = 90
	p.Position.Y = 50
	next, _ := sim.Tick(p, sim.InputState{ThrottleUp: true, TiltSpeed: 0.01}, rig)
	// deltaAltitude is 0, so only the strafe term tilts the plane.
	if !near(next.Rotation.X, -0.01*sim.StrafeGain, 1e-9) {
		t.Fatalf("expected x tilt %v, got %v", -0.01*sim.StrafeGain, next.Rotation.X)
	}
	if !near(next.Rotation.Z, 0, 1e-9) {
		t.Fatalf("expected no z tilt, got %v", next.Rotation.Z)
	}
}

func TestYawDeltaApplied(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	next, _ := sim.Tick(p, sim.InputState{YawDelta: 1.5}, rig)
	if next.Yaw() != sim.InitialYaw+1.5 {
		t.Fatalf("expected yaw %v, got %v", sim.InitialYaw+1.5, next.Yaw())
	}

	// Heading is applied after integration, so this tick still moves along
	// the old heading.
	p.Speed = 0.5
	p.Rotation.Y = 0
	next, _ = sim.Tick(p, sim.InputState{ThrottleUp: true, YawDelta: 45}, rig)
	if !near(next.Position.X, 0, 1e-9) || next.Position.Z <= 0 {
		t.Fatalf("expected travel along +z, got %+v", next.Position)
	}
}

func TestCameraYawTracksPlane(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rig := sim.NewCameraRig()
	var controls sim.Controls
	p := sim.NewPlane()
	for i := 0; i < 3000; i++ {
		if i%200 == 0 {
			rig.FollowOffset = rng.Float64()*360 - 180
		}
		keys := sim.KeyState{ThrottleUp: i < 1500, TurnLeft: i%400 < 150}
		var cam sim.CameraState
		p, cam = sim.Tick(p, controls.Step(keys, p.Airborne()), rig)
		want := -(p.Yaw() + rig.FollowOffset - 90)
		if cam.Yaw != want {
			t.Fatalf("tick %d: camera yaw %v, want %v", i, cam.Yaw, want)
		}
		if cam.Speed != p.Speed {
			t.Fatalf("tick %d: camera speed %v, plane %v", i, cam.Speed, p.Speed)
		}
	}
}
