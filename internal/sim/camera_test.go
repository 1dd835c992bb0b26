package sim_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	sim "flight-simulator/internal/sim"
)

func TestFollowBehindPlane(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	p.Position = sim.Vec3{X: 10, Y: 30, Z: -40}

	cam := rig.Follow(p)
	// Yaw 180 faces -Z, so behind is +Z.
	want := sim.Vec3{X: 10, Y: 30 + sim.FollowHeight, Z: -40 + sim.FollowDistance}
	if !near(cam.Position.X, want.X, 1e-9) || !near(cam.Position.Y, want.Y, 1e-9) || !near(cam.Position.Z, want.Z, 1e-9) {
		t.Fatalf("expected %+v, got %+v", want, cam.Position)
	}
	if cam.Pitch != -sim.NeutralFrontTilt {
		t.Fatalf("expected pitch %v, got %v", -sim.NeutralFrontTilt, cam.Pitch)
	}
	if cam.Yaw != -90 {
		t.Fatalf("expected yaw -90, got %v", cam.Yaw)
	}
}

func TestFollowOrbitRadius(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	for _, off := range []float64{-170, -45, 0, 30, 90, 400} {
		rig.FollowOffset = off
		cam := rig.Follow(p)
		d := cam.Position.Sub(p.Position).Horizontal().Length()
		if !near(d, sim.FollowDistance, 1e-9) {
			t.Fatalf("offset %v: horizontal distance %v", off, d)
		}
	}
}

func TestFrontTiltRaisesCamera(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	base := rig.Follow(p).Position.Y

	rig.FrontTilt = sim.NeutralFrontTilt + 15
	raised := rig.Follow(p)
	want := base + (15.0/1.5)*math.Pi/180*sim.FollowDistance
	if !near(raised.Position.Y, want, 1e-9) {
		t.Fatalf("expected height %v, got %v", want, raised.Position.Y)
	}
	if raised.Pitch != -rig.FrontTilt {
		t.Fatalf("expected pitch %v, got %v", -rig.FrontTilt, raised.Pitch)
	}
}

func TestMouseLookClamps(t *testing.T) {
	rig := sim.NewCameraRig()
	rig.MouseLook(100, 0)
	if !near(rig.FollowOffset, 10, 1e-9) {
		t.Fatalf("expected offset 10, got %v", rig.FollowOffset)
	}
	rig.MouseLook(0, 10000)
	if rig.FrontTilt != 60 {
		t.Fatalf("expected tilt clamped to 60, got %v", rig.FrontTilt)
	}
	rig.MouseLook(0, -10000)
	if rig.FrontTilt != -30 {
		t.Fatalf("expected tilt clamped to -30, got %v", rig.FrontTilt)
	}
}

func TestScrollZoomClamps(t *testing.T) {
	rig := sim.NewCameraRig()
	rig.Scroll(-5)
	if rig.Zoom != 45 {
		t.Fatalf("expected zoom to stay at 45, got %v", rig.Zoom)
	}
	rig.Scroll(10)
	if rig.Zoom != 35 {
		t.Fatalf("expected zoom 35, got %v", rig.Zoom)
	}
	rig.Scroll(100)
	if rig.Zoom != 1 {
		t.Fatalf("expected zoom clamped to 1, got %v", rig.Zoom)
	}
}

func TestViewMatrixLooksAtPlane(t *testing.T) {
	rig := sim.NewCameraRig()
	p := sim.NewPlane()
	cam := rig.Follow(p)

	view := cam.ViewMatrix()
	eyeSpace := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if eyeSpace.Z() >= 0 {
		t.Fatalf("plane should be in front of the camera, got eye z %v", eyeSpace.Z())
	}
	if math.Abs(float64(eyeSpace.X())) > 1e-3 {
		t.Fatalf("plane should be centred horizontally, got eye x %v", eyeSpace.X())
	}
}

func TestProjectionMatrixHandlesZeroSize(t *testing.T) {
	cam := sim.NewCameraRig().Follow(sim.NewPlane())
	m := cam.ProjectionMatrix(0, 0)
	for i := 0; i < 16; i++ {
		v := float64(m[i])
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("projection has non-finite entry %d: %v", i, v)
		}
	}
}
