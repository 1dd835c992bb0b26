package sim

import (
	"errors"
	"fmt"
)

const (
	FreeCameraSpeed = 2.5   // world units per second
	FreeCameraFar   = 110.0 // far clip of the hangar view
	maxFreePitch    = 89.0
)

var ErrUnknownCamera = errors.New("unknown camera mode")

// CameraMode selects which camera drives the view.
type CameraMode int

const (
	FollowCamera CameraMode = iota
	FreeFlyCamera
)

func (m CameraMode) String() string {
	if m == FreeFlyCamera {
		return "free"
	}
	return "follow"
}

func ParseCameraMode(s string) (CameraMode, error) {
	switch s {
	case "follow":
		return FollowCamera, nil
	case "free":
		return FreeFlyCamera, nil
	}
	return FollowCamera, fmt.Errorf("camera %q: %w", s, ErrUnknownCamera)
}

// FlyKeys are the free camera's translation keys for one frame.
type FlyKeys struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// FreeCamera is the first-person camera of the hangar scene. It is moved
// directly by the arrow keys and the mouse and owns no physics.
type FreeCamera struct {
	Position Vec3
	Yaw      float64 // degrees, -90 looks down -Z
	Pitch    float64
	Zoom     float64
}

func NewFreeCamera() FreeCamera {
	return FreeCamera{
		Position: Vec3{5, 10, 5},
		Yaw:      -90,
		Zoom:     maxZoom,
	}
}

func (c FreeCamera) Front() Vec3 { return CameraState{Yaw: c.Yaw, Pitch: c.Pitch}.Front() }

// Right is the horizontal strafe direction.
func (c FreeCamera) Right() Vec3 { return c.Front().Cross(Vec3{0, 1, 0}).Normalize() }

// Move translates along the view direction and the strafe axis at
// FreeCameraSpeed for dt seconds.
func (c *FreeCamera) Move(keys FlyKeys, dt float64) {
	v := FreeCameraSpeed * dt
	if keys.Forward {
		c.Position = c.Position.Add(c.Front().Mul(v))
	}
	if keys.Backward {
		c.Position = c.Position.Sub(c.Front().Mul(v))
	}
	if keys.Left {
		c.Position = c.Position.Sub(c.Right().Mul(v))
	}
	if keys.Right {
		c.Position = c.Position.Add(c.Right().Mul(v))
	}
}

// Look turns by mouse offsets; dy is positive for upward motion. Pitch stops
// short of straight up or down so the view never flips.
func (c *FreeCamera) Look(dx, dy float64) {
	c.Yaw += dx * mouseSensitivity
	c.Pitch = clamp(c.Pitch+dy*mouseSensitivity, -maxFreePitch, maxFreePitch)
}

func (c *FreeCamera) Scroll(dy float64) {
	c.Zoom = clamp(c.Zoom-dy, minZoom, maxZoom)
}

func (c FreeCamera) State() CameraState {
	return CameraState{
		Position: c.Position,
		Yaw:      c.Yaw,
		Pitch:    c.Pitch,
		Zoom:     c.Zoom,
		Far:      FreeCameraFar,
	}
}

// MouseTracker turns absolute cursor positions into offsets. The first sample
// after a Reset only records the position, so capturing the cursor does not
// jerk the view.
type MouseTracker struct {
	lastX, lastY float64
	primed       bool
}

func (m *MouseTracker) Reset() { m.primed = false }

// Delta returns the motion since the last sample with y flipped so that
// moving the mouse up is positive.
func (m *MouseTracker) Delta(x, y float64) (dx, dy float64) {
	if !m.primed {
		m.lastX, m.lastY = x, y
		m.primed = true
		return 0, 0
	}
	dx, dy = x-m.lastX, m.lastY-y
	m.lastX, m.lastY = x, y
	return dx, dy
}
