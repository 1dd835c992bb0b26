package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FollowDistance   = 50.0
	FollowHeight     = 15.0
	NeutralFrontTilt = 13.0

	minFrontTilt = -30.0
	maxFrontTilt = 60.0
	minZoom      = 1.0
	maxZoom      = 45.0

	mouseSensitivity = 0.1
	nearPlane        = 0.1
	farPlane         = 5000.0
)

// CameraRig holds the pilot-adjustable part of the follow camera. The pose
// itself is never stored; it is derived from the plane every tick.
type CameraRig struct {
	FollowOffset float64 // degrees around the plane, 0 is directly behind
	FrontTilt    float64 // pilot look bias, degrees
	Zoom         float64 // vertical field of view, degrees
}

// CameraState is the derived follow-camera pose.
type CameraState struct {
	Position     Vec3
	Yaw          float64
	Pitch        float64
	FollowOffset float64
	FrontTilt    float64
	Zoom         float64
	Speed        float64 // copy of the plane throttle
	Far          float64 // far clip distance, 0 means the follow camera's default
}

func NewCameraRig() CameraRig {
	return CameraRig{
		FollowOffset: 0,
		FrontTilt:    NeutralFrontTilt,
		Zoom:         maxZoom,
	}
}

// Follow places the camera on a fixed-radius orbit behind the plane, raised by
// the base height plus the look-bias term.
func (r CameraRig) Follow(plane PlaneState) CameraState {
	around := DegToRad(plane.Rotation.Y + r.FollowOffset)
	orbit := Vec3{
		X: -math.Sin(around) * FollowDistance,
		Y: FollowHeight + DegToRad((r.FrontTilt-NeutralFrontTilt)/1.5)*FollowDistance,
		Z: -math.Cos(around) * FollowDistance,
	}
	return CameraState{
		Position:     plane.Position.Add(orbit),
		Yaw:          -(plane.Rotation.Y + r.FollowOffset - 90),
		Pitch:        -r.FrontTilt,
		FollowOffset: r.FollowOffset,
		FrontTilt:    r.FrontTilt,
		Zoom:         r.Zoom,
		Speed:        plane.Speed,
	}
}

// MouseLook swings the orbit with horizontal motion and tilts the look bias
// with vertical motion.
func (r *CameraRig) MouseLook(dx, dy float64) {
	r.FollowOffset += dx * mouseSensitivity
	r.FrontTilt = clamp(r.FrontTilt+dy*mouseSensitivity, minFrontTilt, maxFrontTilt)
}

func (r *CameraRig) Scroll(dy float64) {
	r.Zoom = clamp(r.Zoom-dy, minZoom, maxZoom)
}

// Front is the unit look direction for the camera's yaw and pitch.
func (c CameraState) Front() Vec3 {
	yaw, pitch := DegToRad(c.Yaw), DegToRad(c.Pitch)
	return Vec3{
		X: math.Cos(yaw) * math.Cos(pitch),
		Y: math.Sin(pitch),
		Z: math.Sin(yaw) * math.Cos(pitch),
	}.Normalize()
}

func (c CameraState) ViewMatrix() mgl32.Mat4 {
	eye := c.Position.Mgl()
	return mgl32.LookAtV(eye, eye.Add(c.Front().Mgl()), mgl32.Vec3{0, 1, 0})
}

func (c CameraState) ProjectionMatrix(width, height int) mgl32.Mat4 {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = maxZoom
	}
	far := c.Far
	if far <= 0 {
		far = farPlane
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(float32(zoom)), aspect, nearPlane, float32(far))
}
