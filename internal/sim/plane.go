package sim

import (
	"math"
)

// Throttle and flight-model tuning. All rates are per tick; the feel was tuned
// against a ~60 Hz frame loop, so DefaultConfig runs the simulation at 60 Hz.
const (
	ThrottleIncrement = 0.0008 // throttle-up per tick
	BrakeDecrement    = 0.001  // throttle-down per tick
	DragDecrement     = 0.0003 // passive decay with no throttle key

	LevelFlightSpeed = 0.5 // speed at which deltaAltitude is zero

	ClimbGain   = 5.0  // altitude gained per tick per unit of (speed-0.5) above level
	DescentGain = 50.0 // altitude lost per tick per unit of (0.5-speed) while airborne

	CruiseCoupling   = 25.0 // pitch/bank coupling above level speed
	LowSpeedCoupling = 45.0 // pitch/bank coupling at or below level speed
	StrafeGain       = 200.0
	ForwardGain      = 15.0

	InitialYaw = 180.0
)

// PlaneState is the pose of the aircraft. Rotation is in degrees: Y is the
// heading (yaw), X and Z are the visual pitch/bank attitude rewritten each tick.
type PlaneState struct {
	Position Vec3
	Rotation Vec3
	Speed    float64 // throttle, 0..1

	// Derived by the last Tick, kept for HUD and telemetry.
	Momentum      float64
	DeltaAltitude float64
}

// InputState is one tick's snapshot of the pilot controls.
type InputState struct {
	ThrottleUp   bool
	ThrottleDown bool
	// TiltSpeed is the bank accumulator owned by Controls; the updater only reads it.
	TiltSpeed float64
	// YawDelta is the heading change in degrees applied after integration.
	YawDelta float64
}

func NewPlane() PlaneState {
	return PlaneState{
		Position: Vec3{0, 0, 0},
		Rotation: Vec3{0, InitialYaw, 0},
		Speed:    0,
		Momentum: 1,
	}
}

func (p PlaneState) Yaw() float64      { return p.Rotation.Y }
func (p PlaneState) Altitude() float64 { return p.Position.Y }
func (p PlaneState) Airborne() bool    { return p.Position.Y > 0 }

// Tick advances the plane by one simulation step and derives the follow camera
// from the result. It never fails and does not modify its arguments.
func Tick(plane PlaneState, input InputState, rig CameraRig) (PlaneState, CameraState) {
	next := plane

	// Pitch term comes from the throttle as it was when the tick started.
	deltaAltitude := (plane.Speed - LevelFlightSpeed) * 2
	next.DeltaAltitude = deltaAltitude

	next.Speed = stepThrottle(plane.Speed, input)

	next.Position.Y += verticalStep(next.Speed, next.Position.Y)
	if next.Position.Y < 0 {
		next.Position.Y = 0
	}

	yaw := plane.Rotation.Y
	yawRad := DegToRad(yaw)
	var xRot, zRot, xStrafe, zStrafe float64
	if next.Airborne() {
		xStrafe = input.TiltSpeed * StrafeGain * math.Sin(yawRad)
		zStrafe = input.TiltSpeed * StrafeGain * math.Cos(yawRad)
		coupling := LowSpeedCoupling
		if next.Speed > LevelFlightSpeed {
			coupling = CruiseCoupling
		}
		xRot = deltaAltitude * coupling * math.Cos(yawRad)
		zRot = deltaAltitude * coupling * -math.Sin(yawRad)
	}

	next.Momentum = Momentum(TurnAngle(xRot, zRot, yaw))
	forward := Heading(yaw).Mul(next.Speed * next.Momentum * ForwardGain)
	next.Position = next.Position.Add(forward)

	next.Rotation = Vec3{-(xRot + xStrafe), yaw + input.YawDelta, -(zRot + zStrafe)}

	return next, rig.Follow(next)
}

func stepThrottle(speed float64, input InputState) float64 {
	switch {
	case input.ThrottleUp:
		return math.Min(1, speed+ThrottleIncrement)
	case input.ThrottleDown:
		return math.Max(0, speed-BrakeDecrement)
	default:
		return math.Max(0, speed-DragDecrement)
	}
}

// verticalStep climbs above level speed and sinks below it; sinking only
// happens off the ground.
func verticalStep(speed, altitude float64) float64 {
	switch {
	case speed > LevelFlightSpeed:
		return (speed - LevelFlightSpeed) * ClimbGain
	case speed < LevelFlightSpeed && altitude > 0:
		return (speed - LevelFlightSpeed) * DescentGain
	default:
		return 0
	}
}

// TurnAngle folds the pitch/bank terms into a single angle in degrees. A
// positive heading doubles it and any other heading quarters it.
func TurnAngle(xRot, zRot, yawDeg float64) float64 {
	angle := math.Abs(xRot) + math.Abs(zRot)
	if yawDeg > 0 {
		return angle * 2
	}
	return angle / 4
}

// Momentum is the forward-thrust attenuation for a turn angle in degrees.
func Momentum(angleDeg float64) float64 {
	return math.Abs(math.Cos(DegToRad(angleDeg)))
}
