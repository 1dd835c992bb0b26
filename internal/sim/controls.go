package sim

const (
	TurnRateStep  = 0.05 // deg/tick gained or shed per tick
	MaxTurnRate   = 1.5  // deg/tick
	TiltSpeedStep = 0.0005
	MaxTiltSpeed  = 0.02
)

// KeyState is the level of every pilot key for one tick, independent of the
// window or terminal library that produced it.
type KeyState struct {
	ThrottleUp   bool
	ThrottleDown bool
	TurnLeft     bool
	TurnRight    bool
}

// Controls turns key levels into an InputState. It owns the turn-rate and
// bank accumulators, which ramp while a turn key is held and decay otherwise.
type Controls struct {
	TurnRate  float64 // deg/tick, positive turns left
	TiltSpeed float64

	wasAirborne bool
}

func (c *Controls) Step(keys KeyState, airborne bool) InputState {
	if airborne && !c.wasAirborne {
		// Taxi turning does not carry into the air.
		c.TurnRate = 0
	}
	c.wasAirborne = airborne

	dir := 0.0
	if keys.TurnLeft {
		dir += 1
	}
	if keys.TurnRight {
		dir -= 1
	}

	if dir == 0 {
		c.TurnRate = approach(c.TurnRate, TurnRateStep)
		c.TiltSpeed = approach(c.TiltSpeed, TiltSpeedStep)
	} else {
		c.TurnRate = clamp(c.TurnRate+dir*TurnRateStep, -MaxTurnRate, MaxTurnRate)
		c.TiltSpeed = clamp(c.TiltSpeed+dir*TiltSpeedStep, -MaxTiltSpeed, MaxTiltSpeed)
	}

	return InputState{
		ThrottleUp:   keys.ThrottleUp,
		ThrottleDown: keys.ThrottleDown && !keys.ThrottleUp,
		TiltSpeed:    c.TiltSpeed,
		YawDelta:     c.TurnRate,
	}
}

func (c *Controls) Reset() { *c = Controls{} }
