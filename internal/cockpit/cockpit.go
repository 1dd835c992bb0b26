// Package cockpit flies the simulator from a terminal. Terminals report key
// presses but not releases, so every press holds its control for a few ticks.
package cockpit

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	sim "flight-simulator/internal/sim"
)

// LatchTicks is how long one key press keeps its control held.
const LatchTicks = 8

// MapScale is world units per map column. Rows cover twice as much since
// terminal cells are about twice as tall as they are wide.
const MapScale = 20.0

type control int

const (
	ctlThrottleUp control = iota
	ctlThrottleDown
	ctlTurnLeft
	ctlTurnRight
	numControls
)

type Cockpit struct {
	screen tcell.Screen
	sim    *sim.Simulator
	latch  [numControls]int
	paused bool
}

func New(screen tcell.Screen, s *sim.Simulator) *Cockpit {
	return &Cockpit{screen: screen, sim: s}
}

// HandleEvent applies one terminal event and reports whether to keep running.
func (c *Cockpit) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		c.screen.Sync()
	}
	return true
}

// HandleKey applies one key press and reports whether to keep running.
func (c *Cockpit) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		c.press(ctlThrottleUp)
	case tcell.KeyDown:
		c.press(ctlThrottleDown)
	case tcell.KeyLeft:
		c.press(ctlTurnLeft)
	case tcell.KeyRight:
		c.press(ctlTurnRight)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'w':
			c.press(ctlThrottleUp)
		case 's':
			c.press(ctlThrottleDown)
		case 'a':
			c.press(ctlTurnLeft)
		case 'd':
			c.press(ctlTurnRight)
		case 'n':
			c.sim.Daylight().Darker()
		case 'm':
			c.sim.Daylight().Lighter()
		case 'r':
			c.sim.Reset()
			c.latch = [numControls]int{}
		case 'p', ' ':
			c.paused = !c.paused
		}
	}
	return true
}

func (c *Cockpit) press(ctl control) { c.latch[ctl] = LatchTicks }

// Keys reports the controls currently latched.
func (c *Cockpit) Keys() sim.KeyState {
	return sim.KeyState{
		ThrottleUp:   c.latch[ctlThrottleUp] > 0,
		ThrottleDown: c.latch[ctlThrottleDown] > 0,
		TurnLeft:     c.latch[ctlTurnLeft] > 0,
		TurnRight:    c.latch[ctlTurnRight] > 0,
	}
}

func (c *Cockpit) Paused() bool { return c.paused }

// Tick steps the simulator once with the latched keys and ages the latches.
func (c *Cockpit) Tick() {
	if c.paused {
		return
	}
	c.sim.Step(c.Keys())
	for i := range c.latch {
		if c.latch[i] > 0 {
			c.latch[i]--
		}
	}
}

// Run ticks at the simulator's rate and redraws after every tick until ctx is
// done or the pilot quits.
func (c *Cockpit) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(c.sim.TickInterval())
	defer ticker.Stop()

	c.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !c.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			c.Tick()
			c.Draw()
		}
	}
}

var headingGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// HeadingGlyph picks the map arrow for a yaw in degrees. The map draws +X to
// the right and +Z downward, so the starting yaw of 180 points up.
func HeadingGlyph(yaw float64) rune {
	dir := sim.Heading(yaw)
	a := math.Atan2(dir.X, -dir.Z) * 180 / math.Pi
	idx := int(math.Round(a/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return headingGlyphs[idx]
}
