package cockpit_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"flight-simulator/internal/cockpit"
	sim "flight-simulator/internal/sim"
)

func newCockpit(t *testing.T) (*cockpit.Cockpit, *sim.Simulator, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	s, err := sim.NewSimulator(sim.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}
	return cockpit.New(screen, s), s, screen
}

func TestKeyLatch(t *testing.T) {
	c, s, _ := newCockpit(t)
	c.HandleKey(tcell.KeyUp, 0)
	for i := 0; i < cockpit.LatchTicks; i++ {
		if !c.Keys().ThrottleUp {
			t.Fatalf("tick %d: expected throttle latched", i)
		}
		c.Tick()
	}
	if c.Keys().ThrottleUp {
		t.Fatalf("expected latch released after %d ticks", cockpit.LatchTicks)
	}
	want := float64(cockpit.LatchTicks) * sim.ThrottleIncrement
	if d := s.Plane().Speed - want; d > 1e-12 || d < -1e-12 {
		t.Fatalf("expected speed %v, got %v", want, s.Plane().Speed)
	}
}

func TestRepeatedPressRefreshesLatch(t *testing.T) {
	c, _, _ := newCockpit(t)
	c.HandleKey(tcell.KeyRune, 'a')
	for i := 0; i < cockpit.LatchTicks-1; i++ {
		c.Tick()
	}
	c.HandleKey(tcell.KeyLeft, 0)
	for i := 0; i < cockpit.LatchTicks-1; i++ {
		c.Tick()
	}
	if !c.Keys().TurnLeft {
		t.Fatalf("expected refreshed latch to still hold")
	}
}

func TestCockpitKeys(t *testing.T) {
	c, s, _ := newCockpit(t)

	c.HandleKey(tcell.KeyDown, 0)
	c.HandleKey(tcell.KeyRight, 0)
	k := c.Keys()
	if !k.ThrottleDown || !k.TurnRight || k.ThrottleUp || k.TurnLeft {
		t.Fatalf("unexpected keys %+v", k)
	}

	c.HandleKey(tcell.KeyRune, 'n')
	if d := s.Daylight().Level; d > 0.55+1e-9 || d < 0.55-1e-9 {
		t.Fatalf("expected darker 0.55, got %v", d)
	}
	c.HandleKey(tcell.KeyRune, 'm')
	c.HandleKey(tcell.KeyRune, 'm')
	if d := s.Daylight().Level; d > 0.65+1e-9 || d < 0.65-1e-9 {
		t.Fatalf("expected lighter 0.65, got %v", d)
	}

	c.HandleKey(tcell.KeyRune, 'p')
	before := s.Ticks()
	c.Tick()
	if !c.Paused() || s.Ticks() != before {
		t.Fatalf("expected pause to hold the simulation")
	}
	c.HandleKey(tcell.KeyRune, 'p')
	c.Tick()
	if s.Ticks() != before+1 {
		t.Fatalf("expected unpause to resume")
	}

	c.HandleKey(tcell.KeyRune, 'r')
	if s.Ticks() != 0 || c.Keys() != (sim.KeyState{}) {
		t.Fatalf("expected reset simulator and latches")
	}
}

func TestCockpitQuit(t *testing.T) {
	c, _, _ := newCockpit(t)
	if !c.HandleKey(tcell.KeyRune, 'x') {
		t.Fatalf("unbound key should not quit")
	}
	for _, k := range []struct {
		key tcell.Key
		r   rune
	}{{tcell.KeyEscape, 0}, {tcell.KeyCtrlC, 0}, {tcell.KeyRune, 'q'}} {
		if c.HandleKey(k.key, k.r) {
			t.Fatalf("expected %v %q to quit", k.key, k.r)
		}
	}
}

func TestHeadingGlyph(t *testing.T) {
	cases := map[float64]rune{
		180: '↑',
		0:   '↓',
		90:  '→',
		270: '←',
		-90: '←',
		135: '↗',
		540: '↑',
	}
	for yaw, want := range cases {
		if got := cockpit.HeadingGlyph(yaw); got != want {
			t.Fatalf("yaw %v: expected %q, got %q", yaw, want, got)
		}
	}
}

func TestDraw(t *testing.T) {
	c, s, screen := newCockpit(t)
	s.RunHeadless(context.Background(), 10, sim.KeyState{ThrottleUp: true})
	c.Draw()

	if got := rowText(screen, 0, 6); got != "GROUND" {
		t.Fatalf("expected GROUND status, got %q", got)
	}
	if got := rowText(screen, 0, 80); !strings.Contains(got, "TICK 10") {
		t.Fatalf("expected tick counter, got %q", got)
	}
	if got := rowText(screen, 3, 80); !strings.HasPrefix(got, "THR [") || !strings.Contains(got, "1%") {
		t.Fatalf("unexpected throttle row %q", got)
	}

	// Plane marker sits in the middle of the map below the panel.
	w, h := screen.Size()
	r, _, _, _ := screen.GetContent(w/2, 5+(h-5)/2)
	if r != '↑' {
		t.Fatalf("expected plane marker, got %q", r)
	}
}

func TestDrawGroundFootprints(t *testing.T) {
	c, _, screen := newCockpit(t)
	c.Draw()

	w, h := screen.Size()
	cx, cy := w/2, 5+(h-5)/2
	counts := map[rune]int{}
	for y := 5; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			counts[r]++
		}
	}
	// Grass, road and foundation span many cells; the airport models share
	// one spot.
	if counts[','] < 20 || counts['='] < 10 || counts['#'] != 1 {
		t.Fatalf("unexpected map cells %v", counts)
	}
	// The runway road runs north-south through the origin.
	for _, y := range []int{cy - 3, cy + 3} {
		if r, _, _, _ := screen.GetContent(cx, y); r != '=' {
			t.Fatalf("expected road at row %d, got %q", y, r)
		}
	}
	if r, _, _, _ := screen.GetContent(cx+1, cy); r != '#' {
		t.Fatalf("expected models beside the plane, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(cx, cy); r != '↑' {
		t.Fatalf("plane marker hidden under the ground, got %q", r)
	}
}

func rowText(screen tcell.SimulationScreen, y, n int) string {
	var b strings.Builder
	for x := 0; x < n; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}
