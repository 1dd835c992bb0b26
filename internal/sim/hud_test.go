package sim_test

import (
	"testing"

	sim "flight-simulator/internal/sim"
)

func TestTextWidth(t *testing.T) {
	if w := sim.TextWidth("ALT 120", 2); w != 7*6*2 {
		t.Fatalf("expected %d, got %d", 7*6*2, w)
	}
}

func TestDrawTextRasterizes(t *testing.T) {
	var h sim.HUD
	h.Begin(800, 600)
	h.DrawText(10, 20, "I", 1, sim.Color{A: 1})
	rects := h.Rects()
	if len(rects) == 0 {
		t.Fatalf("expected glyph pixels")
	}
	for _, r := range rects {
		if r.X < 10 || r.X >= 15 || r.Y < 20 || r.Y >= 27 || r.W != 1 || r.H != 1 {
			t.Fatalf("pixel outside glyph cell: %+v", r)
		}
	}

	// Lowercase shares the uppercase glyph; unknown runes draw nothing.
	var lower sim.HUD
	lower.DrawText(10, 20, "i", 1, sim.Color{A: 1})
	if len(lower.Rects()) != len(rects) {
		t.Fatalf("expected folded glyph, got %d pixels vs %d", len(lower.Rects()), len(rects))
	}
	var unknown sim.HUD
	unknown.DrawText(0, 0, "~", 1, sim.Color{A: 1})
	if len(unknown.Rects()) != 0 {
		t.Fatalf("expected no pixels for unknown rune")
	}
}

func TestDrawTextNewline(t *testing.T) {
	var h sim.HUD
	h.DrawText(0, 0, ".\n.", 1, sim.Color{A: 1})
	rects := h.Rects()
	if len(rects) != 2 {
		t.Fatalf("expected two dots, got %d", len(rects))
	}
	if rects[1].Y-rects[0].Y != 8 || rects[0].X != rects[1].X {
		t.Fatalf("expected second line 8px below, got %+v", rects)
	}
}

func TestBeginClearsRects(t *testing.T) {
	var h sim.HUD
	h.Begin(100, 100)
	h.AddRect(0, 0, 1, 1, sim.Color{})
	h.Begin(200, 100)
	if len(h.Rects()) != 0 || h.Width != 200 {
		t.Fatalf("expected cleared HUD, got %d rects width %d", len(h.Rects()), h.Width)
	}
}

func TestFlightPanel(t *testing.T) {
	var h sim.HUD
	h.Begin(1280, 720)
	tel := sim.NewTelemetry(10, sim.NewPlane(), sim.NewDaylight())
	h.DrawFlightPanel(tel, 60)
	rects := h.Rects()
	if len(rects) < 50 {
		t.Fatalf("expected a populated panel, got %d rects", len(rects))
	}
	if rects[0].X != 0 || rects[0].Y != 0 || rects[0].Color.A >= 1 {
		t.Fatalf("expected translucent backing panel first, got %+v", rects[0])
	}
}
