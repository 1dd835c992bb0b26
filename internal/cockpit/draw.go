package cockpit

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	sim "flight-simulator/internal/sim"
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAir      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleGround   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleObject   = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleGrass    = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	stylePaved    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlane    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleThrottle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Reverse(true)
)

// panelRows is the height of the instrument panel above the map.
const panelRows = 5

type footprint struct {
	glyph rune
	style tcell.Style
}

// footprints maps ground textures to their map glyph. Terrain with any other
// texture (the surrounding map, roofs, clouds) is left off the map.
var footprints = map[string]footprint{
	"grass": {',', styleGrass},
	"road":  {'=', stylePaved},
	"floor": {'.', stylePaved},
}

// Draw renders the instrument panel and a top-down map centred on the plane.
func (c *Cockpit) Draw() {
	c.screen.Clear()
	w, h := c.screen.Size()
	t := c.sim.Telemetry()

	status := styleGround
	if t.Airborne {
		status = styleAir
	}
	drawText(c.screen, 0, 0, status, t.Status())
	drawText(c.screen, 10, 0, styleText, fmt.Sprintf("TICK %s", humanize.Comma(int64(t.Tick))))
	if c.paused {
		drawText(c.screen, 28, 0, styleGround, "PAUSED")
	}
	drawText(c.screen, 0, 1, styleText, fmt.Sprintf("ALT %s  HDG %03.0f  MOM %.3f",
		sim.FormatDigits(t.Position.Y, 1), t.Heading, t.Momentum))
	drawText(c.screen, 0, 2, styleText, fmt.Sprintf("POS %s, %s  DAY %.2f",
		humanize.Commaf(math.Round(t.Position.X)), humanize.Commaf(math.Round(t.Position.Z)), t.Daylight))
	drawThrottle(c.screen, 0, 3, 20, t.Throttle/100)
	drawText(c.screen, 0, 4, styleDim, "arrows/wasd fly  n/m light  p pause  r reset  q quit")

	c.drawMap(0, panelRows, w, h-panelRows)
	c.screen.Show()
}

func (c *Cockpit) drawMap(x0, y0, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	plane := c.sim.Plane()
	cx, cy := x0+w/2, y0+h/2

	inside := func(col, row int) bool {
		return col >= x0 && col < x0+w && row >= y0 && row < y0+h
	}

	// Ground first in layout order, then models, then the plane on top.
	for _, obj := range c.sim.Scene().Terrain() {
		fp, ok := footprints[obj.Texture]
		if !ok {
			continue
		}
		half := sim.Vec3{X: obj.Scale.X * obj.Extent.X / 2, Z: obj.Scale.Z * obj.Extent.Z / 2}
		rel := obj.Position.Sub(plane.Position)
		c0, r0, ok0 := mapCell(rel.Sub(half), cx, cy)
		c1, r1, ok1 := mapCell(rel.Add(half), cx, cy)
		if !ok0 || !ok1 {
			continue
		}
		for row := max(r0, y0); row <= min(r1, y0+h-1); row++ {
			for col := max(c0, x0); col <= min(c1, x0+w-1); col++ {
				c.screen.SetContent(col, row, fp.glyph, nil, fp.style)
			}
		}
	}
	for _, obj := range c.sim.Scene().Models() {
		col, row, ok := mapCell(obj.Position.Sub(plane.Position), cx, cy)
		if !ok || !inside(col, row) {
			continue
		}
		c.screen.SetContent(col, row, '#', nil, styleObject)
	}
	c.screen.SetContent(cx, cy, HeadingGlyph(plane.Yaw()), nil, stylePlane)
}

// mapCell converts a plane-relative world offset to a screen cell.
func mapCell(offset sim.Vec3, cx, cy int) (col, row int, ok bool) {
	fc := math.Round(offset.X / MapScale)
	fr := math.Round(offset.Z / (MapScale * 2))
	if math.IsNaN(fc) || math.IsNaN(fr) || math.Abs(fc) > 1e6 || math.Abs(fr) > 1e6 {
		return 0, 0, false
	}
	return cx + int(fc), cy + int(fr), true
}

func drawThrottle(s tcell.Screen, x, y, width int, level float64) {
	filled := int(math.Round(level * float64(width)))
	drawText(s, x, y, styleText, "THR [")
	for i := 0; i < width; i++ {
		if i < filled {
			s.SetContent(x+5+i, y, ' ', nil, styleThrottle)
		} else {
			s.SetContent(x+5+i, y, '.', nil, styleDim)
		}
	}
	drawText(s, x+5+width, y, styleText, fmt.Sprintf("] %3.0f%%", level*100))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
