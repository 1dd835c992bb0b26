package sim

import (
	"strconv"
	"strings"
)

// Rect is a filled HUD rectangle in top-left-origin pixel coordinates.
type Rect struct {
	X, Y, W, H int
	Color      Color
}

// HUD collects overlay rectangles for one frame. Text is rasterized into
// rectangles with a 5x7 bitmap font, so the GL side only ever draws quads.
type HUD struct {
	Width, Height int
	rects         []Rect
}

func (h *HUD) Begin(width, height int) {
	h.Width, h.Height = width, height
	h.rects = h.rects[:0]
}

func (h *HUD) Rects() []Rect { return h.rects }

func (h *HUD) AddRect(x, y, w, ht int, c Color) {
	h.rects = append(h.rects, Rect{X: x, Y: y, W: w, H: ht, Color: c})
}

// DrawText draws text with one font pixel per scale x scale block. Lowercase is
// folded to uppercase; runes without a glyph advance like a space.
func (h *HUD) DrawText(x, y int, text string, scale int, c Color) {
	cx := x
	for _, r := range strings.ToUpper(text) {
		if r == '\n' {
			y += 8 * scale
			cx = x
			continue
		}
		if glyph, ok := font5x7[r]; ok {
			for row, bits := range glyph {
				for col := 0; col < 5; col++ {
					if bits&(1<<uint(4-col)) != 0 {
						h.AddRect(cx+col*scale, y+row*scale, scale, scale, c)
					}
				}
			}
		}
		cx += 6 * scale
	}
}

// TextWidth is the pixel width DrawText uses for a single line.
func TextWidth(text string, scale int) int {
	return len([]rune(text)) * 6 * scale
}

var (
	hudPanel   = Color{0, 0, 0, 0.45}
	hudText    = Color{0.9, 0.95, 1, 1}
	hudWarn    = Color{1.0, 0.8, 0.3, 1}
	hudGood    = Color{0.8, 1, 0.8, 1}
	hudBarBack = Color{0, 0, 0, 0.3}
)

// DrawFlightPanel lays out the telemetry panel in the top-left corner.
func (h *HUD) DrawFlightPanel(t Telemetry, fps float64) {
	const (
		x     = 12
		scale = 2
		line  = 8 * scale
		width = 300
	)
	y := 16
	h.AddRect(0, 0, width, 16+line*9, hudPanel)

	h.DrawText(x, y, "FLIGHT", 3, hudText)
	y += line * 2

	status := hudGood
	if !t.Airborne {
		status = hudWarn
	}
	h.DrawText(x, y, t.Status(), scale, status)
	y += line
	h.DrawText(x, y, "ALT "+itoa(int(t.Position.Y+0.5)), scale, hudText)
	y += line
	h.DrawText(x, y, "HDG "+itoa(int(t.Heading+0.5)), scale, hudText)
	y += line
	h.DrawText(x, y, "THR "+itoa(int(t.Throttle+0.5))+"%", scale, hudText)
	y += line

	// Throttle bar with the level-flight mark at half scale.
	barW := width - 2*x
	h.AddRect(x, y, barW, 6, hudBarBack)
	h.AddRect(x, y, int(float64(barW)*t.Throttle/100), 6, hudGood)
	h.AddRect(x+barW/2, y-2, 1, 10, hudText)
	y += 12

	h.DrawText(x, y, "MOM "+itoa(int(t.Momentum*100+0.5))+"%", scale, hudText)
	y += line
	h.DrawText(x, y, "FPS "+itoa(int(fps+0.5)), scale, hudText)
}

func itoa(v int) string { return strconv.Itoa(v) }

// 5x7 glyphs, one byte per row, the low five bits left to right.
var font5x7 = map[rune][7]uint8{
	' ': {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	'.': {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04},
	':': {0x00, 0x04, 0x00, 0x00, 0x00, 0x04, 0x00},
	'%': {0x11, 0x02, 0x04, 0x08, 0x10, 0x00, 0x00},
	'-': {0x00, 0x00, 0x1E, 0x00, 0x00, 0x00, 0x00},
	',': {0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x08},
	'/': {0x01, 0x01, 0x02, 0x04, 0x08, 0x10, 0x10},
	'|': {0x04, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04},
	'+': {0x00, 0x04, 0x04, 0x1F, 0x04, 0x04, 0x00},
	'0': {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
	'1': {0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'2': {0x0E, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1F},
	'3': {0x1E, 0x01, 0x01, 0x0E, 0x01, 0x01, 0x1E},
	'4': {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
	'5': {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
	'6': {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
	'7': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8': {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
	'9': {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},
	'A': {0x0E, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'B': {0x1E, 0x11, 0x11, 0x1E, 0x11, 0x11, 0x1E},
	'C': {0x0E, 0x11, 0x10, 0x10, 0x10, 0x11, 0x0E},
	'D': {0x1C, 0x12, 0x11, 0x11, 0x11, 0x12, 0x1C},
	'E': {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x1F},
	'F': {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x10},
	'G': {0x0E, 0x11, 0x10, 0x17, 0x11, 0x11, 0x0E},
	'H': {0x11, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'I': {0x0E, 0x04, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'J': {0x01, 0x01, 0x01, 0x01, 0x11, 0x11, 0x0E},
	'K': {0x11, 0x12, 0x14, 0x18, 0x14, 0x12, 0x11},
	'L': {0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x1F},
	'M': {0x11, 0x1B, 0x15, 0x15, 0x11, 0x11, 0x11},
	'N': {0x11, 0x19, 0x15, 0x13, 0x11, 0x11, 0x11},
	'O': {0x0E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'P': {0x1E, 0x11, 0x11, 0x1E, 0x10, 0x10, 0x10},
	'Q': {0x0E, 0x11, 0x11, 0x11, 0x15, 0x12, 0x0D},
	'R': {0x1E, 0x11, 0x11, 0x1E, 0x14, 0x12, 0x11},
	'S': {0x0F, 0x10, 0x10, 0x0E, 0x01, 0x01, 0x1E},
	'T': {0x1F, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04},
	'U': {0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'V': {0x11, 0x11, 0x11, 0x11, 0x0A, 0x0A, 0x04},
	'W': {0x11, 0x11, 0x11, 0x15, 0x15, 0x1B, 0x11},
	'X': {0x11, 0x11, 0x0A, 0x04, 0x0A, 0x11, 0x11},
	'Y': {0x11, 0x11, 0x0A, 0x04, 0x04, 0x04, 0x04},
	'Z': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x10, 0x1F},
}
