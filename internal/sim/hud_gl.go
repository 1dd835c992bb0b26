//go:build !test
// +build !test

package sim

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const hudVertexShader = `#version 410 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
out vec4 vColor;
void main(){
    gl_Position = vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}` + "\x00"

const hudFragmentShader = `#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main(){
    FragColor = vColor;
}` + "\x00"

// HUDRenderer uploads a HUD's rectangles as NDC triangles once per frame.
type HUDRenderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	verts   []float32 // x,y,r,g,b,a per vertex
}

func NewHUDRenderer() (*HUDRenderer, error) {
	program, err := linkProgram(hudVertexShader, hudFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("hud program: %w", err)
	}
	u := &HUDRenderer{program: program}
	gl.GenVertexArrays(1, &u.vao)
	gl.GenBuffers(1, &u.vbo)
	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, 6*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
	return u, nil
}

func (u *HUDRenderer) Flush(h *HUD) {
	rects := h.Rects()
	if len(rects) == 0 || h.Width <= 0 || h.Height <= 0 {
		return
	}
	u.verts = u.verts[:0]
	sw, sh := float32(h.Width), float32(h.Height)
	for _, r := range rects {
		x0 := float32(r.X)/sw*2 - 1
		x1 := float32(r.X+r.W)/sw*2 - 1
		y0 := 1 - float32(r.Y)/sh*2
		y1 := 1 - float32(r.Y+r.H)/sh*2
		c := r.Color
		u.verts = append(u.verts,
			x0, y0, c.R, c.G, c.B, c.A,
			x1, y0, c.R, c.G, c.B, c.A,
			x1, y1, c.R, c.G, c.B, c.A,
			x0, y0, c.R, c.G, c.B, c.A,
			x1, y1, c.R, c.G, c.B, c.A,
			x0, y1, c.R, c.G, c.B, c.A,
		)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(u.program)
	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(u.verts)*4, gl.Ptr(u.verts), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(u.verts)/6))
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (u *HUDRenderer) Delete() {
	gl.DeleteProgram(u.program)
	gl.DeleteVertexArrays(1, &u.vao)
	gl.DeleteBuffers(1, &u.vbo)
}
