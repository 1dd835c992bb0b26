//go:build !test
// +build !test

package sim

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// InputHandler records glfw key and mouse events between frames. The frame
// loop samples it once per frame into a KeyState and consumes the edge
// triggered presses.
type InputHandler struct {
	keys       map[glfw.Key]bool
	keyPressed map[glfw.Key]bool // single press, cleared when read

	looking     bool // right button held in follow mode
	captured    bool // cursor grabbed by the free camera
	mouse       MouseTracker
	mouseDX     float64
	mouseDY     float64 // positive up
	scrollDelta float64
}

func NewInputHandler() *InputHandler {
	return &InputHandler{
		keys:       make(map[glfw.Key]bool),
		keyPressed: make(map[glfw.Key]bool),
	}
}

func (i *InputHandler) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			i.keys[key] = true
			i.keyPressed[key] = true
		case glfw.Release:
			i.keys[key] = false
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButton2 {
			return
		}
		switch action {
		case glfw.Press:
			i.looking = true
			i.mouse.Reset()
		case glfw.Release:
			i.looking = false
		}
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos float64, ypos float64) {
		if !i.looking && !i.captured {
			return
		}
		dx, dy := i.mouse.Delta(xpos, ypos)
		i.mouseDX += dx
		i.mouseDY += dy
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff float64, yoff float64) {
		i.scrollDelta += yoff
	})
}

func (i *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return i.keys[key]
}

func (i *InputHandler) WasKeyPressed(key glfw.Key) bool {
	if i.keyPressed[key] {
		i.keyPressed[key] = false
		return true
	}
	return false
}

// SetCaptured hides and grabs the cursor for the free camera, or releases it.
func (i *InputHandler) SetCaptured(window *glfw.Window, on bool) {
	i.captured = on
	i.looking = false
	i.mouseDX, i.mouseDY = 0, 0
	i.mouse.Reset()
	if on {
		window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// Keys samples the pilot keys for this tick. When the arrows belong to the
// free camera only WASD flies the plane.
func (i *InputHandler) Keys(arrows bool) KeyState {
	k := KeyState{
		ThrottleUp:   i.IsKeyPressed(glfw.KeyW),
		ThrottleDown: i.IsKeyPressed(glfw.KeyS),
		TurnLeft:     i.IsKeyPressed(glfw.KeyA),
		TurnRight:    i.IsKeyPressed(glfw.KeyD),
	}
	if arrows {
		k.ThrottleUp = k.ThrottleUp || i.IsKeyPressed(glfw.KeyUp)
		k.ThrottleDown = k.ThrottleDown || i.IsKeyPressed(glfw.KeyDown)
		k.TurnLeft = k.TurnLeft || i.IsKeyPressed(glfw.KeyLeft)
		k.TurnRight = k.TurnRight || i.IsKeyPressed(glfw.KeyRight)
	}
	return k
}

// FlyKeys samples the arrow keys for the free camera.
func (i *InputHandler) FlyKeys() FlyKeys {
	return FlyKeys{
		Forward:  i.IsKeyPressed(glfw.KeyUp),
		Backward: i.IsKeyPressed(glfw.KeyDown),
		Left:     i.IsKeyPressed(glfw.KeyLeft),
		Right:    i.IsKeyPressed(glfw.KeyRight),
	}
}

// ApplyFreeCamera feeds the accumulated mouse motion and scroll into the free
// camera.
func (i *InputHandler) ApplyFreeCamera(cam *FreeCamera) {
	if i.mouseDX != 0 || i.mouseDY != 0 {
		cam.Look(i.mouseDX, i.mouseDY)
		i.mouseDX, i.mouseDY = 0, 0
	}
	if i.scrollDelta != 0 {
		cam.Scroll(i.scrollDelta)
		i.scrollDelta = 0
	}
}

// ApplyCamera feeds the accumulated mouse look and scroll into the rig and
// reports whether anything changed.
func (i *InputHandler) ApplyCamera(rig *CameraRig) bool {
	changed := false
	if i.mouseDX != 0 || i.mouseDY != 0 {
		rig.MouseLook(i.mouseDX, i.mouseDY)
		i.mouseDX, i.mouseDY = 0, 0
		changed = true
	}
	if i.scrollDelta != 0 {
		rig.Scroll(i.scrollDelta)
		i.scrollDelta = 0
		changed = true
	}
	return changed
}
