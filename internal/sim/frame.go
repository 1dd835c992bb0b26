package sim

// Frame is everything the renderer needs for one picture.
type Frame struct {
	Scene    Scene
	Plane    PlaneState
	Camera   CameraState
	Daylight Daylight
	Width    int
	Height   int
}

// Visible reports whether the frame has any area to draw into. A minimized
// window reports a 0x0 framebuffer.
func (f Frame) Visible() bool { return f.Width > 0 && f.Height > 0 }
