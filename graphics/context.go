package graphics

// Size is a logical (client) size in window units.
type Size struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Aspect returns width / height. Callers must check Valid first.
func (s Size) Aspect() float32 {
	return float32(s.Width) / float32(s.Height)
}

// Rect is the bounding rectangle of a drawable in window/screen space.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Drawable is the render surface a session draws into. Its physical pixel size
// can differ from its logical size by the device pixel ratio.
type Drawable interface {
	GetFramebufferSize() (int, int)
	BoundingRect() Rect
}

// Context defines the interface for an OpenGL host window.
type Context interface {
	Drawable
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and delivers pending input events. With
	// vsync enabled it blocks until the next display refresh.
	EndFrame()
	Time() float64
	ClientSize() Size
}
