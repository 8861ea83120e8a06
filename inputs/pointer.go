package inputs

import "github.com/richinsley/gomandelbulb/graphics"

// Pointer holds the last known canvas-local pointer position. The z and w
// components of the shader's iMouse are constants and never follow input.
type Pointer struct {
	x float32
	y float32
}

// Move translates a window-space position into canvas-local coordinates by
// subtracting the canvas origin. Positions outside the canvas are kept as is,
// including negative values.
func (p *Pointer) Move(clientX, clientY float64, rect graphics.Rect) {
	p.x = float32(clientX - rect.Left)
	p.y = float32(clientY - rect.Top)
}

// Position returns the canvas-local x and y.
func (p *Pointer) Position() (float32, float32) {
	return p.x, p.y
}
