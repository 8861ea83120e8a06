package scene

import "github.com/go-gl/mathgl/mgl32"

// PerspectiveCamera is a pinhole camera looking down its local -Z axis.
type PerspectiveCamera struct {
	Object

	// Vertical field of view in degrees.
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	projection mgl32.Mat4
}

// NewPerspectiveCamera creates a camera and computes its projection.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Object: newObject(),
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after changing FOV, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the current projection.
func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// ProjectionMatrixInverse returns the inverse of the current projection.
func (c *PerspectiveCamera) ProjectionMatrixInverse() mgl32.Mat4 {
	return c.projection.Inv()
}

// ViewMatrix returns the world-to-camera transform.
func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return c.matrixWorld.Inv()
}
