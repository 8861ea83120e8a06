package renderer

import (
	"image"

	"github.com/richinsley/gomandelbulb/inputs"
	"github.com/richinsley/gomandelbulb/scene"
)

// Backend is the graphics engine a session draws with. All calls happen on
// the goroutine that owns the graphics context.
type Backend interface {
	// SetSize is called with the logical drawing size on creation and resize.
	SetSize(width, height int)
	// Compile builds the program for a material and binds its uniforms.
	Compile(material *scene.ShaderMaterial) error
	// NewTexture uploads an image once with the given sampler.
	NewTexture(img image.Image, sampler inputs.Sampler) (inputs.IChannel, error)
	// Render draws every visible mesh of s through camera.
	Render(s *scene.Scene, camera *scene.PerspectiveCamera)
	// Destroy releases every resource the backend allocated.
	Destroy()
}

// FrameReader is implemented by backends that can read back the last frame
// as tightly packed RGBA rows, top row first.
type FrameReader interface {
	ReadPixels(width, height int) []byte
}
