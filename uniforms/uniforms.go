// Package uniforms holds the values the effect's shaders read every draw.
package uniforms

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gomandelbulb/inputs"
)

// Uniform names, in declaration order.
const (
	Resolution                    = "resolution"
	CameraWorldMatrix             = "cameraWorldMatrix"
	CameraProjectionMatrixInverse = "cameraProjectionMatrixInverse"
	ITime                         = "iTime"
	IResolution                   = "iResolution"
	IChannel0                     = "iChannel0"
	IMouse                        = "iMouse"
)

// ErrMissingChannel is returned when a bundle is built without a texture.
var ErrMissingChannel = errors.New("uniforms: iChannel0 texture is nil")

// Declaration pairs a uniform name with its GLSL type.
type Declaration struct {
	Name string
	Type string
}

var declarations = []Declaration{
	{Resolution, "vec2"},
	{CameraWorldMatrix, "mat4"},
	{CameraProjectionMatrixInverse, "mat4"},
	{ITime, "float"},
	{IResolution, "vec3"},
	{IChannel0, "sampler2D"},
	{IMouse, "vec4"},
}

// Declarations returns the closed set of uniforms with their GLSL types.
func Declarations() []Declaration {
	out := make([]Declaration, len(declarations))
	copy(out, declarations)
	return out
}

// Names returns the closed set of uniform names.
func Names() []string {
	names := make([]string, len(declarations))
	for i, d := range declarations {
		names[i] = d.Name
	}
	return names
}

// Bundle is the CPU-side copy of every uniform. It is mutated in place each
// frame; iChannel0 is bound at construction and has no setter.
type Bundle struct {
	Resolution                    mgl32.Vec2
	CameraWorldMatrix             mgl32.Mat4
	CameraProjectionMatrixInverse mgl32.Mat4
	ITime                         float32
	IResolution                   mgl32.Vec3
	IMouse                        mgl32.Vec4

	iChannel0 inputs.IChannel
}

// New builds a complete bundle. iTime starts at zero, iResolution is filled
// on the first frame and iMouse starts at (0, 0, 0, 1).
func New(resolution mgl32.Vec2, cameraWorld, projectionInverse mgl32.Mat4, channel inputs.IChannel) (*Bundle, error) {
	if channel == nil {
		return nil, ErrMissingChannel
	}
	return &Bundle{
		Resolution:                    resolution,
		CameraWorldMatrix:             cameraWorld,
		CameraProjectionMatrixInverse: projectionInverse,
		IMouse:                        mgl32.Vec4{0, 0, 0, 1},
		iChannel0:                     channel,
	}, nil
}

// IChannel0 returns the texture bound at construction.
func (b *Bundle) IChannel0() inputs.IChannel {
	return b.iChannel0
}

// SetMouse writes the pointer position into iMouse.x/y.
func (b *Bundle) SetMouse(x, y float32) {
	b.IMouse[0] = x
	b.IMouse[1] = y
}

// Validate reports the first entry that is not ready for a draw call.
func (b *Bundle) Validate() error {
	if b == nil {
		return errors.New("uniforms: bundle is nil")
	}
	if b.iChannel0 == nil {
		return ErrMissingChannel
	}
	if b.Resolution[0] <= 0 || b.Resolution[1] <= 0 {
		return fmt.Errorf("uniforms: %s is %v", Resolution, b.Resolution)
	}
	return nil
}
