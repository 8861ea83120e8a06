package scene

import (
	"math"

	"github.com/richinsley/gomandelbulb/uniforms"
)

// PlaneGeometry is a flat rectangle in the XY plane centred on the origin.
type PlaneGeometry struct {
	Width  float32
	Height float32
}

// NewPlaneGeometry creates a width x height plane.
func NewPlaneGeometry(width, height float32) *PlaneGeometry {
	return &PlaneGeometry{Width: width, Height: height}
}

// Vertices returns two triangles as interleaved position (xyz) and uv values.
func (g *PlaneGeometry) Vertices() []float32 {
	hw, hh := g.Width/2, g.Height/2
	return []float32{
		-hw, hh, 0, 0, 1,
		-hw, -hh, 0, 0, 0,
		hw, -hh, 0, 1, 0,

		-hw, hh, 0, 0, 1,
		hw, -hh, 0, 1, 0,
		hw, hh, 0, 1, 1,
	}
}

// VertexCount is the number of vertices returned by Vertices.
func (g *PlaneGeometry) VertexCount() int32 {
	return 6
}

// BoundingRadius is the radius of the sphere around the origin that contains
// the plane.
func (g *PlaneGeometry) BoundingRadius() float32 {
	return float32(math.Hypot(float64(g.Width/2), float64(g.Height/2)))
}

// Extensions lists the optional shader features a material needs.
type Extensions struct {
	// Derivatives enables screen-space partial derivatives (dFdx, dFdy, fwidth).
	Derivatives bool
}

// ShaderMaterial binds a vertex/fragment source pair to a uniform bundle.
// The sources are bodies; the backend prepends the uniform declarations.
type ShaderMaterial struct {
	VertexShader   string
	FragmentShader string
	Uniforms       *uniforms.Bundle
	Extensions     Extensions
}

// Mesh draws a geometry with a material.
type Mesh struct {
	Object

	Geometry *PlaneGeometry
	Material *ShaderMaterial

	// FrustumCulled lets the renderer skip the mesh when its bounding sphere
	// lies outside the camera frustum.
	FrustumCulled bool
}

// NewMesh creates a mesh at the origin with frustum culling enabled.
func NewMesh(geometry *PlaneGeometry, material *ShaderMaterial) *Mesh {
	return &Mesh{
		Object:        newObject(),
		Geometry:      geometry,
		Material:      material,
		FrustumCulled: true,
	}
}

// Visible reports whether the renderer should draw m through camera.
func (m *Mesh) Visible(camera *PerspectiveCamera) bool {
	if !m.FrustumCulled {
		return true
	}
	frustum := FrustumFromMatrix(camera.ProjectionMatrix().Mul4(camera.ViewMatrix()))
	center := m.matrixWorld.Col(3).Vec3()
	return frustum.IntersectsSphere(center, m.Geometry.BoundingRadius())
}
