package scene

import "github.com/go-gl/mathgl/mgl32"

// Frustum holds the six clip planes (a, b, c, d) of a view volume with
// normals pointing inwards.
type Frustum [6]mgl32.Vec4

// FrustumFromMatrix extracts the planes of a projection * view matrix.
func FrustumFromMatrix(m mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	f := Frustum{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}
	for i, p := range f {
		l := p.Vec3().Len()
		if l > 0 {
			f[i] = p.Mul(1 / l)
		}
	}
	return f
}

// IntersectsSphere reports whether any part of the sphere lies inside.
func (f Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f {
		if p.Vec3().Dot(center)+p[3] < -radius {
			return false
		}
	}
	return true
}
