package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera parameters of the fly-through.
const (
	RigFOV    float32 = 60
	RigNear   float32 = 0.1
	RigFar    float32 = 1000
	RigOffset float32 = 4
)

// Rig is a dolly group carrying a perspective camera. Only the dolly moves;
// the camera keeps its local offset for the rig's lifetime.
type Rig struct {
	Dolly  *Group
	Camera *PerspectiveCamera
}

// NewRig creates the dolly at the origin with the camera RigOffset units
// behind it along +Z.
func NewRig(aspect float32) *Rig {
	r := &Rig{
		Dolly:  NewGroup(),
		Camera: NewPerspectiveCamera(RigFOV, aspect, RigNear, RigFar),
	}
	r.Camera.Position = mgl32.Vec3{0, 0, RigOffset}
	r.Dolly.Add(r.Camera)
	r.Dolly.UpdateMatrixWorld()
	return r
}

// SetTravel places the dolly at -elapsed along the view axis, a constant
// velocity of one unit per second, and refreshes the camera world matrix.
func (r *Rig) SetTravel(elapsed float64) {
	r.Dolly.Position[2] = -float32(elapsed)
	r.Dolly.UpdateMatrixWorld()
}

// DollyZ returns the dolly position along the view axis.
func (r *Rig) DollyZ() float32 {
	return r.Dolly.Position[2]
}

// SetAspect updates the camera aspect ratio and projection.
func (r *Rig) SetAspect(aspect float32) {
	r.Camera.Aspect = aspect
	r.Camera.UpdateProjectionMatrix()
}

// CameraWorldMatrix returns the camera transform including the dolly.
func (r *Rig) CameraWorldMatrix() mgl32.Mat4 {
	return r.Camera.MatrixWorld()
}
