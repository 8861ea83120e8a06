package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gomandelbulb/clock"
	"github.com/richinsley/gomandelbulb/graphics"
	"github.com/richinsley/gomandelbulb/inputs"
	"github.com/richinsley/gomandelbulb/log"
	"github.com/richinsley/gomandelbulb/scene"
	"github.com/richinsley/gomandelbulb/uniforms"
)

var logger = log.New("renderer")

// Session owns the scene, the camera rig, the frame clock, the uniform bundle
// and the backend. It is not safe for concurrent use; input callbacks and
// frames must run on the goroutine that owns the graphics context.
type Session struct {
	backend  Backend
	surface  graphics.Drawable
	viewport graphics.Size

	scene   *scene.Scene
	rig     *scene.Rig
	clock   *clock.Clock
	pointer inputs.Pointer

	bundle *uniforms.Bundle
	quad   *scene.Mesh

	timestamp float64
	frames    uint64
	active    bool
}

// NewSession builds the scene and camera rig for a viewport of the given
// logical size and starts the frame clock on source (nil selects the system
// clock). The backend is sized to viewport.
func NewSession(backend Backend, surface graphics.Drawable, viewport graphics.Size, source clock.Source) (*Session, error) {
	if !viewport.Valid() {
		return nil, &InvalidViewportError{Width: viewport.Width, Height: viewport.Height}
	}

	s := &Session{
		backend:  backend,
		surface:  surface,
		viewport: viewport,
		scene:    scene.New(),
		rig:      scene.NewRig(viewport.Aspect()),
		active:   true,
	}
	s.scene.Add(s.rig.Dolly)
	s.scene.UpdateMatrixWorld()
	s.clock = clock.New(source)

	backend.SetSize(viewport.Width, viewport.Height)
	logger.Infof("session initialized with viewport %dx%d", viewport.Width, viewport.Height)
	return s, nil
}

// OnPointerMove records a pointer position given in window space. The canvas
// origin is subtracted; the result is not clamped.
func (s *Session) OnPointerMove(clientX, clientY float64) {
	s.pointer.Move(clientX, clientY, s.surface.BoundingRect())
}

// AdvanceFrame updates every per-frame uniform and issues one draw call.
// rawTimestamp is the scheduler's timestamp in milliseconds; it is kept for
// inspection but iTime always follows the session clock.
func (s *Session) AdvanceFrame(rawTimestamp float64) {
	if !s.active {
		return
	}

	elapsed := s.clock.Elapsed()
	s.rig.SetTravel(elapsed)

	s.timestamp = rawTimestamp * 0.001

	if b := s.bundle; b != nil {
		width, height := s.surface.GetFramebufferSize()
		b.IResolution = mgl32.Vec3{float32(width), float32(height), 1}
		b.ITime = float32(elapsed)
		x, y := s.pointer.Position()
		b.SetMouse(x, y)
		b.CameraWorldMatrix = s.rig.CameraWorldMatrix()
	}

	s.backend.Render(s.scene, s.rig.Camera)
	s.frames++
}

// Resize follows a change of the host's logical size. The camera aspect and
// the inverse projection uniform are updated; the resolution uniform keeps
// its initial value.
func (s *Session) Resize(width, height int) {
	size := graphics.Size{Width: width, Height: height}
	if !size.Valid() {
		logger.Warningf("ignoring resize to %dx%d", width, height)
		return
	}
	s.rig.SetAspect(size.Aspect())
	if s.bundle != nil {
		s.bundle.CameraProjectionMatrixInverse = s.rig.Camera.ProjectionMatrixInverse()
	}
	s.backend.SetSize(width, height)
	logger.Debugf("resized to %dx%d", width, height)
}

// Close stops the session and releases the texture and every backend
// resource. Further frames are ignored. Close is idempotent.
func (s *Session) Close() {
	if !s.active {
		return
	}
	s.active = false
	if s.bundle != nil {
		s.bundle.IChannel0().Destroy()
	}
	s.backend.Destroy()
	logger.Infof("session closed after %d frames", s.frames)
}

// Active reports whether the session still accepts frames.
func (s *Session) Active() bool { return s.active }

// Frames returns the number of frames drawn so far.
func (s *Session) Frames() uint64 { return s.frames }

// Timestamp returns the last scheduler timestamp, in seconds.
func (s *Session) Timestamp() float64 { return s.timestamp }

// Uniforms returns the bundle, or nil before LoadEffect.
func (s *Session) Uniforms() *uniforms.Bundle { return s.bundle }

// Rig returns the camera rig.
func (s *Session) Rig() *scene.Rig { return s.rig }

// Scene returns the scene graph.
func (s *Session) Scene() *scene.Scene { return s.scene }
