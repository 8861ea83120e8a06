package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gomandelbulb/assets"
	"github.com/richinsley/gomandelbulb/inputs"
	"github.com/richinsley/gomandelbulb/scene"
	"github.com/richinsley/gomandelbulb/uniforms"
)

// LoadEffect builds the uniform bundle, compiles the shader material and adds
// the full-screen quad to the scene. It must be called exactly once, after
// NewSession, with both sources and the texture available; violations are
// reported as *PreconditionError.
func (s *Session) LoadEffect(vertexSource, fragmentSource string, texture inputs.IChannel) error {
	const op = "load effect"
	switch {
	case !s.active:
		return &PreconditionError{Op: op, Reason: "session is closed"}
	case s.quad != nil:
		return &PreconditionError{Op: op, Reason: "effect already loaded"}
	case vertexSource == "":
		return &PreconditionError{Op: op, Reason: "vertex source is empty"}
	case fragmentSource == "":
		return &PreconditionError{Op: op, Reason: "fragment source is empty"}
	case texture == nil:
		return &PreconditionError{Op: op, Reason: "texture is not ready"}
	}

	bundle, err := uniforms.New(
		mgl32.Vec2{float32(s.viewport.Width), float32(s.viewport.Height)},
		s.rig.CameraWorldMatrix(),
		s.rig.Camera.ProjectionMatrixInverse(),
		texture,
	)
	if err != nil {
		return &PreconditionError{Op: op, Reason: err.Error()}
	}
	if err := bundle.Validate(); err != nil {
		return &PreconditionError{Op: op, Reason: err.Error()}
	}

	material := &scene.ShaderMaterial{
		VertexShader:   vertexSource,
		FragmentShader: fragmentSource,
		Uniforms:       bundle,
		Extensions:     scene.Extensions{Derivatives: true},
	}
	if err := s.backend.Compile(material); err != nil {
		return fmt.Errorf("failed to compile effect material: %w", err)
	}

	// The quad sits at the origin, which the camera flies past; it must be
	// drawn regardless of where the frustum is.
	quad := scene.NewMesh(scene.NewPlaneGeometry(2, 2), material)
	quad.FrustumCulled = false
	s.scene.Add(quad)
	s.scene.UpdateMatrixWorld()

	s.bundle = bundle
	s.quad = quad
	logger.Infof("effect loaded, iChannel0 %v", texture.ChannelRes())
	return nil
}

// LoadAssets uploads the texture of a ready asset pipeline with sampler
// (normally inputs.NearestRepeat) and loads the effect.
func (s *Session) LoadAssets(effect *assets.Effect, sampler inputs.Sampler) error {
	if effect == nil {
		return &PreconditionError{Op: "load assets", Reason: "assets are not ready"}
	}
	texture, err := s.backend.NewTexture(effect.Texture, sampler)
	if err != nil {
		return fmt.Errorf("failed to create iChannel0 texture: %w", err)
	}
	if err := s.LoadEffect(effect.VertexSource, effect.FragmentSource, texture); err != nil {
		texture.Destroy()
		return err
	}
	return nil
}
