package renderer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gomandelbulb/assets"
	"github.com/richinsley/gomandelbulb/clock"
	"github.com/richinsley/gomandelbulb/graphics"
	"github.com/richinsley/gomandelbulb/inputs"
	"github.com/richinsley/gomandelbulb/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	passVertex   = "void main() { gl_Position = vec4(position, 1.0); }"
	passFragment = "void main() { gl_FragColor = vec4(1.0); }"
)

type fixture struct {
	backend *fakeBackend
	surface *fakeSurface
	clock   *clock.Manual
	texture *fakeTexture
	session *Session
}

func newFixture(t *testing.T, width, height int) *fixture {
	t.Helper()
	f := &fixture{
		backend: &fakeBackend{},
		surface: &fakeSurface{fbWidth: width * 2, fbHeight: height * 2},
		clock:   clock.NewManual(0),
		texture: &fakeTexture{id: 42},
	}
	s, err := NewSession(f.backend, f.surface, graphics.Size{Width: width, Height: height}, f.clock)
	require.NoError(t, err)
	require.NoError(t, s.LoadEffect(passVertex, passFragment, f.texture))
	f.session = s
	return f
}

func TestNewSessionRejectsInvalidViewport(t *testing.T) {
	backend := &fakeBackend{}
	for _, size := range []graphics.Size{{Width: 0, Height: 600}, {Width: 800, Height: 0}, {Width: -1, Height: 600}} {
		s, err := NewSession(backend, &fakeSurface{}, size, nil)
		assert.Nil(t, s)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidViewport))

		var verr *InvalidViewportError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, size.Width, verr.Width)
		assert.Equal(t, size.Height, verr.Height)
	}
	assert.Empty(t, backend.sizes, "backend must not be touched")
}

func TestNewSessionAspect(t *testing.T) {
	backend := &fakeBackend{}
	s, err := NewSession(backend, &fakeSurface{}, graphics.Size{Width: 800, Height: 600}, clock.NewManual(0))
	require.NoError(t, err)

	cam := s.Rig().Camera
	assert.Equal(t, float32(800)/float32(600), cam.Aspect)
	assert.Equal(t, scene.RigFOV, cam.FOV)
	assert.Equal(t, scene.RigNear, cam.Near)
	assert.Equal(t, scene.RigFar, cam.Far)
	assert.Equal(t, [][2]int{{800, 600}}, backend.sizes)
	assert.True(t, s.Active())
	assert.Nil(t, s.Uniforms())
}

func TestLoadEffectBuildsBundle(t *testing.T) {
	f := newFixture(t, 800, 600)
	u := f.session.Uniforms()
	require.NotNil(t, u)

	assert.Equal(t, mgl32.Vec2{800, 600}, u.Resolution)
	assert.Equal(t, float32(0), u.ITime)
	assert.Equal(t, mgl32.Vec3{}, u.IResolution)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, u.IMouse)
	assert.Equal(t, f.session.Rig().CameraWorldMatrix(), u.CameraWorldMatrix)
	assert.Equal(t, f.session.Rig().Camera.ProjectionMatrixInverse(), u.CameraProjectionMatrixInverse)
	assert.Same(t, f.texture, u.IChannel0())

	require.Len(t, f.backend.compiled, 1)
	m := f.backend.compiled[0]
	assert.True(t, m.Extensions.Derivatives)
	assert.Equal(t, passVertex, m.VertexShader)
	assert.Equal(t, passFragment, m.FragmentShader)
	assert.Same(t, u, m.Uniforms)

	meshes := f.session.Scene().Meshes()
	require.Len(t, meshes, 1)
	assert.False(t, meshes[0].FrustumCulled)
	assert.Equal(t, float32(2), meshes[0].Geometry.Width)
	assert.Equal(t, float32(2), meshes[0].Geometry.Height)
}

func TestLoadEffectPreconditions(t *testing.T) {
	newSession := func() *Session {
		s, err := NewSession(&fakeBackend{}, &fakeSurface{}, graphics.Size{Width: 8, Height: 8}, nil)
		require.NoError(t, err)
		return s
	}
	tex := &fakeTexture{}

	cases := map[string]func() error{
		"empty vertex":   func() error { return newSession().LoadEffect("", passFragment, tex) },
		"empty fragment": func() error { return newSession().LoadEffect(passVertex, "", tex) },
		"nil texture":    func() error { return newSession().LoadEffect(passVertex, passFragment, nil) },
		"closed": func() error {
			s := newSession()
			s.Close()
			return s.LoadEffect(passVertex, passFragment, tex)
		},
		"loaded twice": func() error {
			s := newSession()
			require.NoError(t, s.LoadEffect(passVertex, passFragment, tex))
			return s.LoadEffect(passVertex, passFragment, tex)
		},
	}
	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPrecondition))
			var perr *PreconditionError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestLoadEffectValidatesBundle(t *testing.T) {
	backend := &fakeBackend{}
	s, err := NewSession(backend, &fakeSurface{}, graphics.Size{Width: 8, Height: 8}, nil)
	require.NoError(t, err)
	// A zero logical size cannot pass NewSession; force it to reach the
	// bundle check.
	s.viewport = graphics.Size{}

	err = s.LoadEffect(passVertex, passFragment, &fakeTexture{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrecondition))
	assert.Contains(t, err.Error(), "resolution")
	assert.Empty(t, backend.compiled)
	assert.Nil(t, s.Uniforms())
}

func TestLoadEffectCompileFailure(t *testing.T) {
	backend := &fakeBackend{compileErr: errors.New("syntax error")}
	s, err := NewSession(backend, &fakeSurface{}, graphics.Size{Width: 8, Height: 8}, nil)
	require.NoError(t, err)

	err = s.LoadEffect(passVertex, passFragment, &fakeTexture{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.compileErr))
	assert.Nil(t, s.Uniforms())
	assert.Empty(t, s.Scene().Meshes())
}

func TestLoadAssets(t *testing.T) {
	backend := &fakeBackend{}
	s, err := NewSession(backend, &fakeSurface{}, graphics.Size{Width: 8, Height: 8}, nil)
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 128})
	require.NoError(t, s.LoadAssets(&assets.Effect{
		VertexSource:   passVertex,
		FragmentSource: passFragment,
		Texture:        img,
	}, inputs.NearestRepeat()))

	require.Len(t, backend.textures, 1)
	assert.Equal(t, inputs.NearestRepeat(), backend.textures[0].sampler)
	assert.Same(t, backend.textures[0], s.Uniforms().IChannel0())
}

func TestLoadAssetsReleasesTextureOnFailure(t *testing.T) {
	backend := &fakeBackend{}
	s, err := NewSession(backend, &fakeSurface{}, graphics.Size{Width: 8, Height: 8}, nil)
	require.NoError(t, err)

	err = s.LoadAssets(&assets.Effect{
		FragmentSource: passFragment,
		Texture:        image.NewGray(image.Rect(0, 0, 1, 1)),
	}, inputs.NearestRepeat())
	assert.True(t, errors.Is(err, ErrPrecondition))
	require.Len(t, backend.textures, 1)
	assert.Equal(t, 1, backend.textures[0].destroyed)

	assert.True(t, errors.Is(s.LoadAssets(nil, inputs.NearestRepeat()), ErrPrecondition))
}

func TestDollyTravelsAtUnitSpeed(t *testing.T) {
	f := newFixture(t, 800, 600)
	for _, elapsed := range []float64{0, 0.5, 1, 2.25, 10, 123.5} {
		f.clock.Set(elapsed)
		f.session.AdvanceFrame(0)
		assert.Equal(t, -float32(elapsed), f.session.Rig().DollyZ())
		assert.Equal(t, -float32(elapsed), f.backend.last().dollyZ)

		world := f.session.Uniforms().CameraWorldMatrix
		assert.InDelta(t, scene.RigOffset-float32(elapsed), world[14], 1e-4)
	}
}

func TestIResolutionIsReadEveryFrame(t *testing.T) {
	f := newFixture(t, 800, 600)

	f.session.AdvanceFrame(0)
	assert.Equal(t, mgl32.Vec3{1600, 1200, 1}, f.backend.last().bundle.IResolution)

	f.surface.fbWidth, f.surface.fbHeight = 1024, 512
	f.session.AdvanceFrame(16)
	assert.Equal(t, mgl32.Vec3{1024, 512, 1}, f.backend.last().bundle.IResolution)
}

func TestResizeKeepsResolution(t *testing.T) {
	f := newFixture(t, 800, 600)
	projInv := f.session.Uniforms().CameraProjectionMatrixInverse

	f.session.Resize(400, 400)
	f.surface.fbWidth, f.surface.fbHeight = 400, 400
	f.session.AdvanceFrame(0)

	u := f.backend.last().bundle
	assert.Equal(t, mgl32.Vec2{800, 600}, u.Resolution)
	assert.Equal(t, mgl32.Vec3{400, 400, 1}, u.IResolution)
	assert.Equal(t, float32(1), f.session.Rig().Camera.Aspect)
	assert.NotEqual(t, projInv, u.CameraProjectionMatrixInverse)
	assert.Equal(t, [2]int{400, 400}, f.backend.sizes[len(f.backend.sizes)-1])

	sizes := len(f.backend.sizes)
	f.session.Resize(0, 400)
	assert.Len(t, f.backend.sizes, sizes)
	assert.Equal(t, float32(1), f.session.Rig().Camera.Aspect)
}

func TestPointerIsCanvasLocalAndUnclamped(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.surface.rect = graphics.Rect{Left: 100, Top: 50, Width: 800, Height: 600}

	cases := []struct {
		x, y   float64
		expect mgl32.Vec4
	}{
		{150, 80, mgl32.Vec4{50, 30, 0, 1}},
		{100, 50, mgl32.Vec4{0, 0, 0, 1}},
		{20, 10, mgl32.Vec4{-80, -40, 0, 1}},
		{1200, 900, mgl32.Vec4{1100, 850, 0, 1}},
	}
	for _, c := range cases {
		f.session.OnPointerMove(c.x, c.y)
		f.session.AdvanceFrame(0)
		assert.Equal(t, c.expect, f.backend.last().bundle.IMouse)
	}
}

func TestITimeFollowsClockNotTimestamp(t *testing.T) {
	f := newFixture(t, 800, 600)

	var last float32 = -1
	readings := []float64{0.1, 0.2, 0.35, 1, 7.5}
	for i, reading := range readings {
		f.clock.Set(reading)
		// A raw timestamp unrelated to the clock.
		raw := float64(100000 - i*1000)
		f.session.AdvanceFrame(raw)

		iTime := f.backend.last().bundle.ITime
		assert.Greater(t, iTime, last)
		assert.Equal(t, float32(reading), iTime)
		assert.Equal(t, raw*0.001, f.session.Timestamp())
		last = iTime
	}
}

func TestIChannel0IsWriteOnce(t *testing.T) {
	f := newFixture(t, 800, 600)
	for i := 0; i < 5; i++ {
		f.clock.Advance(0.016)
		f.session.AdvanceFrame(float64(i) * 16)
	}
	require.Len(t, f.backend.frames, 5)
	for _, frame := range f.backend.frames {
		assert.Same(t, f.texture, frame.channel)
	}
	assert.Same(t, f.texture, f.session.Uniforms().IChannel0())
}

func TestEndToEndThreeFrames(t *testing.T) {
	backend := &fakeBackend{}
	surface := &fakeSurface{fbWidth: 800, fbHeight: 600}
	manual := clock.NewManual(0)

	s, err := NewSession(backend, surface, graphics.Size{Width: 800, Height: 600}, manual)
	require.NoError(t, err)
	require.NoError(t, s.LoadEffect(passVertex, passFragment, &fakeTexture{id: 1}))

	readings := []float64{0.0, 0.016, 0.033}
	for _, reading := range readings {
		manual.Set(reading)
		s.AdvanceFrame(reading * 1000)

		frame := backend.last()
		assert.Equal(t, -float32(reading), s.Rig().DollyZ())
		assert.Equal(t, float32(reading), frame.bundle.ITime)
		assert.Equal(t, 1, frame.meshes)
	}
	assert.Equal(t, uint64(3), s.Frames())
}

func TestAdvanceFrameBeforeLoadEffect(t *testing.T) {
	backend := &fakeBackend{}
	manual := clock.NewManual(0)
	s, err := NewSession(backend, &fakeSurface{}, graphics.Size{Width: 8, Height: 8}, manual)
	require.NoError(t, err)

	manual.Set(2)
	s.AdvanceFrame(0)
	assert.Equal(t, float32(-2), s.Rig().DollyZ())
	require.Len(t, backend.frames, 1)
	assert.Equal(t, 0, backend.frames[0].meshes)
}

func TestCloseReleasesResources(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.session.AdvanceFrame(0)

	f.session.Close()
	f.session.Close()

	assert.False(t, f.session.Active())
	assert.Equal(t, 1, f.texture.destroyed)
	assert.Equal(t, 1, f.backend.destroyed)

	f.session.AdvanceFrame(16)
	assert.Len(t, f.backend.frames, 1)
	assert.Equal(t, uint64(1), f.session.Frames())
}
