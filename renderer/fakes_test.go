package renderer

import (
	"errors"
	"image"

	"github.com/richinsley/gomandelbulb/encoder"
	"github.com/richinsley/gomandelbulb/graphics"
	"github.com/richinsley/gomandelbulb/inputs"
	"github.com/richinsley/gomandelbulb/scene"
	"github.com/richinsley/gomandelbulb/uniforms"
)

type fakeTexture struct {
	id        uint32
	sampler   inputs.Sampler
	destroyed int
}

func (t *fakeTexture) GetTextureID() uint32   { return t.id }
func (t *fakeTexture) ChannelRes() [3]float32 { return [3]float32{1, 1, 1} }
func (t *fakeTexture) Destroy()               { t.destroyed++ }
func (t *fakeTexture) GetSamplerType() string { return "sampler2D" }

// frameSnapshot is a copy of what a real backend would upload on a draw.
type frameSnapshot struct {
	bundle  uniforms.Bundle
	channel inputs.IChannel
	meshes  int
	dollyZ  float32
}

type fakeBackend struct {
	sizes      [][2]int
	compiled   []*scene.ShaderMaterial
	compileErr error
	textures   []*fakeTexture
	frames     []frameSnapshot
	destroyed  int
	pixels     []byte
}

func (b *fakeBackend) SetSize(width, height int) {
	b.sizes = append(b.sizes, [2]int{width, height})
}

func (b *fakeBackend) Compile(material *scene.ShaderMaterial) error {
	if b.compileErr != nil {
		return b.compileErr
	}
	b.compiled = append(b.compiled, material)
	return nil
}

func (b *fakeBackend) NewTexture(img image.Image, sampler inputs.Sampler) (inputs.IChannel, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	t := &fakeTexture{id: uint32(len(b.textures) + 1), sampler: sampler}
	b.textures = append(b.textures, t)
	return t, nil
}

func (b *fakeBackend) Render(s *scene.Scene, camera *scene.PerspectiveCamera) {
	snap := frameSnapshot{}
	for _, m := range s.Meshes() {
		if !m.Visible(camera) {
			continue
		}
		snap.meshes++
		if u := m.Material.Uniforms; u != nil {
			snap.bundle = *u
			snap.channel = u.IChannel0()
		}
	}
	if p := camera.Parent(); p != nil {
		snap.dollyZ = p.Position[2]
	}
	b.frames = append(b.frames, snap)
}

func (b *fakeBackend) Destroy() { b.destroyed++ }

func (b *fakeBackend) ReadPixels(width, height int) []byte {
	if b.pixels != nil {
		return b.pixels
	}
	return make([]byte, width*height*4)
}

func (b *fakeBackend) last() frameSnapshot {
	return b.frames[len(b.frames)-1]
}

type fakeSurface struct {
	fbWidth, fbHeight int
	rect              graphics.Rect
}

func (s *fakeSurface) GetFramebufferSize() (int, int) { return s.fbWidth, s.fbHeight }
func (s *fakeSurface) BoundingRect() graphics.Rect    { return s.rect }

// fakeHost closes after maxFrames presented frames and runs hook on each
// EndFrame, the way window callbacks fire during event polling.
type fakeHost struct {
	maxFrames int
	presented int
	time      float64
	step      float64
	hook      func(frame int)
}

func (h *fakeHost) ShouldClose() bool { return h.maxFrames > 0 && h.presented >= h.maxFrames }

func (h *fakeHost) EndFrame() {
	h.presented++
	h.time += h.step
	if h.hook != nil {
		h.hook(h.presented)
	}
}

func (h *fakeHost) Time() float64 { return h.time }

type fakeSink struct {
	frames []*encoder.Frame
	err    error
}

func (s *fakeSink) WriteFrame(frame *encoder.Frame) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, frame)
	return nil
}
