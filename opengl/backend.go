// Package opengl draws a scene with an OpenGL 4.1 core context. Every call
// must come from the goroutine that made the context current.
package opengl

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gomandelbulb/graphics"
	"github.com/richinsley/gomandelbulb/inputs"
	"github.com/richinsley/gomandelbulb/log"
	"github.com/richinsley/gomandelbulb/scene"
)

var logger = log.New("opengl")

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Init loads the GL entry points. The context must be current.
func Init() error {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
		if glInitErr == nil {
			logger.Infof("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
		}
	})
	return glInitErr
}

type quad struct {
	vao, vbo uint32
	count    int32
}

// Backend implements the session's graphics engine.
type Backend struct {
	surface  graphics.Drawable
	gles     bool
	programs map[*scene.ShaderMaterial]*program
	quads    map[*scene.PlaneGeometry]*quad
	textures []inputs.IChannel
	target   *offscreen
}

// NewBackend initialises GL on the current context. The viewport always
// covers the surface's framebuffer. When gles is set the shaders are
// translated to ESSL instead of desktop GLSL.
func NewBackend(surface graphics.Drawable, gles bool) (*Backend, error) {
	if err := Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &Backend{
		surface:  surface,
		gles:     gles,
		programs: make(map[*scene.ShaderMaterial]*program),
		quads:    make(map[*scene.PlaneGeometry]*quad),
	}, nil
}

// SetSize only logs; Render sizes the viewport from the framebuffer, which may
// be larger than the logical size by the device pixel ratio.
func (b *Backend) SetSize(width, height int) {
	fbWidth, fbHeight := b.surface.GetFramebufferSize()
	logger.Debugf("size %dx%d, framebuffer %dx%d", width, height, fbWidth, fbHeight)
}

// EnableOffscreen redirects Render and ReadPixels to a width x height
// framebuffer object instead of the window. Use it when the window is hidden.
func (b *Backend) EnableOffscreen(width, height int) error {
	if err := checkOffscreenSize(width, height); err != nil {
		return err
	}
	target, err := newOffscreen(width, height)
	if err != nil {
		return err
	}
	if b.target != nil {
		b.target.destroy()
	}
	b.target = target
	return nil
}

// bindTarget binds the draw framebuffer and sizes the viewport to it.
func (b *Backend) bindTarget() {
	if b.target != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, b.target.fbo)
		gl.Viewport(0, 0, int32(b.target.width), int32(b.target.height))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	fbWidth, fbHeight := b.surface.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
}

func (b *Backend) Compile(material *scene.ShaderMaterial) error {
	if material == nil {
		return fmt.Errorf("material is nil")
	}
	if old, ok := b.programs[material]; ok {
		gl.DeleteProgram(old.id)
		delete(b.programs, material)
	}
	p, err := b.buildProgram(material)
	if err != nil {
		return err
	}
	b.programs[material] = p
	logger.Debugf("compiled program %d", p.id)
	return nil
}

func (b *Backend) NewTexture(img image.Image, sampler inputs.Sampler) (inputs.IChannel, error) {
	ch, err := NewImageChannel(img, sampler)
	if err != nil {
		return nil, err
	}
	b.textures = append(b.textures, ch)
	return ch, nil
}

func (b *Backend) quadFor(g *scene.PlaneGeometry) *quad {
	if q, ok := b.quads[g]; ok {
		return q
	}
	vertices := g.Vertices()
	q := &quad{count: g.VertexCount()}
	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	const stride = 5 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	b.quads[g] = q
	return q
}

func (b *Backend) Render(s *scene.Scene, camera *scene.PerspectiveCamera) {
	s.UpdateMatrixWorld()

	b.bindTarget()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for _, m := range s.Meshes() {
		if m.Material == nil || m.Geometry == nil || !m.Visible(camera) {
			continue
		}
		p, ok := b.programs[m.Material]
		if !ok {
			continue
		}
		q := b.quadFor(m.Geometry)

		gl.UseProgram(p.id)
		if m.Material.Uniforms != nil {
			p.upload(m.Material.Uniforms)
		}
		gl.BindVertexArray(q.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, q.count)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels returns the last frame as RGBA rows, top row first. It reads the
// offscreen target when one is enabled, otherwise the window's back buffer.
func (b *Backend) ReadPixels(width, height int) []byte {
	rowSize := width * 4
	pixels := make([]byte, rowSize*height)
	if b.target != nil {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.target.fbo)
		gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	} else {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
		gl.ReadBuffer(gl.BACK)
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	// GL rows start at the bottom.
	tmp := make([]byte, rowSize)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pixels[top*rowSize : (top+1)*rowSize]
		z := pixels[bottom*rowSize : (bottom+1)*rowSize]
		copy(tmp, a)
		copy(a, z)
		copy(z, tmp)
	}
	return pixels
}

func (b *Backend) Destroy() {
	for m, p := range b.programs {
		gl.DeleteProgram(p.id)
		delete(b.programs, m)
	}
	for g, q := range b.quads {
		gl.DeleteVertexArrays(1, &q.vao)
		gl.DeleteBuffers(1, &q.vbo)
		delete(b.quads, g)
	}
	for _, t := range b.textures {
		t.Destroy()
	}
	b.textures = nil
	if b.target != nil {
		b.target.destroy()
		b.target = nil
	}
}
