package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// offscreen is an RGBA8 colour texture with a depth renderbuffer. Recording
// draws here because a hidden window's default framebuffer has undefined
// contents.
type offscreen struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width, height     int
}

func checkOffscreenSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid offscreen size %dx%d", width, height)
	}
	return nil
}

func newOffscreen(width, height int) (*offscreen, error) {
	if err := checkOffscreenSize(width, height); err != nil {
		return nil, err
	}
	o := &offscreen{width: width, height: height}

	gl.GenFramebuffers(1, &o.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	gl.GenTextures(1, &o.textureID)
	gl.BindTexture(gl.TEXTURE_2D, o.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, o.textureID, 0)
	gl.GenRenderbuffers(1, &o.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, o.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, o.depthRenderbuffer)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		o.destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete (status 0x%x)", status)
	}
	logger.Infof("offscreen target %dx%d (fbo %d)", width, height, o.fbo)
	return o, nil
}

func (o *offscreen) destroy() {
	if o.fbo != 0 {
		gl.DeleteFramebuffers(1, &o.fbo)
		o.fbo = 0
	}
	if o.textureID != 0 {
		gl.DeleteTextures(1, &o.textureID)
		o.textureID = 0
	}
	if o.depthRenderbuffer != 0 {
		gl.DeleteRenderbuffers(1, &o.depthRenderbuffer)
		o.depthRenderbuffer = 0
	}
}
