package opengl

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gomandelbulb/inputs"
)

// ImageChannel is a static 2D texture uploaded once.
type ImageChannel struct {
	textureID  uint32
	resolution [3]float32
}

// vflip flips rows in place order, top row last.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// toRGBA converts any image to tightly packed RGBA at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// NewImageChannel uploads img as an RGBA8 texture configured by sampler.
func NewImageChannel(img image.Image, sampler inputs.Sampler) (*ImageChannel, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	rgba := toRGBA(img)
	if sampler.VFlip {
		rgba = vflip(rgba)
	}

	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapMode(sampler.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapMode(sampler.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilterMode(sampler.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilterMode(sampler.MagFilter))

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	if sampler.MinFilter == inputs.FilterMipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Debugf("uploaded %dx%d texture %d (%s/%s)", width, height, textureID, sampler.MinFilter, sampler.WrapS)

	return &ImageChannel{
		textureID:  textureID,
		resolution: [3]float32{float32(width), float32(height), 1.0},
	}, nil
}

func wrapMode(w inputs.Wrap) int32 {
	if w == inputs.WrapClamp {
		return gl.CLAMP_TO_EDGE
	}
	return gl.REPEAT
}

func minFilterMode(f inputs.Filter) int32 {
	switch f {
	case inputs.FilterMipmap:
		return gl.LINEAR_MIPMAP_LINEAR
	case inputs.FilterNearest:
		return gl.NEAREST
	default:
		return gl.LINEAR
	}
}

func magFilterMode(f inputs.Filter) int32 {
	if f == inputs.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func (c *ImageChannel) GetTextureID() uint32 {
	return c.textureID
}

func (c *ImageChannel) ChannelRes() [3]float32 {
	return c.resolution
}

func (c *ImageChannel) Destroy() {
	if c.textureID != 0 {
		gl.DeleteTextures(1, &c.textureID)
		c.textureID = 0
	}
}

func (c *ImageChannel) GetSamplerType() string {
	return "sampler2D"
}
