package inputs

import (
	"testing"

	"github.com/richinsley/gomandelbulb/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerDefaults(t *testing.T) {
	var p Pointer
	x, y := p.Position()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
}

func TestPointerMoveIsNotClamped(t *testing.T) {
	rect := graphics.Rect{Left: 100, Top: 50, Width: 800, Height: 600}

	cases := []struct {
		clientX, clientY float64
		x, y             float32
	}{
		{150, 75, 50, 25},
		{20, 10, -80, -40},
		{2000, 1000, 1900, 950},
	}
	var p Pointer
	for _, c := range cases {
		p.Move(c.clientX, c.clientY, rect)
		x, y := p.Position()
		assert.Equal(t, c.x, x)
		assert.Equal(t, c.y, y)
	}
}

func TestNearestRepeat(t *testing.T) {
	s := NearestRepeat()
	assert.Equal(t, FilterNearest, s.MinFilter)
	assert.Equal(t, FilterNearest, s.MagFilter)
	assert.Equal(t, WrapRepeat, s.WrapS)
	assert.Equal(t, WrapRepeat, s.WrapT)
	assert.True(t, s.VFlip)
}

func TestNewSamplerMipmapMagnifiesLinear(t *testing.T) {
	s := NewSampler(FilterMipmap, WrapClamp, false)
	assert.Equal(t, FilterMipmap, s.MinFilter)
	assert.Equal(t, FilterLinear, s.MagFilter)
	assert.Equal(t, WrapClamp, s.WrapS)
	assert.Equal(t, WrapClamp, s.WrapT)
	assert.False(t, s.VFlip)
}

func TestParseSampler(t *testing.T) {
	f, err := ParseFilter("nearest")
	require.NoError(t, err)
	assert.Equal(t, FilterNearest, f)
	assert.Equal(t, "nearest", f.String())

	f, err = ParseFilter("mipmap")
	require.NoError(t, err)
	assert.Equal(t, "mipmap", f.String())

	_, err = ParseFilter("anisotropic")
	assert.Error(t, err)

	w, err := ParseWrap("clamp")
	require.NoError(t, err)
	assert.Equal(t, WrapClamp, w)
	assert.Equal(t, "clamp", w.String())

	_, err = ParseWrap("mirror")
	assert.Error(t, err)
}
