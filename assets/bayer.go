package assets

import (
	"fmt"
	"image"
	"image/color"
)

// Bayer returns an n x n ordered-dither matrix as a grayscale image, where n
// is a power of two. Thresholds are spread evenly over 0..255.
func Bayer(n int) (*image.Gray, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("bayer size %d is not a power of two", n)
	}
	img := image.NewGray(image.Rect(0, 0, n, n))
	cells := n * n
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := bayerIndex(x, y, n)
			img.SetGray(x, y, color.Gray{Y: uint8(v * 255 / (cells - 1))})
		}
	}
	return img, nil
}

// bayerTexture returns Bayer(n) as an image.Image that is nil on error.
func bayerTexture(n int) (image.Image, error) {
	img, err := Bayer(n)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// bayerIndex interleaves the bits of x^y and y, most significant first.
func bayerIndex(x, y, n int) int {
	v := 0
	xy := x ^ y
	for bit := n >> 1; bit > 0; bit >>= 1 {
		v <<= 2
		if xy&bit != 0 {
			v |= 2
		}
		if y&bit != 0 {
			v |= 1
		}
	}
	return v
}
