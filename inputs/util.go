package inputs

import "fmt"

// Filter selects texture minification/magnification filtering.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
	FilterMipmap
)

// Wrap selects texture coordinate wrapping.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// Sampler is the texture configuration established once at upload.
type Sampler struct {
	MinFilter Filter
	MagFilter Filter
	WrapS     Wrap
	WrapT     Wrap
	VFlip     bool
}

// NearestRepeat is the sampler the dither texture uses: nearest-neighbour
// filtering both ways and repeat wrapping on both axes. Rows are flipped on
// upload so the image's top row lands at v = 1.
func NearestRepeat() Sampler {
	return NewSampler(FilterNearest, WrapRepeat, true)
}

// NewSampler applies one filter and one wrap mode to both directions. Mipmaps
// only apply to minification; magnification falls back to linear.
func NewSampler(filter Filter, wrap Wrap, vflip bool) Sampler {
	mag := filter
	if mag == FilterMipmap {
		mag = FilterLinear
	}
	return Sampler{
		MinFilter: filter,
		MagFilter: mag,
		WrapS:     wrap,
		WrapT:     wrap,
		VFlip:     vflip,
	}
}

// ParseFilter converts a config string ("nearest", "linear", "mipmap").
func ParseFilter(name string) (Filter, error) {
	switch name {
	case "nearest":
		return FilterNearest, nil
	case "linear", "":
		return FilterLinear, nil
	case "mipmap":
		return FilterMipmap, nil
	default:
		return FilterLinear, fmt.Errorf("unknown texture filter %q", name)
	}
}

// ParseWrap converts a config string ("repeat", "clamp").
func ParseWrap(name string) (Wrap, error) {
	switch name {
	case "repeat", "":
		return WrapRepeat, nil
	case "clamp":
		return WrapClamp, nil
	default:
		return WrapRepeat, fmt.Errorf("unknown texture wrap %q", name)
	}
}

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterMipmap:
		return "mipmap"
	default:
		return "linear"
	}
}

func (w Wrap) String() string {
	if w == WrapClamp {
		return "clamp"
	}
	return "repeat"
}
