// Package options holds the settings shared by the run and record commands.
// Values come from defaults, then an optional TOML file, then CLI flags.
package options

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/richinsley/gomandelbulb/assets"
	"github.com/richinsley/gomandelbulb/inputs"
	"github.com/richinsley/gomandelbulb/log"
)

// EffectOptions configures a session and, for recording, the encoder.
type EffectOptions struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`

	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	Texture  string `toml:"texture"`
	NoCache  bool   `toml:"no_cache"`

	// Texture sampling: "nearest", "linear" or "mipmap"; "repeat" or "clamp".
	TextureFilter string `toml:"texture_filter"`
	TextureWrap   string `toml:"texture_wrap"`
	// TextureFlip uploads the image bottom row first, so its top row is at v = 1.
	TextureFlip bool `toml:"texture_flip"`

	// GLES translates shaders to ESSL instead of desktop GLSL 4.10.
	GLES bool `toml:"gles"`

	LogLevel string `toml:"log_level"`

	Record RecordOptions `toml:"record"`
}

// RecordOptions configures offline rendering to a video file.
type RecordOptions struct {
	FPS        int     `toml:"fps"`
	Duration   float64 `toml:"duration"`
	OutputFile string  `toml:"output"`
	FFmpegPath string  `toml:"ffmpeg"`
	Codec      string  `toml:"codec"`
}

// Default returns the built-in configuration: the embedded mandelbulb with a
// generated dither texture in a 1280x720 window.
func Default() *EffectOptions {
	refs := assets.DefaultRefs()
	return &EffectOptions{
		Width:    1280,
		Height:   720,
		Title:    "gomandelbulb",
		Vertex:   refs.Vertex,
		Fragment: refs.Fragment,
		Texture:  refs.Texture,

		TextureFilter: inputs.FilterNearest.String(),
		TextureWrap:   inputs.WrapRepeat.String(),
		TextureFlip:   true,

		LogLevel: "notice",
		Record: RecordOptions{
			FPS:        60,
			Duration:   10,
			OutputFile: "output.mp4",
			Codec:      "h264",
		},
	}
}

// LoadFile overlays the TOML file at path onto o. Keys absent from the file
// keep their current values.
func (o *EffectOptions) LoadFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return o.Decode(data)
}

// Decode overlays TOML data onto o. Unknown keys are an error.
func (o *EffectOptions) Decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(o); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("invalid config at line %d column %d: %w", row, col, err)
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Encode renders o as TOML.
func (o *EffectOptions) Encode() ([]byte, error) {
	return toml.Marshal(o)
}

// Refs returns the asset references to load.
func (o *EffectOptions) Refs() assets.Refs {
	return assets.Refs{Vertex: o.Vertex, Fragment: o.Fragment, Texture: o.Texture}
}

// Sampler builds the iChannel0 sampler from the texture settings.
func (o *EffectOptions) Sampler() (inputs.Sampler, error) {
	filter, err := inputs.ParseFilter(o.TextureFilter)
	if err != nil {
		return inputs.Sampler{}, err
	}
	wrap, err := inputs.ParseWrap(o.TextureWrap)
	if err != nil {
		return inputs.Sampler{}, err
	}
	return inputs.NewSampler(filter, wrap, o.TextureFlip), nil
}

// Validate checks the settings every command needs.
func (o *EffectOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if o.Vertex == "" || o.Fragment == "" || o.Texture == "" {
		return errors.New("vertex, fragment and texture must all be set")
	}
	if _, err := o.Sampler(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(o.LogLevel); err != nil {
		return err
	}
	return nil
}

// ValidateRecord additionally checks the recording settings.
func (o *EffectOptions) ValidateRecord() error {
	if err := o.Validate(); err != nil {
		return err
	}
	r := o.Record
	if r.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", r.FPS)
	}
	if r.Duration <= 0 {
		return fmt.Errorf("invalid duration %v", r.Duration)
	}
	if r.OutputFile == "" {
		return errors.New("output file is required")
	}
	switch r.Codec {
	case "h264", "hevc":
	default:
		return fmt.Errorf("unsupported codec %q", r.Codec)
	}
	return nil
}

// Frames is the number of frames a recording produces.
func (r RecordOptions) Frames() int {
	n := int(r.Duration * float64(r.FPS))
	if n < 1 {
		n = 1
	}
	return n
}
