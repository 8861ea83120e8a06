package main

import (
	"github.com/richinsley/gomandelbulb/options"
	"github.com/urfave/cli"
)

// loadOptions layers defaults, the optional config file and explicit flags.
func loadOptions(ctx *cli.Context) (*options.EffectOptions, error) {
	o := options.Default()
	if path := ctx.String("config"); path != "" {
		if err := o.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if ctx.IsSet("width") {
		o.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		o.Height = ctx.Int("height")
	}
	if ctx.IsSet("vertex") {
		o.Vertex = ctx.String("vertex")
	}
	if ctx.IsSet("fragment") {
		o.Fragment = ctx.String("fragment")
	}
	if ctx.IsSet("texture") {
		o.Texture = ctx.String("texture")
	}
	if ctx.IsSet("texture-filter") {
		o.TextureFilter = ctx.String("texture-filter")
	}
	if ctx.IsSet("texture-wrap") {
		o.TextureWrap = ctx.String("texture-wrap")
	}
	if ctx.IsSet("no-cache") {
		o.NoCache = ctx.Bool("no-cache")
	}
	if ctx.IsSet("gles") {
		o.GLES = ctx.Bool("gles")
	}

	if ctx.IsSet("fps") {
		o.Record.FPS = ctx.Int("fps")
	}
	if ctx.IsSet("duration") {
		o.Record.Duration = ctx.Float64("duration")
	}
	if ctx.IsSet("out") {
		o.Record.OutputFile = ctx.String("out")
	}
	if ctx.IsSet("ffmpeg") {
		o.Record.FFmpegPath = ctx.String("ffmpeg")
	}
	if ctx.IsSet("codec") {
		o.Record.Codec = ctx.String("codec")
	}
	return o, nil
}
