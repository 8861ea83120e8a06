package main

import (
	"github.com/richinsley/gomandelbulb/clock"
	"github.com/richinsley/gomandelbulb/encoder"
	"github.com/richinsley/gomandelbulb/renderer"
	"github.com/urfave/cli"
)

// Render the effect offscreen into a video file.
func recordEffect(ctx *cli.Context) error {
	o, err := loadOptions(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(ctx, o.LogLevel); err != nil {
		return err
	}
	if err := o.ValidateRecord(); err != nil {
		return err
	}

	runCtx, cancel := signalContext()
	defer cancel()

	manual := clock.NewManual(0)
	h, err := openHost(runCtx, o, false, manual)
	if err != nil {
		return err
	}
	defer h.close()

	fbWidth, fbHeight := h.window.GetFramebufferSize()
	if err := h.backend.EnableOffscreen(fbWidth, fbHeight); err != nil {
		return err
	}
	sink, err := encoder.NewFFmpegSink(encoder.Options{
		Width:      fbWidth,
		Height:     fbHeight,
		FPS:        o.Record.FPS,
		OutputFile: o.Record.OutputFile,
		FFmpegPath: o.Record.FFmpegPath,
		Codec:      o.Record.Codec,
	})
	if err != nil {
		return err
	}

	frames := o.Record.Frames()
	err = renderer.Record(runCtx, h.session, h.window, manual, h.backend, sink, frames, o.Record.FPS)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	logger.Noticef("wrote %d frames to %s", h.session.Frames(), o.Record.OutputFile)
	return nil
}
