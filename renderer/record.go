package renderer

import (
	"context"
	"errors"
	"fmt"

	"github.com/richinsley/gomandelbulb/clock"
	"github.com/richinsley/gomandelbulb/encoder"
)

// FrameSink receives rendered frames in presentation order.
type FrameSink interface {
	WriteFrame(frame *encoder.Frame) error
}

// Record renders frames at a fixed step of 1/fps seconds. The session must
// have been created on manual so that each frame sees exactly i/fps seconds
// of elapsed time.
func Record(ctx context.Context, s *Session, host FrameHost, manual *clock.Manual, reader FrameReader, sink FrameSink, frames, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("record: fps must be positive, got %d", fps)
	}
	if manual == nil || reader == nil || sink == nil {
		return errors.New("record: clock, reader and sink are required")
	}

	base := manual.Now()
	logger.Noticef("recording %d frames at %d fps", frames, fps)
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Active() || host.ShouldClose() {
			logger.Warningf("recording stopped early at frame %d", i)
			return nil
		}

		t := float64(i) / float64(fps)
		manual.Set(base + t)
		s.AdvanceFrame(t * 1000)

		width, height := s.surface.GetFramebufferSize()
		frame := &encoder.Frame{
			Pixels: reader.ReadPixels(width, height),
			PTS:    int64(i),
		}
		if err := sink.WriteFrame(frame); err != nil {
			return fmt.Errorf("record: frame %d: %w", i, err)
		}
		host.EndFrame()

		if (i+1)%fps == 0 {
			logger.Infof("recorded %d/%d frames", i+1, frames)
		}
	}
	return nil
}
