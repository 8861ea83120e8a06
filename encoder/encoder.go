package encoder

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/richinsley/gomandelbulb/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var logger = log.New("encoder")

// ErrClosed is returned when writing to a sink after Close.
var ErrClosed = errors.New("encoder: sink is closed")

// Frame is a single rendered frame, tightly packed RGBA, top row first.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Options describe the encoded output.
type Options struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFmpegPath string
	// Codec is "h264" (default) or "hevc".
	Codec string
}

// InputArgs describes the raw frames written to ffmpeg's stdin.
func InputArgs(o Options) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", o.Width, o.Height),
		"framerate": fmt.Sprintf("%d", o.FPS),
	}
}

// OutputArgs selects a software encoder for the requested codec.
func OutputArgs(o Options) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
		"c:v":     "libx264",
		"preset":  "medium",
	}
	if o.Codec == "hevc" {
		args["c:v"] = "libx265"
	}
	return args
}

// Command builds the ffmpeg invocation reading raw frames from r.
func Command(o Options, r io.Reader) *ffmpeg.Stream {
	cmd := ffmpeg.Input("pipe:", InputArgs(o)).
		Output(o.OutputFile, OutputArgs(o)).
		OverWriteOutput().WithInput(r).ErrorToStdOut()
	if o.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(o.FFmpegPath)
	}
	return cmd
}

// FFmpegSink streams frames into an ffmpeg process. WriteFrame hands frames
// to a writer goroutine so readback of the next frame can overlap encoding.
type FFmpegSink struct {
	opts      Options
	frames    chan *Frame
	pipe      *io.PipeWriter
	writeDone chan error
	runDone   chan error

	mu     sync.Mutex
	closed bool
}

// NewFFmpegSink starts ffmpeg and the frame writer.
func NewFFmpegSink(o Options) (*FFmpegSink, error) {
	if o.Width <= 0 || o.Height <= 0 || o.FPS <= 0 {
		return nil, fmt.Errorf("encoder: invalid output %dx%d at %d fps", o.Width, o.Height, o.FPS)
	}
	if o.OutputFile == "" {
		return nil, errors.New("encoder: output file is required")
	}

	pipeReader, pipeWriter := io.Pipe()
	s := &FFmpegSink{
		opts:      o,
		frames:    make(chan *Frame, 3),
		pipe:      pipeWriter,
		writeDone: make(chan error, 1),
		runDone:   make(chan error, 1),
	}

	cmd := Command(o, pipeReader)
	logger.Infof("starting ffmpeg: %v", cmd.GetArgs())
	go func() {
		err := cmd.Run()
		// unblock the writer if ffmpeg exits early
		pipeReader.CloseWithError(io.ErrClosedPipe)
		s.runDone <- err
	}()
	go s.writeFrames()
	return s, nil
}

func (s *FFmpegSink) writeFrames() {
	frameSize := s.opts.Width * s.opts.Height * 4
	var err error
	for frame := range s.frames {
		if err != nil {
			continue
		}
		if len(frame.Pixels) != frameSize {
			err = fmt.Errorf("encoder: frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), frameSize)
			continue
		}
		if _, werr := s.pipe.Write(frame.Pixels); werr != nil {
			err = fmt.Errorf("encoder: failed to write frame %d: %w", frame.PTS, werr)
		}
	}
	s.pipe.Close()
	s.writeDone <- err
}

// WriteFrame queues a frame for encoding.
func (s *FFmpegSink) WriteFrame(frame *Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.frames <- frame
	return nil
}

// Close flushes queued frames and waits for ffmpeg to finish the file.
func (s *FFmpegSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	close(s.frames)
	s.mu.Unlock()

	writeErr := <-s.writeDone
	runErr := <-s.runDone
	if writeErr != nil {
		return writeErr
	}
	if runErr != nil {
		return fmt.Errorf("encoder: ffmpeg failed: %w", runErr)
	}
	logger.Noticef("wrote %s", s.opts.OutputFile)
	return nil
}
