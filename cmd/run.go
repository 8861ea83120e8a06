package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gomandelbulb/assets"
	"github.com/richinsley/gomandelbulb/clock"
	"github.com/richinsley/gomandelbulb/glfwcontext"
	"github.com/richinsley/gomandelbulb/opengl"
	"github.com/richinsley/gomandelbulb/options"
	"github.com/richinsley/gomandelbulb/renderer"
	"github.com/urfave/cli"
)

// host bundles the window, backend and a session wired to both.
type host struct {
	window  *glfwcontext.Context
	backend *opengl.Backend
	session *renderer.Session
}

// openHost creates the window and a session with the effect loaded. When
// source is nil the session clock follows glfw.GetTime.
func openHost(ctx context.Context, o *options.EffectOptions, visible bool, source clock.Source) (*host, error) {
	effect, err := assets.Load(ctx, assets.NewLoader(!o.NoCache), o.Refs())
	if err != nil {
		return nil, err
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, err
	}
	window, err := glfwcontext.New(o.Width, o.Height, o.Title, visible)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, err
	}
	window.MakeCurrent()

	h := &host{window: window}
	h.backend, err = opengl.NewBackend(window, o.GLES)
	if err != nil {
		h.close()
		return nil, err
	}

	if source == nil {
		source = clock.Func(window.Time)
	}
	h.session, err = renderer.NewSession(h.backend, window, window.ClientSize(), source)
	if err != nil {
		h.close()
		return nil, err
	}
	sampler, err := o.Sampler()
	if err != nil {
		h.close()
		return nil, err
	}
	if err := h.session.LoadAssets(effect, sampler); err != nil {
		h.close()
		return nil, err
	}

	window.RegisterPointerHandler(h.session.OnPointerMove)
	window.RegisterResizeHandler(h.session.Resize)
	window.RegisterKeyCallback(glfw.KeyF, h.logStats)
	return h, nil
}

func (h *host) close() {
	// A session destroys its backend on Close.
	if h.session != nil {
		h.session.Close()
	} else if h.backend != nil {
		h.backend.Destroy()
	}
	h.window.Shutdown()
	glfwcontext.TerminateGraphics()
}

// logStats reports progress when F is pressed.
func (h *host) logStats() {
	u := h.session.Uniforms()
	logger.Noticef("frame %d, iTime %.3fs, dolly z %.3f, iResolution %v",
		h.session.Frames(), u.ITime, h.session.Rig().DollyZ(), u.IResolution)
}

// signalContext is cancelled on the first interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Render the effect in a window until it is closed.
func runEffect(ctx *cli.Context) error {
	o, err := loadOptions(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(ctx, o.LogLevel); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	runCtx, cancel := signalContext()
	defer cancel()

	h, err := openHost(runCtx, o, true, nil)
	if err != nil {
		return err
	}
	defer h.close()

	logger.Noticef("rendering %dx%d, press Escape to quit", o.Width, o.Height)
	err = renderer.NewLoop(h.session, h.window).Run(runCtx)
	logger.Infof("rendered %d frames", h.session.Frames())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
