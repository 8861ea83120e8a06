package renderer

import "context"

// FrameHost paces the render loop. EndFrame presents the frame and delivers
// pending input; with vsync it waits for the next display refresh.
type FrameHost interface {
	ShouldClose() bool
	EndFrame()
	// Time returns seconds since the host started.
	Time() float64
}

// Loop calls Session.AdvanceFrame once per display refresh until it is
// cancelled, the session closes or the host asks to close.
type Loop struct {
	session *Session
	host    FrameHost
}

// NewLoop creates a loop driving session on host.
func NewLoop(session *Session, host FrameHost) *Loop {
	return &Loop{session: session, host: host}
}

// Run blocks until the loop stops. It returns ctx.Err() when cancelled and
// nil otherwise.
func (l *Loop) Run(ctx context.Context) error {
	logger.Info("starting render loop")
	for {
		if err := ctx.Err(); err != nil {
			logger.Infof("render loop cancelled after %d frames", l.session.Frames())
			return err
		}
		if !l.session.Active() || l.host.ShouldClose() {
			logger.Infof("render loop stopped after %d frames", l.session.Frames())
			return nil
		}
		l.session.AdvanceFrame(l.host.Time() * 1000)
		l.host.EndFrame()
	}
}
