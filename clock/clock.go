// Package clock provides the monotonic frame clock that drives animation.
package clock

import (
	"sync"
	"time"
)

// Source reports a monotonic time reading in seconds. Only differences between
// readings are meaningful.
type Source interface {
	Now() float64
}

// Func adapts a plain function, such as glfw.GetTime, to a Source.
type Func func() float64

func (f Func) Now() float64 { return f() }

type systemSource struct {
	epoch time.Time
}

func (s systemSource) Now() float64 {
	return time.Since(s.epoch).Seconds()
}

// System returns a Source backed by the runtime's monotonic clock.
func System() Source {
	return systemSource{epoch: time.Now()}
}

// Manual is a Source that only moves when told to. It is used for fixed-step
// recording and in tests. Readings never go backwards.
type Manual struct {
	mu  sync.Mutex
	now float64
}

// NewManual creates a manual source reading start.
func NewManual(start float64) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the source to t. Values earlier than the current reading are
// ignored.
func (m *Manual) Set(t float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t > m.now {
		m.now = t
	}
}

// Advance moves the source forward by d seconds. Negative d is ignored.
func (m *Manual) Advance(d float64) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
}

// Clock measures elapsed seconds since it was started. It never resets and
// never pauses.
type Clock struct {
	source Source
	start  float64
}

// New starts a clock on source. A nil source selects System.
func New(source Source) *Clock {
	if source == nil {
		source = System()
	}
	return &Clock{source: source, start: source.Now()}
}

// Elapsed returns the seconds since the clock was started.
func (c *Clock) Elapsed() float64 {
	e := c.source.Now() - c.start
	if e < 0 {
		return 0
	}
	return e
}
