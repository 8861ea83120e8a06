package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockStartsAtConstruction(t *testing.T) {
	src := NewManual(12.5)
	c := New(src)
	assert.Equal(t, 0.0, c.Elapsed())

	src.Set(13.0)
	assert.Equal(t, 0.5, c.Elapsed())

	src.Advance(1.5)
	assert.Equal(t, 2.0, c.Elapsed())
}

func TestManualNeverMovesBackwards(t *testing.T) {
	src := NewManual(1)
	src.Set(0.5)
	assert.Equal(t, 1.0, src.Now())
	src.Advance(-3)
	assert.Equal(t, 1.0, src.Now())
}

func TestFuncSource(t *testing.T) {
	now := 100.0
	c := New(Func(func() float64 { return now }))
	now = 100.25
	assert.Equal(t, 0.25, c.Elapsed())
}

func TestSystemClockIsMonotonic(t *testing.T) {
	c := New(nil)
	first := c.Elapsed()
	time.Sleep(2 * time.Millisecond)
	second := c.Elapsed()
	assert.GreaterOrEqual(t, first, 0.0)
	assert.Greater(t, second, first)
}
