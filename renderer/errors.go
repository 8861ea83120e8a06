package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidViewport is matched by every *InvalidViewportError.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrPrecondition is matched by every *PreconditionError.
	ErrPrecondition = errors.New("precondition violated")
)

// InvalidViewportError is returned when a session is created with a zero or
// negative viewport dimension.
type InvalidViewportError struct {
	Width  int
	Height int
}

func (e *InvalidViewportError) Error() string {
	return fmt.Sprintf("invalid viewport %dx%d: width and height must be positive", e.Width, e.Height)
}

func (e *InvalidViewportError) Is(target error) bool {
	return target == ErrInvalidViewport
}

// PreconditionError reports a call made in the wrong session state. It is a
// programming error, not a condition to retry.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
