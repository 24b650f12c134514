package overlay

import (
	"errors"
	"fmt"
)

var (
	ErrNoHost             = errors.New("no host to draw on")
	ErrNoSurface          = errors.New("drawing surface unavailable")
	ErrAlreadyInitialized = errors.New("overlay already initialized")
)

// InitializationError is returned by Initialize when the overlay cannot
// obtain a drawing surface.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("overlay initialization failed: %v", e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}
