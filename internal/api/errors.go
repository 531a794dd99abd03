package api

import (
	"fmt"

	"github.com/syncflow/dashboard/internal/poll"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: GET %s: unexpected status %d", e.Path, e.StatusCode)
}

// ShapeError is returned when a response body is not shaped like the
// expected resource. It wraps poll.ErrShape.
type ShapeError struct {
	Path   string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("api: GET %s: %s", e.Path, e.Detail)
}

func (e *ShapeError) Unwrap() error { return poll.ErrShape }
