package upstream

import (
	"errors"
	"fmt"
)

// ErrUnavailable means the source could not be reached or failed on its side.
var ErrUnavailable = errors.New("upstream source is unavailable")

// RejectedError is returned when the source refused a request it understood.
type RejectedError struct {
	StatusCode int
	Detail     string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("upstream rejected request with status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream rejected request: %s", e.Detail)
}
