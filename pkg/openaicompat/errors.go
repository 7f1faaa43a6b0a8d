package openaicompat

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResponseBody is returned when a successful response carries no readable body.
	ErrNoResponseBody = errors.New("openaicompat: response has no body")

	// ErrBaseURLRequired is returned by Config.Validate when BaseURL is empty.
	ErrBaseURLRequired = errors.New("openaicompat: BaseURL is required")
)

// StatusError is returned for any non-2xx response. Body holds the raw response text.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openaicompat: API error %d: %s", e.StatusCode, e.Body)
}

// DecodeWarning describes one stream line that could not be decoded.
// It never aborts a stream.
type DecodeWarning struct {
	Line string
	Err  error
}

func (w DecodeWarning) Error() string {
	return fmt.Sprintf("openaicompat: skipped malformed stream line %q: %v", w.Line, w.Err)
}

func (w DecodeWarning) Unwrap() error {
	return w.Err
}
