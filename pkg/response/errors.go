package response

import "net/http"

// HTTPError carries the status code a delivery layer wants for an error.
type HTTPError struct {
	StatusCode int
	Message    string
}

// NewHTTPError creates an HTTPError. An empty message uses the status text.
func NewHTTPError(statusCode int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &HTTPError{StatusCode: statusCode, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}
