package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProvider indicates an unknown provider tag
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrInvalidAttachment indicates an attachment payload that is not valid base64
	ErrInvalidAttachment = errors.New("invalid attachment payload")
)

// PayloadTooLargeGuidance is shown instead of the raw 413 response.
const PayloadTooLargeGuidance = "The uploaded files are too large for this provider. " +
	"Split large documents into smaller parts, or extract the text and paste it " +
	"into the message instead of attaching the original PDF or images."

// AuthenticationError is returned before any network call when a required
// API key is missing.
type AuthenticationError struct {
	Provider ProviderKind
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("API key is required for provider %s: add it in settings", e.Provider)
}

// PayloadTooLargeError is returned when the provider rejected the request
// body as too large (HTTP 413).
type PayloadTooLargeError struct {
	Provider ProviderKind
	Err      error
}

func (e *PayloadTooLargeError) Error() string {
	return PayloadTooLargeGuidance
}

func (e *PayloadTooLargeError) Unwrap() error {
	return e.Err
}

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
