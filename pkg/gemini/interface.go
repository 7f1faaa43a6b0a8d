package gemini

import (
	"context"
	"iter"
)

// IGemini defines the interface for the Gemini streaming client.
type IGemini interface {
	// StreamContent streams the text of each response chunk. Iteration stops
	// after the first error.
	StreamContent(ctx context.Context, req *Request) iter.Seq2[string, error]

	// Model returns the model being used
	Model() string
}

// New creates a new Gemini client with the given configuration
func New(ctx context.Context, cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(ctx, cfg)
}
