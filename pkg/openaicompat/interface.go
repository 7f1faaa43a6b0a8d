package openaicompat

import "context"

// IClient streams chat completions from an OpenAI-compatible endpoint.
type IClient interface {
	// StreamChat posts req with stream=true and calls onStream with the
	// cumulative text after every non-empty delta. It returns the final text.
	StreamChat(ctx context.Context, req *ChatRequest, onStream func(cumulative string)) (string, error)

	// Endpoint returns the resolved completions URL.
	Endpoint() string
}

// New creates a new client with the given configuration.
func New(cfg Config) (IClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClient(cfg), nil
}
