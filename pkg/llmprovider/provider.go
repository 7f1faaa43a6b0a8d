package llmprovider

import "context"

// ProviderKind identifies a configured backend.
type ProviderKind string

const (
	// ProviderGemini talks to the native multimodal SDK.
	ProviderGemini ProviderKind = "gemini"
	// ProviderOpenRouter is the hosted OpenAI-compatible aggregator.
	ProviderOpenRouter ProviderKind = "openrouter"
	// ProviderLocal is a self-hosted OpenAI-compatible server.
	ProviderLocal ProviderKind = "local"
)

// Kinds lists every supported provider.
var Kinds = []ProviderKind{ProviderGemini, ProviderOpenRouter, ProviderLocal}

// Valid reports whether k is one of Kinds.
func (k ProviderKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// RequiresAPIKey reports whether requests to k need a credential.
func (k ProviderKind) RequiresAPIKey() bool {
	return k != ProviderLocal
}

// Settings selects and configures the backend for one request.
type Settings struct {
	Provider          ProviderKind
	APIKey            string
	Model             string
	BaseURL           string
	SystemInstruction string
}

// AttachedFile is a caller-owned file. Payload is standard base64.
// The core never modifies it.
type AttachedFile struct {
	Name      string
	MIMEType  string
	SizeBytes int64
	Payload   string
}

// StreamCallback receives the cumulative text produced so far. Every value
// extends the previous one and no call happens after Generate returns.
type StreamCallback func(cumulative string)

// Provider is one wire protocol family.
type Provider interface {
	// Generate runs one analysis request and returns the final text, which
	// equals the last value passed to onStream. onStream may be nil.
	Generate(ctx context.Context, prompt string, files []AttachedFile, settings Settings, onStream StreamCallback) (string, error)

	// Name returns the provider name
	Name() string
}
