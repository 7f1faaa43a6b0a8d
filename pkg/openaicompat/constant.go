package openaicompat

const (
	// CompletionsPath is appended to the configured base URL.
	CompletionsPath = "/chat/completions"

	// readChunkSize is the size of each body read performed by the stream decoder.
	readChunkSize = 4096

	// PlaceholderAPIKey is sent as bearer token when no key is configured.
	// Self-hosted servers usually ignore it but some reject an empty token.
	PlaceholderAPIKey = "not-needed"
)

// Roles used in chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content part types.
const (
	PartTypeText     = "text"
	PartTypeImageURL = "image_url"
)
