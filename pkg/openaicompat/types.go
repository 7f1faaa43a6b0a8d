package openaicompat

import (
	"net/http"
	"strings"
)

// Config holds client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	Headers    map[string]string
	HTTPClient *http.Client

	// OnWarning receives non-fatal stream decode problems.
	OnWarning func(DecodeWarning)
}

// Validate validates the configuration and fills defaults.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}
	if c.APIKey == "" {
		c.APIKey = PlaceholderAPIKey
	}
	if c.HTTPClient == nil {
		// No client timeout: streams are bounded by the request context.
		c.HTTPClient = &http.Client{}
	}
	return nil
}

// ChatRequest is the chat-completions request body.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// Message is one chat message. Content is either a string or a []ContentPart.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multi-part user message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL references an image, usually as a data URI.
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartTypeText, Text: text}
}

// ImagePart builds an image_url content part.
func ImagePart(url string) ContentPart {
	return ContentPart{Type: PartTypeImageURL, ImageURL: &ImageURL{URL: url}}
}

// client is the internal implementation of IClient.
type client struct {
	apiKey     string
	endpoint   string
	headers    map[string]string
	httpClient *http.Client
	onWarning  func(DecodeWarning)
}
