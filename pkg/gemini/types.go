package gemini

import (
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Config holds Gemini client configuration.
type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the SDK endpoint. Empty keeps the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

// Validate validates the configuration and fills defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("gemini: APIKey is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}

// InlineData is a binary attachment sent inline with the request.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// Request is one streaming generation request.
type Request struct {
	SystemInstruction string
	Attachments       []InlineData
	Prompt            string
	MaxOutputTokens   int32

	// DisableThinking sets the thinking budget to zero. Models without
	// extended reasoning reject a thinking configuration otherwise.
	DisableThinking bool
}

// geminiImpl is the internal implementation of IGemini
type geminiImpl struct {
	client *genai.Client
	model  string
}
