package llmprovider

import (
	"context"
	"net/http"
	"strings"

	"case-analysis/pkg/gemini"
)

// GeminiFactory builds a native client for one request.
type GeminiFactory func(ctx context.Context, cfg gemini.Config) (gemini.IGemini, error)

// GeminiAdapter adapts pkg/gemini to the Provider interface
type GeminiAdapter struct {
	newClient    GeminiFactory
	defaults     ProviderDefaults
	capabilities *CapabilityTable
	httpClient   *http.Client
}

// NewGeminiAdapter creates a new Gemini adapter. A nil factory uses gemini.New.
func NewGeminiAdapter(newClient GeminiFactory, defaults ProviderDefaults, capabilities *CapabilityTable, httpClient *http.Client) *GeminiAdapter {
	if newClient == nil {
		newClient = gemini.New
	}
	return &GeminiAdapter{
		newClient:    newClient,
		defaults:     defaults,
		capabilities: capabilities,
		httpClient:   httpClient,
	}
}

// Generate implements Provider interface
func (a *GeminiAdapter) Generate(ctx context.Context, prompt string, files []AttachedFile, settings Settings, onStream StreamCallback) (string, error) {
	model := firstNonEmpty(settings.Model, a.defaults.Model, DefaultGeminiModel)

	attachments, err := toInlineData(files)
	if err != nil {
		return "", err
	}

	client, err := a.newClient(ctx, gemini.Config{
		APIKey:     settings.APIKey,
		Model:      model,
		BaseURL:    firstNonEmpty(settings.BaseURL, a.defaults.BaseURL),
		HTTPClient: a.httpClient,
	})
	if err != nil {
		return "", err
	}

	req := &gemini.Request{
		SystemInstruction: settings.SystemInstruction,
		Attachments:       attachments,
		Prompt:            prompt,
		MaxOutputTokens:   DefaultMaxTokens,
		DisableThinking:   !a.capabilities.SupportsExtendedReasoning(model),
	}

	var total string
	for text, err := range client.StreamContent(ctx, req) {
		if err != nil {
			return "", err
		}
		if text == "" {
			continue
		}
		next := mergeChunk(total, text)
		if next == total {
			continue
		}
		total = next
		if onStream != nil {
			onStream(total)
		}
	}
	return total, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return string(ProviderGemini)
}

// mergeChunk folds one chunk into the running text. A chunk that already
// starts with the running text is cumulative and replaces it; any other chunk
// is a delta and is appended.
func mergeChunk(total, chunk string) string {
	if total != "" && strings.HasPrefix(chunk, total) {
		return chunk
	}
	return total + chunk
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
