package llmprovider

import (
	"context"
	"net/http"

	"case-analysis/pkg/log"
	"case-analysis/pkg/openaicompat"
)

// DecodeWarning is a non-fatal stream decoding problem. It is logged and the
// stream continues.
type DecodeWarning = openaicompat.DecodeWarning

// OpenAICompatAdapter adapts pkg/openaicompat to the Provider interface. It
// serves both the hosted aggregator and self-hosted servers.
type OpenAICompatAdapter struct {
	kind       ProviderKind
	defaults   ProviderDefaults
	headers    map[string]string
	httpClient *http.Client
	l          log.Logger
}

// NewOpenAICompatAdapter creates a new adapter for kind.
func NewOpenAICompatAdapter(kind ProviderKind, defaults ProviderDefaults, headers map[string]string, httpClient *http.Client, l log.Logger) *OpenAICompatAdapter {
	return &OpenAICompatAdapter{
		kind:       kind,
		defaults:   defaults,
		headers:    headers,
		httpClient: httpClient,
		l:          l,
	}
}

// Generate implements Provider interface
func (a *OpenAICompatAdapter) Generate(ctx context.Context, prompt string, files []AttachedFile, settings Settings, onStream StreamCallback) (string, error) {
	client, err := openaicompat.New(openaicompat.Config{
		APIKey:     settings.APIKey,
		BaseURL:    firstNonEmpty(settings.BaseURL, a.defaults.BaseURL),
		Headers:    a.headers,
		HTTPClient: a.httpClient,
		OnWarning: func(w DecodeWarning) {
			a.l.Warnf(ctx, "pkg.llmprovider.OpenAICompatAdapter: provider=%s %v", a.kind, w)
		},
	})
	if err != nil {
		return "", err
	}

	req := &openaicompat.ChatRequest{
		Model:       firstNonEmpty(settings.Model, a.defaults.Model),
		Messages:    buildChatMessages(prompt, files, settings.SystemInstruction),
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}

	text, err := client.StreamChat(ctx, req, onStream)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Name returns provider name
func (a *OpenAICompatAdapter) Name() string {
	return string(a.kind)
}
