package llmprovider

import (
	"fmt"
	"net/http"
	"strings"

	"case-analysis/config"
	"case-analysis/pkg/log"
)

// ProviderDefaults are used when a request leaves the matching Settings field empty.
type ProviderDefaults struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Options configure a Dispatcher.
type Options struct {
	Defaults          map[ProviderKind]ProviderDefaults
	OpenRouterReferer string
	OpenRouterTitle   string
	Capabilities      *CapabilityTable
	HTTPClient        *http.Client

	// GeminiFactory overrides native client construction. Nil uses gemini.New.
	GeminiFactory GeminiFactory
}

// DefaultOptions returns the built-in endpoint and model defaults.
func DefaultOptions() Options {
	caps, _ := NewCapabilityTable(DefaultModelCapabilities)
	return Options{
		Defaults: map[ProviderKind]ProviderDefaults{
			ProviderGemini:     {Model: DefaultGeminiModel},
			ProviderOpenRouter: {BaseURL: DefaultOpenRouterBaseURL, Model: DefaultOpenRouterModel},
			ProviderLocal:      {BaseURL: DefaultLocalBaseURL, Model: DefaultLocalModel},
		},
		OpenRouterReferer: DefaultAppReferer,
		OpenRouterTitle:   DefaultAppTitle,
		Capabilities:      caps,
	}
}

// OptionsFromConfig overlays the configured providers and capability table on
// DefaultOptions.
func OptionsFromConfig(cfg *config.LLMConfig) (Options, error) {
	if cfg == nil {
		return Options{}, fmt.Errorf("LLM config is nil")
	}

	opts := DefaultOptions()
	for _, p := range cfg.Providers {
		kind := ProviderKind(strings.ToLower(strings.TrimSpace(p.Name)))
		if !kind.Valid() {
			return Options{}, fmt.Errorf("provider %q: %w", p.Name, ErrUnsupportedProvider)
		}

		d := opts.Defaults[kind]
		d.APIKey = p.APIKey
		if p.BaseURL != "" {
			d.BaseURL = p.BaseURL
		}
		if p.Model != "" {
			d.Model = p.Model
		}
		opts.Defaults[kind] = d

		if kind == ProviderOpenRouter {
			if p.Referer != "" {
				opts.OpenRouterReferer = p.Referer
			}
			if p.Title != "" {
				opts.OpenRouterTitle = p.Title
			}
		}
	}

	if len(cfg.ModelCapabilities) > 0 {
		caps := make([]ModelCapability, 0, len(cfg.ModelCapabilities))
		for _, c := range cfg.ModelCapabilities {
			caps = append(caps, ModelCapability{Pattern: c.Pattern, ExtendedReasoning: c.ExtendedReasoning})
		}
		table, err := NewCapabilityTable(caps)
		if err != nil {
			return Options{}, fmt.Errorf("model capabilities: %w", err)
		}
		opts.Capabilities = table
	}

	return opts, nil
}

// createProvider builds the adapter for kind. Adapters are cheap and built per request.
func (o Options) createProvider(kind ProviderKind, l log.Logger) (Provider, error) {
	switch kind {
	case ProviderGemini:
		return NewGeminiAdapter(o.GeminiFactory, o.Defaults[kind], o.Capabilities, o.HTTPClient), nil

	case ProviderOpenRouter:
		headers := map[string]string{
			HeaderReferer: o.OpenRouterReferer,
			HeaderTitle:   o.OpenRouterTitle,
		}
		return NewOpenAICompatAdapter(kind, o.Defaults[kind], headers, o.HTTPClient, l), nil

	case ProviderLocal:
		return NewOpenAICompatAdapter(kind, o.Defaults[kind], nil, o.HTTPClient, l), nil

	default:
		return nil, ErrUnsupportedProvider
	}
}
