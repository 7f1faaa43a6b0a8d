package llmprovider

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"google.golang.org/genai"

	"case-analysis/pkg/log"
	"case-analysis/pkg/openaicompat"
)

// payloadTooLargeRe matches untyped errors only, e.g. a wrapped SDK message.
var payloadTooLargeRe = regexp.MustCompile(`(?i)\berror 413\b|\bstatus(?: code)?:? 413\b|request entity too large|payload too large`)

// Dispatcher routes one analysis request to the adapter for its provider.
// It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	opts   Options
	logger log.Logger
}

// NewDispatcher creates a new Dispatcher with the given options and logger
func NewDispatcher(opts Options, logger log.Logger) *Dispatcher {
	if opts.Defaults == nil {
		opts.Defaults = DefaultOptions().Defaults
	}
	return &Dispatcher{
		opts:   opts,
		logger: logger,
	}
}

// GenerateCaseAnalysis validates settings, runs the request against the
// selected provider and classifies any failure. Callbacks already delivered
// are never retracted when it fails.
func (d *Dispatcher) GenerateCaseAnalysis(ctx context.Context, prompt string, files []AttachedFile, settings Settings, onStream StreamCallback) (string, error) {
	kind := settings.Provider
	if !kind.Valid() {
		return "", &ProviderError{Provider: string(kind), Err: ErrUnsupportedProvider}
	}
	if kind.RequiresAPIKey() && strings.TrimSpace(settings.APIKey) == "" {
		return "", &AuthenticationError{Provider: kind}
	}

	provider, err := d.opts.createProvider(kind, d.logger)
	if err != nil {
		return "", &ProviderError{Provider: string(kind), Err: err}
	}

	model := d.ResolveModel(settings)
	d.logger.Info(ctx, "Dispatching case analysis",
		"provider", provider.Name(),
		"model", model,
		"files", len(files),
	)

	start := time.Now()
	text, err := provider.Generate(ctx, prompt, files, settings, onStream)
	if err != nil {
		err = classify(kind, err)
		d.logFailure(ctx, provider, model, err)
		return "", err
	}

	d.logSuccess(ctx, provider, model, len(text), time.Since(start))
	return text, nil
}

// ResolveModel returns the model a request with settings will use.
func (d *Dispatcher) ResolveModel(settings Settings) string {
	return firstNonEmpty(settings.Model, d.opts.Defaults[settings.Provider].Model)
}

// Defaults returns the configured defaults for kind.
func (d *Dispatcher) Defaults(kind ProviderKind) ProviderDefaults {
	return d.opts.Defaults[kind]
}

// classify maps adapter failures onto the dispatcher error taxonomy.
func classify(kind ProviderKind, err error) error {
	if isPayloadTooLarge(err) {
		return &PayloadTooLargeError{Provider: kind, Err: err}
	}

	var perr *ProviderError
	if errors.As(err, &perr) {
		return err
	}
	return &ProviderError{Provider: string(kind), Err: err}
}

func isPayloadTooLarge(err error) bool {
	var statusErr *openaicompat.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusRequestEntityTooLarge
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusRequestEntityTooLarge
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusRequestEntityTooLarge
	}
	return payloadTooLargeRe.MatchString(err.Error())
}

// logSuccess logs successful generation with metrics
func (d *Dispatcher) logSuccess(ctx context.Context, provider Provider, model string, chars int, elapsed time.Duration) {
	d.logger.Info(ctx, "Case analysis successful",
		"provider", provider.Name(),
		"model", model,
		"output_chars", chars,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// logFailure logs failed generation attempts
func (d *Dispatcher) logFailure(ctx context.Context, provider Provider, model string, err error) {
	d.logger.Warn(ctx, "Case analysis failed",
		"provider", provider.Name(),
		"model", model,
		"error", err.Error(),
	)
}
