package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"case-analysis/internal/analysis"
	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/log"
)

const defaultMIMEType = "application/octet-stream"

// Analyze validates the input, fills settings from server defaults and runs
// the analysis through the provider core.
func (uc *implUseCase) Analyze(ctx context.Context, input analysis.AnalyzeInput, onStream llmprovider.StreamCallback) (analysis.AnalyzeOutput, error) {
	settings := uc.resolveSettings(input.Settings)
	label := providerLabel(settings.Provider)

	files, err := uc.validate(input)
	if err != nil {
		uc.metrics.requests.WithLabelValues(label, outcomeInvalidRequest).Inc()
		return analysis.AnalyzeOutput{}, err
	}

	if uc.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.RequestTimeout)
		defer cancel()
	}

	updates := 0
	cb := func(text string) {
		updates++
		if onStream != nil {
			onStream(text)
		}
	}

	start := time.Now()
	text, err := uc.gen.GenerateCaseAnalysis(ctx, input.Prompt, files, settings, cb)
	elapsed := time.Since(start)

	uc.metrics.requests.WithLabelValues(label, outcomeOf(err)).Inc()
	uc.metrics.duration.WithLabelValues(label).Observe(elapsed.Seconds())
	uc.metrics.updates.WithLabelValues(label).Add(float64(updates))

	if err != nil {
		uc.l.Errorf(ctx, "uc.Analyze GenerateCaseAnalysis: %v", err)
		return analysis.AnalyzeOutput{}, err
	}

	return analysis.AnalyzeOutput{
		RequestID: log.RequestIDFromContext(ctx),
		Provider:  settings.Provider,
		Model:     uc.gen.ResolveModel(settings),
		Text:      text,
		Updates:   updates,
		Duration:  elapsed,
	}, nil
}

// resolveSettings fills empty fields from server configuration.
func (uc *implUseCase) resolveSettings(in llmprovider.Settings) llmprovider.Settings {
	out := in
	out.Provider = llmprovider.ProviderKind(strings.ToLower(strings.TrimSpace(string(in.Provider))))
	if out.Provider == "" {
		out.Provider = uc.cfg.DefaultProvider
	}

	// The server key only ever goes to the configured endpoint.
	defaults := uc.gen.Defaults(out.Provider)
	if strings.TrimSpace(out.APIKey) == "" && sameEndpoint(out.BaseURL, defaults.BaseURL) {
		out.APIKey = defaults.APIKey
	}
	if strings.TrimSpace(out.SystemInstruction) == "" {
		out.SystemInstruction = uc.cfg.SystemInstruction
	}
	return out
}

// validate checks the request against the configured limits and returns a
// normalized copy of the files.
func (uc *implUseCase) validate(input analysis.AnalyzeInput) ([]llmprovider.AttachedFile, error) {
	if strings.TrimSpace(input.Prompt) == "" && len(input.Files) == 0 {
		return nil, analysis.ErrEmptyRequest
	}
	if uc.cfg.MaxFiles > 0 && len(input.Files) > uc.cfg.MaxFiles {
		return nil, fmt.Errorf("%w: %d (max %d)", analysis.ErrTooManyFiles, len(input.Files), uc.cfg.MaxFiles)
	}

	files := make([]llmprovider.AttachedFile, 0, len(input.Files))
	for i, f := range input.Files {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: file %d has no name", analysis.ErrInvalidFile, i)
		}
		payload := strings.TrimSpace(f.Payload)
		if payload == "" {
			return nil, fmt.Errorf("%w: %s is empty", analysis.ErrInvalidFile, name)
		}
		if f.SizeBytes < 0 {
			return nil, fmt.Errorf("%w: %s has a negative size", analysis.ErrInvalidFile, name)
		}

		size := max(f.SizeBytes, int64(base64.StdEncoding.DecodedLen(len(payload))))
		if uc.cfg.MaxFileBytes > 0 && size > uc.cfg.MaxFileBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", analysis.ErrFileTooLarge, name, size, uc.cfg.MaxFileBytes)
		}

		mimeType := strings.TrimSpace(f.MIMEType)
		if mimeType == "" {
			mimeType = defaultMIMEType
		}

		files = append(files, llmprovider.AttachedFile{
			Name:      name,
			MIMEType:  mimeType,
			SizeBytes: f.SizeBytes,
			Payload:   payload,
		})
	}
	return files, nil
}

// sameEndpoint reports whether a requested base URL targets the server default.
// An empty request uses the default.
func sameEndpoint(requested, configured string) bool {
	requested = strings.TrimRight(strings.TrimSpace(requested), "/")
	if requested == "" {
		return true
	}
	return strings.EqualFold(requested, strings.TrimRight(strings.TrimSpace(configured), "/"))
}

func providerLabel(kind llmprovider.ProviderKind) string {
	if kind.Valid() {
		return string(kind)
	}
	return "unknown"
}
