package analysis

import (
	"context"

	"case-analysis/pkg/llmprovider"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Analyze runs one case analysis. onStream receives the cumulative text
	// and may be nil.
	Analyze(ctx context.Context, input AnalyzeInput, onStream llmprovider.StreamCallback) (AnalyzeOutput, error)
	Providers(ctx context.Context) []ProviderInfo
}

// Generator is the provider core the use case drives.
type Generator interface {
	GenerateCaseAnalysis(ctx context.Context, prompt string, files []llmprovider.AttachedFile, settings llmprovider.Settings, onStream llmprovider.StreamCallback) (string, error)
	ResolveModel(settings llmprovider.Settings) string
	Defaults(kind llmprovider.ProviderKind) llmprovider.ProviderDefaults
}
