package analysis

import (
	"time"

	"case-analysis/pkg/llmprovider"
)

// --- UseCase Inputs ---

type AnalyzeInput struct {
	Prompt   string
	Files    []llmprovider.AttachedFile
	Settings llmprovider.Settings
}

// --- UseCase Outputs ---

type AnalyzeOutput struct {
	RequestID string
	Provider  llmprovider.ProviderKind
	Model     string
	Text      string
	Updates   int
	Duration  time.Duration
}

// ProviderInfo describes a provider the caller may select.
type ProviderInfo struct {
	Name           llmprovider.ProviderKind
	DefaultModel   string
	DefaultBaseURL string
	RequiresAPIKey bool
	HasServerKey   bool
	Default        bool
}
