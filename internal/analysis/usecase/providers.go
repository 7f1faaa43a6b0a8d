package usecase

import (
	"context"

	"case-analysis/internal/analysis"
	"case-analysis/pkg/llmprovider"
)

// Providers lists every provider with its server-side defaults. Keys are never exposed.
func (uc *implUseCase) Providers(ctx context.Context) []analysis.ProviderInfo {
	infos := make([]analysis.ProviderInfo, 0, len(llmprovider.Kinds))
	for _, kind := range llmprovider.Kinds {
		d := uc.gen.Defaults(kind)
		infos = append(infos, analysis.ProviderInfo{
			Name:           kind,
			DefaultModel:   d.Model,
			DefaultBaseURL: d.BaseURL,
			RequiresAPIKey: kind.RequiresAPIKey(),
			HasServerKey:   d.APIKey != "",
			Default:        kind == uc.cfg.DefaultProvider,
		})
	}
	return infos
}
