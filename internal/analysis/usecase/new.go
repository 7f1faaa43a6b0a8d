package usecase

import (
	"time"

	"case-analysis/internal/analysis"
	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the limits and server-side defaults of the use case.
type Config struct {
	DefaultProvider   llmprovider.ProviderKind
	SystemInstruction string
	MaxFiles          int
	MaxFileBytes      int64
	RequestTimeout    time.Duration
}

// implUseCase is the private implementation of analysis.UseCase.
type implUseCase struct {
	l       log.Logger
	gen     analysis.Generator
	cfg     Config
	metrics *metrics
}

// New creates a new analysis UseCase implementation. Metrics are registered on reg.
func New(l log.Logger, gen analysis.Generator, cfg Config, reg prometheus.Registerer) (*implUseCase, error) {
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = llmprovider.ProviderGemini
	}
	if !cfg.DefaultProvider.Valid() {
		return nil, llmprovider.ErrUnsupportedProvider
	}
	if cfg.SystemInstruction == "" {
		cfg.SystemInstruction = analysis.DefaultSystemInstruction
	}

	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}

	return &implUseCase{
		l:       l,
		gen:     gen,
		cfg:     cfg,
		metrics: m,
	}, nil
}
