package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"case-analysis/config"
	_ "case-analysis/docs" // Swagger docs
	analysisUC "case-analysis/internal/analysis/usecase"
	"case-analysis/internal/httpserver"
	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/log"
)

// @title       Case Analysis API
// @description Contradiction and compliance analysis of case documents over Gemini, OpenRouter or a local OpenAI-compatible model.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Case Analysis...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Provider core
	opts, err := llmprovider.OptionsFromConfig(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to build provider options: ", err)
		return
	}
	dispatcher := llmprovider.NewDispatcher(opts, logger)

	for _, kind := range llmprovider.Kinds {
		d := dispatcher.Defaults(kind)
		if kind.RequiresAPIKey() && d.APIKey == "" {
			logger.Warnf(ctx, "Provider %s has no server-side API key, clients must send one", kind)
			continue
		}
		logger.Infof(ctx, "Provider %s ready (model %s)", kind, d.Model)
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		Generator:       dispatcher,
		Analysis: analysisUC.Config{
			DefaultProvider:   llmprovider.ProviderKind(cfg.LLM.DefaultProvider),
			SystemInstruction: cfg.Analysis.SystemInstruction,
			MaxFiles:          cfg.Analysis.MaxFiles,
			MaxFileBytes:      cfg.Analysis.MaxFileBytes,
			RequestTimeout:    cfg.LLM.RequestTimeout,
		},
		RateLimitPerMin: cfg.Analysis.RateLimitPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
