package httpserver

import (
	"context"

	analysisHTTP "case-analysis/internal/analysis/delivery/http"
	analysisUC "case-analysis/internal/analysis/usecase"
	"case-analysis/internal/middleware"

	"github.com/gin-gonic/gin"
)

// setupAnalysisDomain initializes the analysis domain and registers its routes.
func (srv HTTPServer) setupAnalysisDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	// 1. UseCase
	uc, err := analysisUC.New(srv.l, srv.generator, srv.analysisCfg, srv.registry)
	if err != nil {
		return err
	}

	// 2. HTTP Handler
	h := analysisHTTP.New(srv.l, uc)

	// 3. Routes: /api/v1/analysis, /api/v1/analysis/stream, /api/v1/providers
	analysisHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Analysis domain registered")
	return nil
}
