package http

import (
	"case-analysis/internal/analysis"
	"case-analysis/pkg/log"

	"github.com/gin-gonic/gin"
)

// Handler is the public interface for the analysis HTTP delivery layer.
type Handler interface {
	Analyze(c *gin.Context)
	Stream(c *gin.Context)
	Providers(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc analysis.UseCase
}

// New creates a new HTTP handler for the analysis domain.
func New(l log.Logger, uc analysis.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
