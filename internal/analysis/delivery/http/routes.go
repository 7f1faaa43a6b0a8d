package http

import (
	"case-analysis/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Generation routes are rate limited per client.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	a := rg.Group("/analysis")
	{
		a.POST("", mw.RateLimit(), h.Analyze)
		a.POST("/stream", mw.RateLimit(), h.Stream)
	}
	rg.GET("/providers", h.Providers)
}
