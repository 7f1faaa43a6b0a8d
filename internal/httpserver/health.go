package httpserver

import (
	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/response"

	"github.com/gin-gonic/gin"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Case analysis API is running"
	HealthVersion = "1.0.0"
	ServiceName   = "case-analysis"
)

func statusBody(status string) gin.H {
	return gin.H{
		"status":  status,
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, statusBody("healthy"))
}

// readyCheck reports ready together with the providers usable without a client key.
// @Summary Readiness Check
// @Description Check if the API is ready and which providers have a server-side key
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	body := statusBody("ready")

	usable := make([]string, 0, len(llmprovider.Kinds))
	for _, kind := range llmprovider.Kinds {
		if !kind.RequiresAPIKey() || srv.generator.Defaults(kind).APIKey != "" {
			usable = append(usable, string(kind))
		}
	}
	body["providers"] = usable

	response.OK(c, body)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, statusBody("alive"))
}
