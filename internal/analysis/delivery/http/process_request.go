package http

import (
	"github.com/gin-gonic/gin"
)

// processAnalyzeReq binds and validates the analysis request body.
func (h *handler) processAnalyzeReq(c *gin.Context) (analyzeReq, error) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
