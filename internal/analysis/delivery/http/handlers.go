package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"case-analysis/pkg/response"
)

// Analyze godoc
// @Summary     Analyze case documents
// @Description Sends the prompt and attached documents to the selected provider and returns the full analysis.
// @Tags        Analysis
// @Accept      json
// @Produce     json
// @Param       body body analyzeReq true "Prompt, files and provider settings"
// @Success     200  {object} analyzeResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Missing API key"
// @Failure     413  {object} response.Resp "Files too large"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     502  {object} response.Resp "Provider failure"
// @Router      /api/v1/analysis [POST]
func (h *handler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAnalyzeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Analyze(ctx, req.toInput(), nil)
	if err != nil {
		h.l.Errorf(ctx, "uc.Analyze: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAnalyzeResp(output))
}

// Stream godoc
// @Summary     Stream a case analysis
// @Description Same input as /analysis. Answers text/event-stream with "delta" events carrying the cumulative text, then one "done" or "error" event. Failures before the first delta are plain JSON errors.
// @Tags        Analysis
// @Accept      json
// @Produce     text/event-stream
// @Param       body body analyzeReq true "Prompt, files and provider settings"
// @Success     200  {string} string "event stream"
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Missing API key"
// @Failure     413  {object} response.Resp "Files too large"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     502  {object} response.Resp "Provider failure"
// @Router      /api/v1/analysis/stream [POST]
func (h *handler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAnalyzeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	started := false
	onStream := func(text string) {
		if !started {
			h.startStream(c)
			started = true
		}
		c.SSEvent("delta", deltaEvent{Text: text})
		c.Writer.Flush()
	}

	output, err := h.uc.Analyze(ctx, req.toInput(), onStream)
	if err != nil {
		h.l.Errorf(ctx, "uc.Analyze: %v", err)
		httpErr := h.mapError(err)
		if !started {
			response.Error(c, httpErr, nil)
			return
		}
		// Text already sent stays on the client.
		c.SSEvent("error", errorEvent{Status: httpErr.StatusCode, Message: httpErr.Message})
		c.Writer.Flush()
		return
	}

	if !started {
		h.startStream(c)
	}
	c.SSEvent("done", h.newAnalyzeResp(output))
	c.Writer.Flush()
}

// Providers godoc
// @Summary     List providers
// @Description Returns the selectable providers with their default model and endpoint.
// @Tags        Analysis
// @Produce     json
// @Success     200 {object} providersResp
// @Router      /api/v1/providers [GET]
func (h *handler) Providers(c *gin.Context) {
	response.OK(c, h.newProvidersResp(h.uc.Providers(c.Request.Context())))
}

func (h *handler) startStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
}
