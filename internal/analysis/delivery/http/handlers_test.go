package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"case-analysis/internal/analysis"
	"case-analysis/internal/middleware"
	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/log"
	"case-analysis/pkg/response"
)

type fakeUseCase struct {
	chunks []string
	err    error
	out    analysis.AnalyzeOutput
	got    analysis.AnalyzeInput
}

func (f *fakeUseCase) Analyze(ctx context.Context, input analysis.AnalyzeInput, onStream llmprovider.StreamCallback) (analysis.AnalyzeOutput, error) {
	f.got = input
	var total string
	for _, c := range f.chunks {
		total += c
		if onStream != nil {
			onStream(total)
		}
	}
	if f.err != nil {
		return analysis.AnalyzeOutput{}, f.err
	}
	out := f.out
	out.Text = total
	out.RequestID = log.RequestIDFromContext(ctx)
	return out, nil
}

func (f *fakeUseCase) Providers(ctx context.Context) []analysis.ProviderInfo {
	return []analysis.ProviderInfo{
		{Name: llmprovider.ProviderGemini, DefaultModel: "gemini-2.5-flash", RequiresAPIKey: true, HasServerKey: true, Default: true},
		{Name: llmprovider.ProviderLocal, DefaultModel: "local-model", DefaultBaseURL: llmprovider.DefaultLocalBaseURL},
	}
}

func newTestServer(uc analysis.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(log.NewNop(), 0)
	r.Use(mw.RequestID())
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc), mw)
	return r
}

func post(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type sseEvent struct {
	name string
	data string
}

func parseEvents(body string) []sseEvent {
	var events []sseEvent
	for _, block := range strings.Split(body, "\n\n") {
		var ev sseEvent
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event:"):
				ev.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				ev.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
		}
		if ev.name != "" {
			events = append(events, ev)
		}
	}
	return events
}

func TestAnalyze(t *testing.T) {
	uc := &fakeUseCase{
		chunks: []string{"No ", "issues."},
		out:    analysis.AnalyzeOutput{Provider: llmprovider.ProviderLocal, Model: "local-model", Duration: 1500 * time.Millisecond},
	}
	r := newTestServer(uc)

	w := post(r, "/api/v1/analysis", map[string]any{
		"prompt": "check",
		"files": []map[string]any{
			{"name": "a.txt", "mime_type": "text/plain", "size_bytes": 5, "data": "SGVsbG8="},
		},
		"settings": map[string]any{"provider": "local", "model": "local-model"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ErrorCode int         `json:"error_code"`
		Data      analyzeResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No issues.", resp.Data.Text)
	assert.Equal(t, "local", resp.Data.Provider)
	assert.Equal(t, int64(1500), resp.Data.DurationMS)
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), resp.Data.RequestID)

	require.Len(t, uc.got.Files, 1)
	assert.Equal(t, "SGVsbG8=", uc.got.Files[0].Payload)
	assert.Equal(t, llmprovider.ProviderLocal, uc.got.Settings.Provider)
}

func TestAnalyze_BadRequest(t *testing.T) {
	r := newTestServer(&fakeUseCase{})

	tests := []struct {
		name string
		body any
	}{
		{name: "empty", body: map[string]any{"prompt": " "}},
		{name: "file without data", body: map[string]any{"files": []map[string]any{{"name": "a.pdf"}}}},
		{name: "negative size", body: map[string]any{"files": []map[string]any{{"name": "a", "data": "AA==", "size_bytes": -1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(r, "/api/v1/analysis", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "auth", err: &llmprovider.AuthenticationError{Provider: llmprovider.ProviderOpenRouter}, wantStatus: http.StatusUnauthorized},
		{name: "too large", err: &llmprovider.PayloadTooLargeError{Provider: llmprovider.ProviderGemini, Err: errors.New("413 raw")}, wantStatus: http.StatusRequestEntityTooLarge, wantMsg: llmprovider.PayloadTooLargeGuidance},
		{name: "file limit", err: analysis.ErrFileTooLarge, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "unsupported", err: &llmprovider.ProviderError{Provider: "x", Err: llmprovider.ErrUnsupportedProvider}, wantStatus: http.StatusBadRequest},
		{name: "timeout", err: &llmprovider.ProviderError{Provider: "local", Err: context.DeadlineExceeded}, wantStatus: http.StatusGatewayTimeout},
		{name: "provider", err: &llmprovider.ProviderError{Provider: "local", Err: errors.New("connection refused")}, wantStatus: http.StatusBadGateway, wantMsg: "provider local: connection refused"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: response.DefaultErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestServer(&fakeUseCase{err: tt.err})
			w := post(r, "/api/v1/analysis", map[string]any{"prompt": "p"})

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				var resp response.Resp
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

func TestStream(t *testing.T) {
	uc := &fakeUseCase{
		chunks: []string{"Clause ", "4."},
		out:    analysis.AnalyzeOutput{Provider: llmprovider.ProviderGemini, Model: "gemini-2.5-flash"},
	}
	r := newTestServer(uc)

	w := post(r, "/api/v1/analysis/stream", map[string]any{"prompt": "p"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	events := parseEvents(w.Body.String())
	require.Len(t, events, 3)

	var d1, d2 deltaEvent
	assert.Equal(t, "delta", events[0].name)
	require.NoError(t, json.Unmarshal([]byte(events[0].data), &d1))
	assert.Equal(t, "Clause ", d1.Text)
	assert.Equal(t, "delta", events[1].name)
	require.NoError(t, json.Unmarshal([]byte(events[1].data), &d2))
	assert.Equal(t, "Clause 4.", d2.Text)

	assert.Equal(t, "done", events[2].name)
	var done analyzeResp
	require.NoError(t, json.Unmarshal([]byte(events[2].data), &done))
	assert.Equal(t, "Clause 4.", done.Text)
	assert.Equal(t, "gemini", done.Provider)
}

func TestStream_ErrorAfterDeltas(t *testing.T) {
	uc := &fakeUseCase{
		chunks: []string{"partial"},
		err:    &llmprovider.ProviderError{Provider: "openrouter", Err: errors.New("stream reset")},
	}
	r := newTestServer(uc)

	w := post(r, "/api/v1/analysis/stream", map[string]any{"prompt": "p"})

	require.Equal(t, http.StatusOK, w.Code)
	events := parseEvents(w.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, "delta", events[0].name)
	assert.Equal(t, "error", events[1].name)

	var ev errorEvent
	require.NoError(t, json.Unmarshal([]byte(events[1].data), &ev))
	assert.Equal(t, http.StatusBadGateway, ev.Status)
	assert.Contains(t, ev.Message, "stream reset")
}

func TestStream_ErrorBeforeDeltas(t *testing.T) {
	uc := &fakeUseCase{err: &llmprovider.AuthenticationError{Provider: llmprovider.ProviderGemini}}
	r := newTestServer(uc)

	w := post(r, "/api/v1/analysis/stream", map[string]any{"prompt": "p"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "text/event-stream")
}

func TestProviders(t *testing.T) {
	r := newTestServer(&fakeUseCase{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data providersResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Providers, 2)
	assert.Equal(t, "gemini", resp.Data.Providers[0].Name)
	assert.True(t, resp.Data.Providers[0].HasServerKey)
	assert.Equal(t, llmprovider.DefaultLocalBaseURL, resp.Data.Providers[1].DefaultBaseURL)
	assert.NotContains(t, w.Body.String(), `"api_key"`)
}
