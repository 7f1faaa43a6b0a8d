package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/log"
)

func newTestHTTPServer(t *testing.T) *HTTPServer {
	t.Helper()
	opts := llmprovider.DefaultOptions()
	opts.Defaults[llmprovider.ProviderGemini] = llmprovider.ProviderDefaults{APIKey: "k", Model: llmprovider.DefaultGeminiModel}

	srv, err := New(log.NewNop(), Config{
		Port:      8080,
		Mode:      gin.TestMode,
		Generator: llmprovider.NewDispatcher(opts, log.NewNop()),
	})
	require.NoError(t, err)
	return srv
}

func TestNew_Validate(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: gin.TestMode})
	assert.Error(t, err)

	_, err = New(log.NewNop(), Config{Mode: gin.TestMode, Port: 8080})
	assert.Error(t, err)
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestHTTPServer(t)

	for _, path := range []string{"/health", "/ready", "/live", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestReadyCheck_Providers(t *testing.T) {
	srv := newTestHTTPServer(t)

	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var resp struct {
		Data struct {
			Providers []string `json:"providers"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"gemini", "local"}, resp.Data.Providers)
}

func TestAnalysisRoutes(t *testing.T) {
	srv := newTestHTTPServer(t)

	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis", strings.NewReader(`{"prompt":"p","settings":{"provider":"openrouter"}}`))
	req.Header.Set("Content-Type", "application/json")
	srv.gin.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `case_analysis_requests_total{outcome="authentication_error",provider="openrouter"} 1`)
}
