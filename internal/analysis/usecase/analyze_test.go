package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"case-analysis/internal/analysis"
	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/log"
)

type fakeGenerator struct {
	chunks   []string
	err      error
	defaults map[llmprovider.ProviderKind]llmprovider.ProviderDefaults

	calls       int
	gotPrompt   string
	gotFiles    []llmprovider.AttachedFile
	gotSettings llmprovider.Settings
	gotDeadline bool
}

func (f *fakeGenerator) GenerateCaseAnalysis(ctx context.Context, prompt string, files []llmprovider.AttachedFile, settings llmprovider.Settings, onStream llmprovider.StreamCallback) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	f.gotFiles = files
	f.gotSettings = settings
	_, f.gotDeadline = ctx.Deadline()

	var total string
	for _, c := range f.chunks {
		total += c
		if onStream != nil {
			onStream(total)
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return total, nil
}

func (f *fakeGenerator) ResolveModel(settings llmprovider.Settings) string {
	if settings.Model != "" {
		return settings.Model
	}
	return f.defaults[settings.Provider].Model
}

func (f *fakeGenerator) Defaults(kind llmprovider.ProviderKind) llmprovider.ProviderDefaults {
	return f.defaults[kind]
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{
		defaults: map[llmprovider.ProviderKind]llmprovider.ProviderDefaults{
			llmprovider.ProviderGemini:     {APIKey: "server-key", Model: "gemini-2.5-flash"},
			llmprovider.ProviderOpenRouter: {BaseURL: llmprovider.DefaultOpenRouterBaseURL, Model: "google/gemini-2.5-flash"},
			llmprovider.ProviderLocal:      {BaseURL: llmprovider.DefaultLocalBaseURL, Model: "local-model"},
		},
	}
}

func newTestUseCase(t *testing.T, gen *fakeGenerator, cfg Config) *implUseCase {
	t.Helper()
	uc, err := New(log.NewNop(), gen, cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	return uc
}

func TestAnalyze_Success(t *testing.T) {
	gen := newFakeGenerator()
	gen.chunks = []string{"Finding ", "1."}
	uc := newTestUseCase(t, gen, Config{RequestTimeout: time.Minute})

	ctx := log.WithRequestID(context.Background(), "req-1")
	var updates []string
	out, err := uc.Analyze(ctx, analysis.AnalyzeInput{
		Prompt: "compare",
		Files: []llmprovider.AttachedFile{
			{Name: " a.txt ", Payload: "SGVsbG8=", SizeBytes: 5},
		},
	}, func(s string) { updates = append(updates, s) })

	require.NoError(t, err)
	assert.Equal(t, "Finding 1.", out.Text)
	assert.Equal(t, "req-1", out.RequestID)
	assert.Equal(t, llmprovider.ProviderGemini, out.Provider)
	assert.Equal(t, "gemini-2.5-flash", out.Model)
	assert.Equal(t, 2, out.Updates)
	assert.Equal(t, []string{"Finding ", "Finding 1."}, updates)

	assert.True(t, gen.gotDeadline)
	assert.Equal(t, "server-key", gen.gotSettings.APIKey)
	assert.Equal(t, analysis.DefaultSystemInstruction, gen.gotSettings.SystemInstruction)
	require.Len(t, gen.gotFiles, 1)
	assert.Equal(t, "a.txt", gen.gotFiles[0].Name)
	assert.Equal(t, defaultMIMEType, gen.gotFiles[0].MIMEType)

	assert.Equal(t, 1.0, testutil.ToFloat64(uc.metrics.requests.WithLabelValues("gemini", outcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(uc.metrics.updates.WithLabelValues("gemini")))
}

func TestAnalyze_SettingsOverrideDefaults(t *testing.T) {
	gen := newFakeGenerator()
	gen.chunks = []string{"ok"}
	uc := newTestUseCase(t, gen, Config{DefaultProvider: llmprovider.ProviderOpenRouter, SystemInstruction: "server persona"})

	out, err := uc.Analyze(context.Background(), analysis.AnalyzeInput{
		Prompt: "p",
		Settings: llmprovider.Settings{
			Provider:          " Local ",
			Model:             "qwen2.5-7b",
			SystemInstruction: "client persona",
		},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, llmprovider.ProviderLocal, gen.gotSettings.Provider)
	assert.Equal(t, "client persona", gen.gotSettings.SystemInstruction)
	assert.Empty(t, gen.gotSettings.APIKey)
	assert.Equal(t, "qwen2.5-7b", out.Model)
	assert.False(t, gen.gotDeadline)
}

func TestAnalyze_ServerSystemInstruction(t *testing.T) {
	gen := newFakeGenerator()
	uc := newTestUseCase(t, gen, Config{SystemInstruction: "server persona"})

	_, err := uc.Analyze(context.Background(), analysis.AnalyzeInput{Prompt: "p"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "server persona", gen.gotSettings.SystemInstruction)
}

func TestAnalyze_Validation(t *testing.T) {
	big := strings.Repeat("A", 400)

	tests := []struct {
		name  string
		input analysis.AnalyzeInput
		want  error
	}{
		{name: "empty", input: analysis.AnalyzeInput{Prompt: "  "}, want: analysis.ErrEmptyRequest},
		{name: "too many files", input: analysis.AnalyzeInput{Files: []llmprovider.AttachedFile{
			{Name: "1", Payload: "AA=="}, {Name: "2", Payload: "AA=="}, {Name: "3", Payload: "AA=="},
		}}, want: analysis.ErrTooManyFiles},
		{name: "no name", input: analysis.AnalyzeInput{Files: []llmprovider.AttachedFile{{Payload: "AA=="}}}, want: analysis.ErrInvalidFile},
		{name: "no payload", input: analysis.AnalyzeInput{Files: []llmprovider.AttachedFile{{Name: "a"}}}, want: analysis.ErrInvalidFile},
		{name: "negative size", input: analysis.AnalyzeInput{Files: []llmprovider.AttachedFile{{Name: "a", Payload: "AA==", SizeBytes: -1}}}, want: analysis.ErrInvalidFile},
		{name: "declared too large", input: analysis.AnalyzeInput{Files: []llmprovider.AttachedFile{{Name: "a", Payload: "AA==", SizeBytes: 1 << 20}}}, want: analysis.ErrFileTooLarge},
		{name: "payload too large", input: analysis.AnalyzeInput{Files: []llmprovider.AttachedFile{{Name: "a", Payload: big, SizeBytes: 1}}}, want: analysis.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newFakeGenerator()
			uc := newTestUseCase(t, gen, Config{MaxFiles: 2, MaxFileBytes: 256})

			_, err := uc.Analyze(context.Background(), tt.input, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, gen.calls)
			assert.Equal(t, 1.0, testutil.ToFloat64(uc.metrics.requests.WithLabelValues("gemini", outcomeInvalidRequest)))
		})
	}
}

func TestAnalyze_FileOnly(t *testing.T) {
	gen := newFakeGenerator()
	uc := newTestUseCase(t, gen, Config{})

	_, err := uc.Analyze(context.Background(), analysis.AnalyzeInput{
		Files: []llmprovider.AttachedFile{{Name: "a.pdf", MIMEType: "application/pdf", Payload: "JVBERi0="}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
}

func TestAnalyze_ProviderFailure(t *testing.T) {
	gen := newFakeGenerator()
	gen.chunks = []string{"partial"}
	gen.err = &llmprovider.PayloadTooLargeError{Provider: llmprovider.ProviderGemini, Err: errors.New("413")}
	uc := newTestUseCase(t, gen, Config{})

	var updates []string
	_, err := uc.Analyze(context.Background(), analysis.AnalyzeInput{Prompt: "p"}, func(s string) {
		updates = append(updates, s)
	})

	var tooLarge *llmprovider.PayloadTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, []string{"partial"}, updates)
	assert.Equal(t, 1.0, testutil.ToFloat64(uc.metrics.requests.WithLabelValues("gemini", outcomePayloadTooLarge)))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, outcomeSuccess, outcomeOf(nil))
	assert.Equal(t, outcomeAuthentication, outcomeOf(&llmprovider.AuthenticationError{Provider: "gemini"}))
	assert.Equal(t, outcomeCanceled, outcomeOf(&llmprovider.ProviderError{Provider: "local", Err: context.DeadlineExceeded}))
	assert.Equal(t, outcomeInvalidRequest, outcomeOf(&llmprovider.ProviderError{Provider: "x", Err: llmprovider.ErrUnsupportedProvider}))
	assert.Equal(t, outcomeProviderError, outcomeOf(&llmprovider.ProviderError{Provider: "local", Err: errors.New("boom")}))
}

func TestProviders(t *testing.T) {
	gen := newFakeGenerator()
	uc := newTestUseCase(t, gen, Config{DefaultProvider: llmprovider.ProviderLocal})

	infos := uc.Providers(context.Background())
	require.Len(t, infos, len(llmprovider.Kinds))

	byName := map[llmprovider.ProviderKind]analysis.ProviderInfo{}
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.True(t, byName[llmprovider.ProviderGemini].HasServerKey)
	assert.True(t, byName[llmprovider.ProviderGemini].RequiresAPIKey)
	assert.False(t, byName[llmprovider.ProviderLocal].RequiresAPIKey)
	assert.True(t, byName[llmprovider.ProviderLocal].Default)
	assert.Equal(t, llmprovider.DefaultOpenRouterBaseURL, byName[llmprovider.ProviderOpenRouter].DefaultBaseURL)
}

func TestNew_InvalidDefaultProvider(t *testing.T) {
	_, err := New(log.NewNop(), newFakeGenerator(), Config{DefaultProvider: "claude"}, nil)
	assert.ErrorIs(t, err, llmprovider.ErrUnsupportedProvider)
}

func TestAnalyze_ServerKeyStaysOnConfiguredEndpoint(t *testing.T) {
	var hits int32
	var gotAuth atomic.Value
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\n\n"))
	}))
	defer foreign.Close()

	opts := llmprovider.DefaultOptions()
	opts.Defaults[llmprovider.ProviderOpenRouter] = llmprovider.ProviderDefaults{
		APIKey:  "sk-or-server",
		BaseURL: llmprovider.DefaultOpenRouterBaseURL,
		Model:   llmprovider.DefaultOpenRouterModel,
	}
	opts.Defaults[llmprovider.ProviderGemini] = llmprovider.ProviderDefaults{APIKey: "g-server", Model: llmprovider.DefaultGeminiModel}

	uc, err := New(log.NewNop(), llmprovider.NewDispatcher(opts, log.NewNop()), Config{}, prometheus.NewRegistry())
	require.NoError(t, err)

	for _, kind := range []llmprovider.ProviderKind{llmprovider.ProviderOpenRouter, llmprovider.ProviderGemini} {
		t.Run(string(kind), func(t *testing.T) {
			_, err := uc.Analyze(context.Background(), analysis.AnalyzeInput{
				Prompt:   "p",
				Settings: llmprovider.Settings{Provider: kind, BaseURL: foreign.URL},
			}, nil)

			var authErr *llmprovider.AuthenticationError
			require.ErrorAs(t, err, &authErr)
		})
	}
	assert.Zero(t, atomic.LoadInt32(&hits))
	assert.Nil(t, gotAuth.Load())

	t.Run("client key may go anywhere", func(t *testing.T) {
		out, err := uc.Analyze(context.Background(), analysis.AnalyzeInput{
			Prompt: "p",
			Settings: llmprovider.Settings{
				Provider: llmprovider.ProviderOpenRouter,
				APIKey:   "sk-client",
				BaseURL:  foreign.URL,
			},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "x", out.Text)
		assert.Equal(t, "Bearer sk-client", gotAuth.Load())
	})
}

func TestResolveSettings_ServerKey(t *testing.T) {
	gen := newFakeGenerator()
	gen.defaults[llmprovider.ProviderOpenRouter] = llmprovider.ProviderDefaults{
		APIKey:  "sk-or-server",
		BaseURL: llmprovider.DefaultOpenRouterBaseURL,
	}
	uc := newTestUseCase(t, gen, Config{})

	tests := []struct {
		name    string
		baseURL string
		wantKey string
	}{
		{name: "default endpoint", baseURL: "", wantKey: "sk-or-server"},
		{name: "same endpoint with slash", baseURL: llmprovider.DefaultOpenRouterBaseURL + "/", wantKey: "sk-or-server"},
		{name: "other endpoint", baseURL: "https://collector.example.com/v1", wantKey: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := uc.resolveSettings(llmprovider.Settings{Provider: llmprovider.ProviderOpenRouter, BaseURL: tt.baseURL})
			assert.Equal(t, tt.wantKey, s.APIKey)
		})
	}
}
