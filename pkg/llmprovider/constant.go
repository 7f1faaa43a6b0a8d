package llmprovider

const (
	// DefaultMaxTokens caps the generated answer for every provider.
	DefaultMaxTokens = 8192

	// DefaultTemperature keeps the analysis literal rather than creative.
	DefaultTemperature = 0.3

	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "google/gemini-2.5-flash"

	DefaultLocalBaseURL = "http://localhost:1234/v1"
	DefaultLocalModel   = "local-model"

	DefaultGeminiModel = "gemini-2.5-flash"

	// Identification headers required by the OpenRouter usage policy.
	HeaderReferer = "HTTP-Referer"
	HeaderTitle   = "X-Title"

	DefaultAppReferer = "http://localhost:8080"
	DefaultAppTitle   = "Case Analysis"
)
