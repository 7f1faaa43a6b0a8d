package gemini

const (
	// DefaultModel is the default Gemini model
	DefaultModel = "gemini-2.5-flash"

	// DefaultMaxOutputTokens caps the length of a generated answer
	DefaultMaxOutputTokens int32 = 8192
)
