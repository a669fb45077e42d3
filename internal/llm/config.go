// Package llm provides the client abstraction over the external
// language-generation capability, with a Gemini implementation.
package llm

// Default model names. Scoring uses a stronger model at low temperature for
// consistent structured output; chat uses a lighter model at a higher
// temperature for conversational replies.
const (
	DefaultScoringModel = "gemini-1.5-pro"
	DefaultChatModel    = "gemini-2.5-flash-lite"

	scoringTemperature float32 = 0.3
	chatTemperature    float32 = 0.7
)

// Config holds the model configuration for the application.
type Config struct {
	ScoringModel string
	ChatModel    string
}

// DefaultConfig returns the default Gemini model configuration.
func DefaultConfig() *Config {
	return &Config{
		ScoringModel: DefaultScoringModel,
		ChatModel:    DefaultChatModel,
	}
}
