package config

import "fmt"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ReadTimeoutSeconds bounds reading the full request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds"  validate:"gt=0"`
	// WriteTimeoutSeconds must exceed the LLM timeout or slow generations are cut off.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"gt=0"`
}

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=openai gemini anthropic ollama"`

	// APIKey authenticates against the provider. Ollama runs locally and needs none.
	APIKey string `mapstructure:"api_key" validate:"required_unless=Provider ollama"`

	// ModelName selects the model; empty means the provider default.
	ModelName string `mapstructure:"model_name"`

	// BaseURL overrides the provider endpoint (proxies, Ollama host).
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens"  validate:"gt=0"`

	// TimeoutSeconds bounds a single provider call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderGemini:
		return "gemini-2.0-flash"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case ProviderOllama:
		return "llama3"
	default:
		return ""
	}
}

// HandlerTimeoutSlackSeconds is how much longer a request may run than the
// provider call it makes, leaving time to write the failure response.
const HandlerTimeoutSlackSeconds = 5

// ValidateTimeouts checks that the server write timeout outlasts a provider
// call plus HandlerTimeoutSlackSeconds. Otherwise a slow provider would cut
// the connection before its 503 response is written.
func (c *Config) ValidateTimeouts() error {
	limit := c.LLM.TimeoutSeconds + HandlerTimeoutSlackSeconds
	if c.Server.WriteTimeoutSeconds <= limit {
		return fmt.Errorf(
			"server.write_timeout_seconds (%d) must exceed llm.timeout_seconds (%d) plus %d",
			c.Server.WriteTimeoutSeconds, c.LLM.TimeoutSeconds, HandlerTimeoutSlackSeconds)
	}
	return nil
}
