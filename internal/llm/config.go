package llm

import (
	"os"
	"strings"
	"time"
)

// Provider names accepted in configuration.
const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration. It is read from the llm:
// section of the config file and overridden by environment variables.
type Config struct {
	Provider string `yaml:"provider"`

	Groq       GroqConfig       `yaml:"groq"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single extraction including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// GroqConfig configures the Groq OpenAI-compatible endpoint.
type GroqConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "llama-3.3-70b-versatile"
	BaseURL string `yaml:"base_url"` // Default: "https://api.groq.com/openai/v1"
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"` // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "meta-llama/llama-3.3-70b-instruct"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns the built-in configuration: Groq with Llama 3.3.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGroq,
		Groq: GroqConfig{
			Model:   "llama-3.3-70b-versatile",
			BaseURL: defaultGroqBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model:   "meta-llama/llama-3.3-70b-instruct",
			BaseURL: defaultOpenRouterBaseURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// EnvVar returns the PYQTRACK_ environment variable for a provider
// setting, e.g. EnvVar("groq", "API_KEY") is PYQTRACK_GROQ_API_KEY.
func EnvVar(provider, setting string) string {
	return "PYQTRACK_" + strings.ToUpper(provider) + "_" + setting
}

// ApplyEnv overrides cfg with any PYQTRACK_ variables that are set.
func ApplyEnv(cfg Config) Config {
	if p := os.Getenv("PYQTRACK_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	set := func(dst *string, provider, setting string) {
		if v := os.Getenv(EnvVar(provider, setting)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Groq.APIKey, ProviderGroq, "API_KEY")
	set(&cfg.Groq.Model, ProviderGroq, "MODEL")
	set(&cfg.Groq.BaseURL, ProviderGroq, "BASE_URL")
	set(&cfg.OpenAI.APIKey, ProviderOpenAI, "API_KEY")
	set(&cfg.OpenAI.Model, ProviderOpenAI, "MODEL")
	set(&cfg.OpenAI.BaseURL, ProviderOpenAI, "BASE_URL")
	set(&cfg.OpenRouter.APIKey, ProviderOpenRouter, "API_KEY")
	set(&cfg.OpenRouter.Model, ProviderOpenRouter, "MODEL")
	set(&cfg.Anthropic.APIKey, ProviderAnthropic, "API_KEY")
	set(&cfg.Anthropic.Model, ProviderAnthropic, "MODEL")
	set(&cfg.Gemini.APIKey, ProviderGemini, "API_KEY")
	set(&cfg.Gemini.Model, ProviderGemini, "MODEL")

	return cfg
}

// ConfigFromEnv builds a Config from defaults and PYQTRACK_ variables.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// DiscoverConfig probes the vendors' standard key variables in priority
// order (Groq, Gemini, OpenAI, Anthropic, OpenRouter) and selects the
// first provider whose key is found.
func DiscoverConfig(base Config) (Config, bool) {
	cfg := base
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GROQ_API_KEY", ProviderGroq, &cfg.Groq.APIKey},
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}
	return base, false
}

// APIKey returns the key configured for the selected provider.
func (c Config) APIKey() string {
	switch c.Provider {
	case ProviderGroq:
		return c.Groq.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderGemini:
		return c.Gemini.APIKey
	}
	return ""
}

// Validate checks that the selected provider is known and has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderGroq, ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic, ProviderGemini:
		if c.APIKey() == "" {
			return &ErrMissingAPIKey{Provider: c.Provider, EnvVar: EnvVar(c.Provider, "API_KEY")}
		}
		return nil
	}
	return &ErrUnknownProvider{Provider: c.Provider}
}
