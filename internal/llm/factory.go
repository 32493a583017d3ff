package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/pyqtrack/internal/store"
)

type constructor func(ctx context.Context, cfg Config) (Provider, error)

var constructors = map[string]constructor{
	ProviderGroq: func(_ context.Context, cfg Config) (Provider, error) {
		return NewGroqProvider(cfg.Groq)
	},
	ProviderOpenAI: func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenAIProvider(cfg.OpenAI)
	},
	ProviderOpenRouter: func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenRouterProvider(cfg.OpenRouter)
	},
	ProviderAnthropic: func(_ context.Context, cfg Config) (Provider, error) {
		return NewAnthropicProvider(cfg.Anthropic)
	},
	ProviderGemini: func(ctx context.Context, cfg Config) (Provider, error) {
		return NewGeminiProvider(ctx, cfg.Gemini)
	},
}

// NewProvider builds the configured provider. Hosted providers are wrapped
// so each attempt is logged to events (which may be nil) and transient
// failures are retried around the logging layer. The mock is returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == ProviderMock {
		return NewMockProvider(), nil
	}
	build, ok := constructors[cfg.Provider]
	if !ok {
		return nil, &ErrUnknownProvider{Provider: cfg.Provider}
	}
	base, err := build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithLogging(base, events), cfg.Retry), nil
}
