package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit is an HTTP 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model answered with something that is not
// a question tree: broken JSON or a schema mismatch.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid extraction response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers outages, network failures and rejected
// credentials. Status is the HTTP status when one was received.
type ErrProviderUnavailable struct {
	Provider string
	Status   int
	Err      error
}

func (e *ErrProviderUnavailable) Error() string {
	name := e.Provider
	if name == "" {
		name = "LLM provider"
	}
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return fmt.Sprintf("%s rejected the API key: %v", name, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s unavailable: %v", name, e.Err)
	default:
		return name + " unavailable"
	}
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the reply was cut off at MaxTokens. Very long
// papers hit this; the partial content is kept for the request log.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "extraction response truncated: max tokens exceeded"
}

// ErrMissingAPIKey is returned when the selected provider has no key.
type ErrMissingAPIKey struct {
	Provider string
	EnvVar   string
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("%s is required for the %s provider", e.EnvVar, e.Provider)
}

// ErrUnknownProvider is returned for a provider name that is not supported.
type ErrUnknownProvider struct {
	Provider string
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown LLM provider: %q", e.Provider)
}

var errScriptExhausted = errors.New("no scripted reply left")

// fromStatus maps an SDK error with an HTTP status onto the package's
// error types. status is 0 when the SDK gave none (network errors).
func fromStatus(provider string, status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Provider: provider, Status: status, Err: err}
}
