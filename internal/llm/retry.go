package llm

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// retryPolicy says what to do after a failed extraction call.
type retryPolicy int

const (
	giveUp retryPolicy = iota
	// retryOnce covers malformed model output: a second sample often
	// parses, a third rarely does.
	retryOnce
	retryTransient
)

func policyFor(err error) retryPolicy {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, new(*ErrMaxTokensExceeded)), errors.As(err, new(*ErrMissingAPIKey)):
		return giveUp
	case errors.As(err, new(*ErrInvalidResponse)):
		return retryOnce
	default:
		// Rate limits, 5xx and network errors.
		return retryTransient
	}
}

// Delay returns the wait before retry number attempt (zero based). A
// rate limit's RetryAfter wins, capped at MaxWait; otherwise the wait
// grows from InitialWait by Multiplier, is capped at MaxWait and gets
// ±20% jitter.
func (c RetryConfig) Delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		if c.MaxWait > 0 {
			return min(rl.RetryAfter, c.MaxWait)
		}
		return rl.RetryAfter
	}
	wait := float64(c.InitialWait) * math.Pow(c.Multiplier, float64(attempt))
	if c.MaxWait > 0 {
		wait = min(wait, float64(c.MaxWait))
	}
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(max(wait, 0))
}

// RetryProvider retries failed calls to the wrapped provider according
// to its RetryConfig.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p. MaxAttempts below 1 means a single attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	malformed := 0

	for attempt := 0; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch policyFor(err) {
		case giveUp:
			return nil, err
		case retryOnce:
			if malformed++; malformed > 1 {
				return nil, err
			}
		}
		if attempt+1 >= attempts {
			return nil, err
		}

		wait := r.config.Delay(attempt, err)
		slog.Debug("retrying extraction call", "model", r.inner.ModelID(), "attempt", attempt+1, "wait", wait, "err", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}
