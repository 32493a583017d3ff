package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/abhisek/pyqtrack/internal/store"
)

type recorder struct {
	inner  Provider
	events store.EventRepo
	logger *slog.Logger
}

// WithLogging records every call to p in events, which may be nil, and in
// the default logger.
func WithLogging(p Provider, events store.EventRepo) Provider {
	return &recorder{inner: p, events: events, logger: slog.Default().With("component", "llm")}
}

func (r *recorder) ModelID() string { return r.inner.ModelID() }

// Name is the wrapped provider's vendor, or its model if it has none.
func (r *recorder) Name() string {
	if n, ok := r.inner.(Named); ok {
		return n.Name()
	}
	return r.inner.ModelID()
}

func (r *recorder) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)
	ev := r.event(PurposeFrom(ctx), req, resp, err, time.Since(start))

	attrs := []slog.Attr{
		slog.String("provider", ev.Provider),
		slog.String("model", ev.Model),
		slog.String("purpose", ev.Purpose),
		slog.Int64("latency_ms", ev.LatencyMs),
	}
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "llm request failed", append(attrs, slog.Any("err", err))...)
	} else {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "llm request",
			append(attrs, slog.Int("input_tokens", ev.InputTokens), slog.Int("output_tokens", ev.OutputTokens))...)
	}

	if r.events != nil {
		if werr := r.events.AppendLLMRequest(ctx, ev); werr != nil {
			r.logger.Warn("recording llm request", "err", werr)
		}
	}
	return resp, err
}

func (r *recorder) event(purpose string, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    r.Name(),
		Model:       r.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		ev.ResponseBody = partialOutput(err)
	}
	return ev
}

// partialOutput is whatever the model produced before the call failed.
func partialOutput(err error) string {
	if mt := (*ErrMaxTokensExceeded)(nil); errors.As(err, &mt) {
		return string(mt.Content)
	}
	if inv := (*ErrInvalidResponse)(nil); errors.As(err, &inv) {
		return string(inv.Content)
	}
	return ""
}

// transcript renders a request as indented JSON for the request log.
// The schema is recorded by name only.
func transcript(req Request) string {
	t := struct {
		System   string    `json:"system,omitempty"`
		Messages []Message `json:"messages"`
		Schema   string    `json:"schema,omitempty"`
	}{System: req.System, Messages: req.Messages}
	if req.Schema != nil {
		t.Schema = req.Schema.Name
	}
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
