// Package llm talks to the hosted language models that turn raw exam
// paper text into structured questions.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt and returns the model output. When
	// req.Schema is set the output is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Named is implemented by providers that know their vendor name. The
// logging decorator records it alongside the model.
type Named interface {
	Name() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System sets the model's role and the extraction rules.
	System string

	// Messages is the conversation. Extraction sends a single user message
	// holding the pasted exam text.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. Providers use
	// their native structured output mechanism when they have one.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness in [0, 1]. Zero leaves the provider
	// default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "pyq-extraction". It is
	// also the validator cache key.
	Name string

	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object when the request carried a
	// Schema, otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish applies the checks shared by every provider: a truncated
// generation is an error, and structured output must match the schema.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if req.Schema != nil {
		resp.Content = json.RawMessage(trimFences(string(resp.Content)))
		if err := validateResponse(req.Schema, resp.Content); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// trimFences strips a surrounding markdown code fence, which some models
// add around JSON even when asked not to.
func trimFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
