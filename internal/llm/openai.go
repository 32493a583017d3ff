package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
	"gpt-4.1":     "gpt-4.1",
}

// groqModels maps friendly names to Groq model IDs.
var groqModels = map[string]string{
	"llama-70b": "llama-3.3-70b-versatile",
	"llama-8b":  "llama-3.1-8b-instant",
}

// jsonMode selects how an OpenAI-compatible endpoint is asked for JSON.
type jsonMode int

const (
	// jsonSchemaMode sends the schema as a strict response format.
	jsonSchemaMode jsonMode = iota
	// jsonObjectMode only asks for a JSON object and puts the schema in the
	// system prompt. Groq and most OpenRouter models support only this.
	jsonObjectMode
)

// OpenAIProvider implements Provider for OpenAI and the OpenAI-compatible
// Groq and OpenRouter APIs.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	model  string
	mode   jsonMode
}

func newChatProvider(name, apiKey, model, baseURL string, mode jsonMode) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, &ErrMissingAPIKey{Provider: name, EnvVar: EnvVar(name, "API_KEY")}
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		name:   name,
		model:  model,
		mode:   mode,
	}, nil
}

// NewOpenAIProvider creates a provider for the OpenAI API.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	return newChatProvider(ProviderOpenAI, cfg.APIKey, resolveModel(cfg.Model, openaiModels), cfg.BaseURL, jsonSchemaMode)
}

// NewGroqProvider creates a provider for Groq's OpenAI-compatible API.
func NewGroqProvider(cfg GroqConfig) (*OpenAIProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	return newChatProvider(ProviderGroq, cfg.APIKey, resolveModel(cfg.Model, groqModels), baseURL, jsonObjectMode)
}

// NewOpenRouterProvider creates a provider for the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newChatProvider(ProviderOpenRouter, cfg.APIKey, cfg.Model, baseURL, jsonObjectMode)
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    p.buildMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}
	if p.mode == jsonSchemaMode {
		chatReq.MaxTokens = 0
		chatReq.MaxCompletionTokens = req.MaxTokens
	}

	if req.Schema != nil {
		format, err := p.responseFormat(req.Schema)
		if err != nil {
			return nil, err
		}
		chatReq.ResponseFormat = format
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no choices in %s response", p.name),
		}
	}

	return finish(req, &Response{
		Content: json.RawMessage(resp.Choices[0].Message.Content),
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	})
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func (p *OpenAIProvider) Name() string {
	return p.name
}

func (p *OpenAIProvider) responseFormat(schema *Schema) (*openai.ChatCompletionResponseFormat, error) {
	if p.mode == jsonObjectMode {
		return &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}, nil
	}
	schemaBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   schema.Name,
			Schema: json.RawMessage(schemaBytes),
			Strict: true,
		},
	}, nil
}

func (p *OpenAIProvider) buildMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	system := req.System
	if p.mode == jsonObjectMode && req.Schema != nil {
		system = withSchemaInstructions(system, req.Schema)
	}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	return messages
}

// withSchemaInstructions appends the JSON schema to a system prompt for
// endpoints without native schema support.
func withSchemaInstructions(system string, schema *Schema) string {
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return system
	}
	if system != "" {
		system += "\n\n"
	}
	return system + "Respond with a single JSON object that matches this JSON Schema:\n" + string(def)
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonLength:
		return "max_tokens"
	case openai.FinishReasonContentFilter:
		return "error"
	default:
		return "end"
	}
}

func mapOpenAIError(provider string, err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	return fromStatus(provider, status, err)
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are passed through so full model IDs work as well.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
