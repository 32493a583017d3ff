package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/pyqtrack/internal/store"
)

// semesterSchema is a cut-down extraction schema shared by the provider
// tests.
func semesterSchema() *Schema {
	return &Schema{
		Name:        "test-semesters",
		Description: "Semesters with question numbers",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"semesters": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"title":     map[string]any{"type": "string"},
							"questions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						},
						"required":             []any{"title", "questions"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"semesters"},
			"additionalProperties": false,
		},
	}
}

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"semesters":[]}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"semesters":[{"title":"W24","questions":["7"]}]}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "S25"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"semesters":[]}` {
		t.Fatalf("unexpected content %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Schema: semesterSchema()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(resp2.Content), "W24") {
		t.Fatalf("unexpected content %s", resp2.Content)
	}
}

func TestMockProvider_SchemaEnforced(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"semesters":"nope"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: semesterSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	req := Request{
		System:   "extract questions",
		Messages: []Message{{Role: RoleUser, Content: "S25 Q5 (a) ..."}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "extract questions" {
		t.Fatalf("system = %q", mock.Calls[0].System)
	}
	if mock.ModelID() != "mock" || mock.Name() != "mock" {
		t.Fatalf("identity = %q/%q", mock.Name(), mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != DefaultPurpose {
		t.Fatalf("expected default purpose, got %q", p)
	}

	ctx = WithPurpose(ctx, "preview")
	if p := PurposeFrom(ctx); p != "preview" {
		t.Fatalf("expected 'preview', got %q", p)
	}
}

func TestTrimFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := trimFences(tt.in); got != tt.want {
			t.Errorf("trimFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFinish(t *testing.T) {
	_, err := finish(Request{}, &Response{Content: json.RawMessage(`{"semes`), StopReason: "max_tokens"})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) || string(maxTok.Content) != `{"semes` {
		t.Fatalf("expected ErrMaxTokensExceeded with partial content, got %v", err)
	}

	resp, err := finish(Request{Schema: semesterSchema()}, &Response{
		Content: json.RawMessage("```json\n{\"semesters\":[]}\n```"),
	})
	if err != nil {
		t.Fatalf("fenced JSON: %v", err)
	}
	if string(resp.Content) != `{"semesters":[]}` {
		t.Fatalf("content = %s", resp.Content)
	}

	resp, err = finish(Request{}, &Response{Content: json.RawMessage("plain text")})
	if err != nil || string(resp.Content) != "plain text" {
		t.Fatalf("schemaless = %v, %v", resp, err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"groq without key", Config{Provider: ProviderGroq}, true},
		{"groq with key", Config{Provider: ProviderGroq, Groq: GroqConfig{APIKey: "gsk-test"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_MissingKeyNamesVariable(t *testing.T) {
	err := Config{Provider: ProviderGroq}.Validate()
	var missing *ErrMissingAPIKey
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingAPIKey, got %T", err)
	}
	if missing.EnvVar != "PYQTRACK_GROQ_API_KEY" {
		t.Fatalf("env var = %q", missing.EnvVar)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PYQTRACK_LLM_PROVIDER", "openrouter")
	t.Setenv("PYQTRACK_OPENROUTER_API_KEY", "or-key")
	t.Setenv("PYQTRACK_OPENROUTER_MODEL", "qwen/qwen3-32b")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenRouter {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.APIKey() != "or-key" || cfg.OpenRouter.Model != "qwen/qwen3-32b" {
		t.Fatalf("openrouter config = %+v", cfg.OpenRouter)
	}
	if cfg.Groq.Model != "llama-3.3-70b-versatile" {
		t.Fatalf("defaults lost: %+v", cfg.Groq)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, env := range []string{"GROQ_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}

	if _, ok := DiscoverConfig(DefaultConfig()); ok {
		t.Fatal("nothing should be discovered without keys")
	}

	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	cfg, ok := DiscoverConfig(DefaultConfig())
	if !ok {
		t.Fatal("expected a discovered provider")
	}
	if cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "gm-key" {
		t.Fatalf("gemini should win over openai: %+v", cfg)
	}
}

// eventSink records appended events in memory.
type eventSink struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (s *eventSink) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	s.events = append(s.events, data)
	return s.err
}

func TestWithLogging_RecordsSuccess(t *testing.T) {
	sink := &eventSink{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"semesters":[]}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 8},
	})
	p := WithLogging(mock, sink)

	ctx := WithPurpose(context.Background(), "extract")
	_, err := p.Generate(ctx, Request{
		System:   "rules",
		Messages: []Message{{Role: RoleUser, Content: "S25"}},
		Schema:   semesterSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %d", len(sink.events))
	}
	e := sink.events[0]
	if e.Provider != "mock" || e.Purpose != "extract" || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 120 || e.OutputTokens != 8 {
		t.Errorf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	var body struct {
		System   string
		Messages []Message
		Schema   string
	}
	if err := json.Unmarshal([]byte(e.RequestBody), &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body.System != "rules" || body.Schema != "test-semesters" || len(body.Messages) != 1 || body.Messages[0].Role != RoleUser {
		t.Errorf("request body = %s", e.RequestBody)
	}
	if e.ResponseBody != `{"semesters":[]}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestWithLogging_RecordsFailure(t *testing.T) {
	sink := &eventSink{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"semesters":[`)}})
	p := WithLogging(mock, sink)

	_, err := p.Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("the provider error must pass through, got %v", err)
	}
	e := sink.events[0]
	if e.Success || e.ErrorMessage == "" {
		t.Errorf("event = %+v", e)
	}
	if e.ResponseBody != `{"semesters":[` {
		t.Errorf("partial content not recorded: %q", e.ResponseBody)
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, Config{Provider: ProviderMock}, nil)
	if err != nil || p.ModelID() != "mock" {
		t.Fatalf("mock = %v, %v", p, err)
	}

	cfg := DefaultConfig()
	cfg.Groq.APIKey = "gsk-test"
	p, err = NewProvider(ctx, cfg, &eventSink{})
	if err != nil {
		t.Fatalf("groq: %v", err)
	}
	if p.ModelID() != "llama-3.3-70b-versatile" {
		t.Fatalf("groq model = %q", p.ModelID())
	}

	if _, err := NewProvider(ctx, Config{Provider: ProviderAnthropic}, nil); err == nil {
		t.Fatal("expected missing key error")
	}
	var unknown *ErrUnknownProvider
	if _, err := NewProvider(ctx, Config{Provider: "llamafile"}, nil); !errors.As(err, &unknown) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}
