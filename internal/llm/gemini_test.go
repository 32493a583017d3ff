package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := geminiSchema(semesterSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", schema.Type)
	}
	semesters := schema.Properties["semesters"]
	if semesters == nil || semesters.Type != genai.TypeArray {
		t.Fatalf("semesters = %+v", semesters)
	}
	item := semesters.Items
	if item.Type != genai.TypeObject || len(item.Required) != 2 {
		t.Fatalf("item = %+v", item)
	}
	if item.Properties["questions"].Items.Type != genai.TypeString {
		t.Fatalf("questions items = %+v", item.Properties["questions"].Items)
	}
}

func TestMapGeminiStopReason(t *testing.T) {
	tests := []struct {
		reason genai.FinishReason
		want   string
	}{
		{genai.FinishReasonStop, "end"},
		{genai.FinishReasonMaxTokens, "max_tokens"},
		{genai.FinishReasonSafety, "error"},
	}
	for _, tt := range tests {
		res := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: tt.reason}}}
		if got := mapGeminiStopReason(res); got != tt.want {
			t.Errorf("%s => %q, want %q", tt.reason, got, tt.want)
		}
	}
	if got := mapGeminiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Errorf("no candidates => %q", got)
	}
}

func TestGeminiSchemaPropertyOrder(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":     "object",
		"required": []any{"id", "title"},
		"properties": map[string]any{
			"zeta":  map[string]any{"type": "string"},
			"title": map[string]any{"type": "string"},
			"id":    map[string]any{"type": "string"},
			"alpha": map[string]any{"type": "integer"},
		},
	})
	want := []string{"id", "title", "alpha", "zeta"}
	if len(s.PropertyOrdering) != len(want) {
		t.Fatalf("ordering = %v", s.PropertyOrdering)
	}
	for i := range want {
		if s.PropertyOrdering[i] != want[i] {
			t.Fatalf("ordering = %v, want %v", s.PropertyOrdering, want)
		}
	}
	if s.Properties["alpha"].Type != genai.TypeInteger {
		t.Errorf("alpha type = %s", s.Properties["alpha"].Type)
	}
}

func TestGeminiConfigSkipsThinkingOnFlash(t *testing.T) {
	p := &GeminiProvider{model: "gemini-2.5-flash"}
	cfg := p.config(Request{System: "extract", MaxTokens: 100, Temperature: 0.1})
	if cfg.ThinkingConfig == nil || *cfg.ThinkingConfig.ThinkingBudget != 0 {
		t.Fatalf("thinking config = %+v", cfg.ThinkingConfig)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "extract" {
		t.Errorf("system instruction = %+v", cfg.SystemInstruction)
	}

	pro := &GeminiProvider{model: "gemini-2.5-pro"}
	if pro.config(Request{}).ThinkingConfig != nil {
		t.Error("pro models keep their default thinking")
	}
}
