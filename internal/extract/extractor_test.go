package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/pyqtrack/internal/llm"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

const paperText = `S25
Q5 (a) Explain the concept of object-oriented programming. (8)
(b) Write a program to implement inheritance in Java. (7)
W24
Q7 (a) What is exception handling? (8)`

func twoSemesterJSON() json.RawMessage {
	return json.RawMessage(`{"semesters":[
		{"id":"s25","title":"S25","questions":[
			{"id":"q5","number":"5","subQuestions":[
				{"id":"q5a","label":"(a)","text":"Explain the concept of object-oriented programming.","marks":"(8)"},
				{"id":"q5b","label":"(b)","text":"Write a program to implement inheritance in Java.","marks":"(7)"}
			]}
		]},
		{"id":"w24","title":"W24","questions":[
			{"id":"q7","number":"7","subQuestions":[
				{"id":"q7a","label":"(a)","text":" What is exception handling? ","marks":"8 marks"}
			]}
		]}
	]}`)
}

// counter returns deterministic ids for re-keyed nodes.
func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func newTestExtractor(mock *llm.MockProvider) *Extractor {
	e := New(mock, DefaultConfig())
	e.newID = counter()
	return e
}

func TestParse_Structure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: twoSemesterJSON()})
	e := newTestExtractor(mock)

	tree, err := e.Parse(context.Background(), paperText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree) != 2 || tree[0].Title != "S25" || tree[1].Title != "W24" {
		t.Fatalf("semesters = %+v", tree)
	}
	q := tree[0].Questions[0]
	if q.Number != "5" || len(q.SubQuestions) != 2 {
		t.Fatalf("question = %+v", q)
	}
	want := tracker.SubQuestion{ID: "q5a", Label: "(a)", Text: "Explain the concept of object-oriented programming.", Marks: "8"}
	if q.SubQuestions[0] != want {
		t.Errorf("sub-question = %+v, want %+v", q.SubQuestions[0], want)
	}
	last := tree[1].Questions[0].SubQuestions[0]
	if last.Text != "What is exception handling?" || last.Marks != "8" {
		t.Errorf("trimmed sub-question = %+v", last)
	}
	if p := tree.Progress(); p.Done != 0 || p.Total != 3 {
		t.Errorf("progress = %+v", p)
	}
}

func TestParse_Request(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: twoSemesterJSON()})
	e := newTestExtractor(mock)

	if _, err := e.Parse(context.Background(), paperText); err != nil {
		t.Fatal(err)
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "pyq-extraction" {
		t.Errorf("schema = %+v", req.Schema)
	}
	if req.Temperature != 0.1 || req.MaxTokens != 8000 {
		t.Errorf("temperature/max tokens = %v/%d", req.Temperature, req.MaxTokens)
	}
	if !strings.Contains(req.System, "valid JSON only") {
		t.Errorf("system = %q", req.System)
	}
	user := req.Messages[0].Content
	if !strings.Contains(user, "1. Identify semester headings") || !strings.HasSuffix(user, paperText) {
		t.Errorf("user message = %q", user)
	}
}

func TestParse_RekeysMissingAndDuplicateIDs(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"semesters":[
		{"id":"1","title":"S25","questions":[
			{"id":"1","number":"5","subQuestions":[
				{"id":"1","label":"(a)","text":"A","marks":"7"},
				{"id":"","label":"(b)","text":"B","marks":"7"}
			]}
		]},
		{"id":"2","title":"W24","questions":[
			{"id":"3","number":"5","subQuestions":[
				{"id":"4","label":"(a)","text":"C","marks":"[4]"}
			]}
		]}
	]}`)})
	e := newTestExtractor(mock)

	tree, err := e.Parse(context.Background(), paperText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("ids not unique: %v", err)
	}
	if tree[0].ID != "1" || tree[0].Questions[0].ID != "gen-1" {
		t.Errorf("question id collided with semester id: %+v", tree[0])
	}
	subs := tree[0].Questions[0].SubQuestions
	if subs[0].ID != "gen-2" || subs[1].ID != "gen-3" {
		t.Errorf("sub ids = %q, %q", subs[0].ID, subs[1].ID)
	}
	if tree[1].Questions[0].SubQuestions[0].ID != "4" {
		t.Errorf("unique id should be kept")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		responses []llm.MockResponse
		input     string
		stage     string
	}{
		{"empty input", nil, "   \n", StageInput},
		{"upstream error", []llm.MockResponse{{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}}}, paperText, StageRequest},
		{"schema mismatch", []llm.MockResponse{{Content: json.RawMessage(`{"papers":[]}`)}}, paperText, StageRequest},
		{"no questions", []llm.MockResponse{{Content: json.RawMessage(`{"semesters":[]}`)}}, paperText, StageValidate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(llm.NewMockProvider(tt.responses...))
			tree, err := e.Parse(context.Background(), tt.input)
			if tree != nil {
				t.Errorf("tree = %+v, want nil", tree)
			}
			var xerr *ExtractionError
			if !errors.As(err, &xerr) {
				t.Fatalf("expected ExtractionError, got %T (%v)", err, err)
			}
			if xerr.Stage != tt.stage {
				t.Errorf("stage = %q, want %q", xerr.Stage, tt.stage)
			}
		})
	}
}

func TestParse_NoProvider(t *testing.T) {
	e := FromConfig(context.Background(), llm.Config{Provider: llm.ProviderGroq}, nil)
	_, err := e.Parse(context.Background(), paperText)

	var xerr *ExtractionError
	if !errors.As(err, &xerr) || xerr.Stage != StageConfig {
		t.Fatalf("expected config ExtractionError, got %v", err)
	}
	var missing *llm.ErrMissingAPIKey
	if !errors.As(err, &missing) {
		t.Fatalf("missing key should be unwrappable, got %v", err)
	}
}

func TestNormalizeMarks(t *testing.T) {
	tests := map[string]string{
		"(7)":       "7",
		"[10]":      "10",
		" 8 ":       "8",
		"7 marks":   "7",
		"(3 Marks)": "3",
		"4M":        "4",
		"":          "",
		"(a+b)":     "a+b",
		"12 MARKS":  "12",
		"1 Mark":    "1",
		"İ 5m":      "İ 5m",
		"5 İm":      "5 İm",
	}
	for in, want := range tests {
		if got := normalizeMarks(in); got != want {
			t.Errorf("normalizeMarks(%q) = %q, want %q", in, got, want)
		}
	}
}
