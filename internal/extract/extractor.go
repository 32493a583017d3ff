// Package extract turns pasted exam paper text into a question tree using
// a language model.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/abhisek/pyqtrack/internal/llm"
	"github.com/abhisek/pyqtrack/internal/store"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// Purpose labels extraction requests in the LLM event log.
const Purpose = "extract"

// Extractor turns raw exam text into a tracker.Tree.
type Extractor struct {
	provider llm.Provider
	setupErr error
	config   Config
	newID    func() string
}

// New creates an Extractor that calls provider.
func New(provider llm.Provider, cfg Config) *Extractor {
	return &Extractor{provider: provider, config: cfg, newID: newUUID}
}

// FromConfig builds the provider chain for llmCfg. A provider that cannot
// be built (for example a missing API key) is not fatal: the returned
// Extractor reports the problem from every Parse call, so the caller
// falls back to sample data like any other extraction failure.
func FromConfig(ctx context.Context, llmCfg llm.Config, events store.EventRepo) *Extractor {
	cfg := DefaultConfig()
	if llmCfg.Timeout > 0 {
		cfg.Timeout = llmCfg.Timeout
	}
	p, err := llm.NewProvider(ctx, llmCfg, events)
	if err != nil {
		slog.Warn("llm provider unavailable", "provider", llmCfg.Provider, "err", err)
		return &Extractor{setupErr: err, config: cfg, newID: newUUID}
	}
	return New(p, cfg)
}

// Available reports whether a provider is configured.
func (e *Extractor) Available() error {
	if e.provider == nil {
		if e.setupErr != nil {
			return e.setupErr
		}
		return errors.New("no LLM provider configured")
	}
	return nil
}

// rawOutput is the model response before normalisation.
type rawOutput struct {
	Semesters []rawSemester `json:"semesters"`
}

type rawSemester struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Questions []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	ID           string           `json:"id"`
	Number       string           `json:"number"`
	SubQuestions []rawSubQuestion `json:"subQuestions"`
}

type rawSubQuestion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
	Marks string `json:"marks"`
}

// Parse extracts a question tree from raw. Every sub-question in the
// result is not done and has an id unique across the tree. Any failure is
// returned as *ExtractionError.
func (e *Extractor) Parse(ctx context.Context, raw string) (tracker.Tree, error) {
	if err := e.Available(); err != nil {
		return nil, &ExtractionError{Stage: StageConfig, Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &ExtractionError{Stage: StageInput, Err: errors.New("input is empty")}
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(raw)},
		},
		Schema:      Schema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, &ExtractionError{Stage: StageRequest, Err: err}
	}

	var out rawOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ExtractionError{Stage: StageDecode, Err: err}
	}

	tree := e.normalize(out)
	if tree.Progress().Total == 0 {
		return nil, &ExtractionError{Stage: StageValidate, Err: ErrNoQuestions}
	}
	if err := tree.Validate(); err != nil {
		return nil, &ExtractionError{Stage: StageValidate, Err: err}
	}
	return tree, nil
}
