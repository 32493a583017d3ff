package llm

import "strings"

// ModelCost is list pricing in USD per million tokens.
type ModelCost struct {
	Input  float64
	Output float64
}

// Cost prices one call or an aggregate of calls.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.Input + float64(outputTokens)*c.Output) / 1e6
}

// LookupCost finds pricing for modelID. Dated or suffixed IDs such as
// "claude-haiku-4-5-20251001" fall back to the longest priced prefix.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	best := ""
	for id := range modelCosts {
		if len(id) > len(best) && strings.HasPrefix(modelID, id+"-") {
			best = id
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}

var modelCosts = map[string]ModelCost{
	"llama-3.3-70b-versatile":           {0.59, 0.79},
	"llama-3.1-8b-instant":              {0.05, 0.08},
	"meta-llama/llama-3.3-70b-instruct": {0.13, 0.4},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},

	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},

	"gemini-2.5-flash": {0.3, 2.5},
	"gemini-2.5-pro":   {1.25, 10},
}
