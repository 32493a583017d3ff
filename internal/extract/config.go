package extract

import "time"

// Config controls the behavior of the Extractor.
type Config struct {
	// MaxTokens is the token budget for the LLM response. A long paper
	// with many sub-questions needs several thousand.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Extraction
	// wants near-deterministic output.
	Temperature float64

	// Timeout bounds a single Parse call, retries included. Zero means no
	// limit beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns the settings extraction was tuned with.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8000,
		Temperature: 0.1,
		Timeout:     90 * time.Second,
	}
}
