package extract

import (
	"errors"
	"fmt"
)

// Stages at which an extraction can fail.
const (
	StageConfig   = "config"   // no usable provider
	StageInput    = "input"    // nothing to extract
	StageRequest  = "request"  // the provider call failed
	StageDecode   = "decode"   // the response is not the expected JSON
	StageValidate = "validate" // the decoded tree is unusable
)

// ErrNoQuestions is reported when the model found nothing to extract.
var ErrNoQuestions = errors.New("no questions found in input")

// ExtractionError describes why raw text could not be turned into a
// question tree. Callers fall back to the sample dataset on any
// ExtractionError.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed (%s): %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
