// internal/fetch/errors.go
package fetch

import (
	"errors"
	"fmt"

	"github.com/law-makers/courtdata/pkg/models"
)

// PipelineError carries the failure taxonomy through the strategy chain.
// Every failure a strategy can produce is converted into one of these and
// folded into the final record's error message; nothing escapes the
// pipeline boundary as an uncaught fault.
type PipelineError struct {
	Kind       models.FailureKind
	Strategy   string
	Message    string
	Underlying error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *PipelineError) Unwrap() error {
	return e.Underlying
}

// Is matches on failure kind so callers can test for a class of failure.
func (e *PipelineError) Is(target error) bool {
	if t, ok := target.(*PipelineError); ok {
		return e.Kind == t.Kind
	}
	return errors.Is(e.Underlying, target)
}

func newPipelineError(kind models.FailureKind, strategy, message string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Strategy: strategy, Message: message, Underlying: err}
}
