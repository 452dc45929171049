package reading

import (
	"errors"
	"fmt"
)

// ValidationError rejects a session before any generation cost is incurred.
// Stage names which guard fired.
type ValidationError struct {
	Stage  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s rejected the question: %s", e.Stage, e.Reason)
}

// ErrKnowledgeExhausted is returned when redrawing cannot find a card with a
// knowledge base entry. It signals an internal data gap, not bad input.
var ErrKnowledgeExhausted = errors.New("knowledge base exhausted")

// ErrCardNotFound is returned by card lookups for names absent from the
// knowledge base.
var ErrCardNotFound = errors.New("card not found")

// GenerationError wraps a failure of the generation call with the underlying
// cause preserved.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
