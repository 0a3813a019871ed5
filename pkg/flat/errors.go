package flat

import (
	"errors"
	"fmt"
)

var (
	// ErrIntegrity indicates the tree's offsets or trivia are inconsistent
	// with its content.
	ErrIntegrity = errors.New("syntax tree integrity violation")

	// ErrDepthExceeded indicates nesting deeper than Options.MaxDepth.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")
)

// IntegrityError describes the first inconsistency found in a tree.
type IntegrityError struct {
	Offset int
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", ErrIntegrity, e.Offset, e.Reason)
}

// Unwrap allows errors.Is(err, ErrIntegrity).
func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

func integrityf(offset int, format string, args ...any) *IntegrityError {
	return &IntegrityError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
