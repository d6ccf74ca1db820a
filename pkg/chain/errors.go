package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToolCall is returned when the model response does not contain
	// the expected tool call
	ErrNoToolCall = errors.New("model response contains no matching tool call")

	// ErrMissingValue is returned when a step's required input value is absent
	ErrMissingValue = errors.New("required value missing from chain input")
)

// FallbackError is returned when the primary chain and every fallback failed
type FallbackError struct {
	// Primary is the error from the primary chain
	Primary error

	// Attempts is the total number of chains tried, including the primary
	Attempts int
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("all %d chains failed, primary error: %v", e.Attempts, e.Primary)
}

func (e *FallbackError) Unwrap() error {
	return e.Primary
}
