package decorate

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrRetryExhausted matches every *RetryExhaustedError.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	ErrInvalidRetryPolicy = errors.New("invalid retry policy")
)

// ValidationError reports an argument below its required minimum.
// The caller may fix the argument and call again; it is never retried internally.
type ValidationError struct {
	Field string
	Value any
	Min   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s=%v is below minimum %v", ErrValidation, e.Field, e.Value, e.Min)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RetryExhaustedError wraps the last failure once every attempt has been used.
type RetryExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%v after %d attempts: %v", ErrRetryExhausted, e.Attempts, e.Last)
}

func (e *RetryExhaustedError) Is(target error) bool {
	return target == ErrRetryExhausted
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Last
}
