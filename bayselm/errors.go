package bayselm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConcentration is returned when the concentration is not positive.
	ErrInvalidConcentration = errors.New("concentration must be positive")
	// ErrInvalidIterations is returned when the iteration count is negative.
	ErrInvalidIterations = errors.New("iterations must not be negative")
	// ErrUnknownAtomMode is returned for an atom granularity other than string or char.
	ErrUnknownAtomMode = errors.New("unknown atom mode")
	// ErrUnknownBaseDistribution is returned for an unregistered base distribution name.
	ErrUnknownBaseDistribution = errors.New("unknown base distribution")
	// ErrMissingInput is returned when no corpus path is given.
	ErrMissingInput = errors.New("input file is required")
	// ErrMissingOutput is returned when the output path is empty.
	ErrMissingOutput = errors.New("output file is required")
	// ErrNotInitialized is returned when training starts before Initialize.
	ErrNotInitialized = errors.New("segmenter is not initialized")
)

// ConfigError reports an invalid configuration value.
//
// The sentinel error can be matched with errors.Is.
type ConfigError struct {
	Field string
	Value any
	cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Field, e.Value, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// IOError reports a failure reading the corpus or writing output.
//
// The underlying error can be accessed via errors.Unwrap.
type IOError struct {
	Op    string
	Path  string
	Line  int
	cause error
}

func (e *IOError) Error() string {
	path := e.Path
	if path == "" {
		path = "<stream>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s %s: line %d: %v", e.Op, path, e.Line, e.cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, path, e.cause)
}

func (e *IOError) Unwrap() error { return e.cause }

// InvariantViolation is the panic value raised when a caller breaks a model
// contract, such as removing a segment that was never seated.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s: invariant violation: %s", e.Op, e.Detail)
}
