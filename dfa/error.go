package dfa

import "fmt"

// ErrStateLimitExceeded indicates that subset construction would create more
// states than Config.MaxStates allows.
//
// Callers that must always produce a matcher fall back to the lazy DFA,
// which bounds memory with a cache instead of failing.
var ErrStateLimitExceeded = &DFAError{
	Kind:    StateLimitExceeded,
	Message: "DFA state limit exceeded",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// StateLimitExceeded indicates too many states were created
	StateLimitExceeded ErrorKind = iota

	// InvalidConfig indicates configuration validation failed
	InvalidConfig
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred while building a DFA
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
