package lazy

import "fmt"

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid lazy DFA configuration",
}

// ErrorKind classifies lazy DFA errors into categories
type ErrorKind uint8

const (
	// InvalidConfig indicates configuration validation failed
	InvalidConfig ErrorKind = iota
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred while setting up a lazy DFA.
// Searches never fail: a full cache is cleared and the search continues.
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
