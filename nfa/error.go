// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// implementation for regex matching.
//
// The NFA is compiled from a syntax tree by structural induction and executed
// by a PikeVM that tracks the set of active states. The alphabet partition
// computed during construction is shared with the DFA builders.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidState indicates an invalid NFA state ID was encountered
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrUnreachableState indicates a built NFA has a state that cannot be
	// reached from its start state
	ErrUnreachableState = errors.New("unreachable NFA state")
)

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
	Err     error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}
