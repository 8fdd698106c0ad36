package nfa

import (
	"fmt"

	"github.com/Dophin2009/regexp2/syntax"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which transitions are valid.
type StateKind uint8

const (
	// StateMatch represents a match state (accepting state)
	StateMatch StateKind = iota

	// StateRune represents a transition on exactly one rune
	StateRune

	// StateClass represents a transition on any rune of a character class.
	// '.' is compiled to a class that excludes '\n'.
	StateClass

	// StateSplit represents an epsilon transition to 2 states
	// Used for alternation (a|b) and quantifiers
	StateSplit

	// StateEpsilon represents an epsilon transition to 1 state
	// Used for sequencing and as the dangling end of a fragment
	StateEpsilon
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateRune:
		return "Rune"
	case StateClass:
		return "Class"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// For Rune
	r rune

	// For Class
	class syntax.CharClass

	// target for Rune/Class/Epsilon
	next StateID

	// For Split
	left, right StateID
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.kind == StateMatch
}

// IsEpsilon reports whether the state only has epsilon transitions.
func (s *State) IsEpsilon() bool {
	return s.kind == StateSplit || s.kind == StateEpsilon
}

// Rune returns the guard rune and target of a Rune state.
// Returns (0, InvalidState) for other kinds.
func (s *State) Rune() (rune, StateID) {
	if s.kind == StateRune {
		return s.r, s.next
	}
	return 0, InvalidState
}

// Class returns the guard class and target of a Class state.
// Returns (zero class, InvalidState) for other kinds.
func (s *State) Class() (syntax.CharClass, StateID) {
	if s.kind == StateClass {
		return s.class, s.next
	}
	return syntax.CharClass{}, InvalidState
}

// Split returns the two target states for Split states.
// Returns (InvalidState, InvalidState) for non-Split states.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the target state for Epsilon states.
// Returns InvalidState for non-Epsilon states.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// Step returns the target reached by consuming r, or InvalidState if the
// state has no transition on r.
func (s *State) Step(r rune) StateID {
	switch s.kind {
	case StateRune:
		if s.r == r {
			return s.next
		}
	case StateClass:
		if s.class.Contains(r) {
			return s.next
		}
	}
	return InvalidState
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match)", s.id)
	case StateRune:
		return fmt.Sprintf("State(%d, Rune %q -> %d)", s.id, s.r, s.next)
	case StateClass:
		return fmt.Sprintf("State(%d, Class %s -> %d)", s.id, s.class, s.next)
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA represents a compiled Thompson NFA.
// States live in a flat arena indexed by StateID, so loops created by
// quantifiers are plain integer back-references.
type NFA struct {
	states []State
	start  StateID

	// matches lists the accepting states in ascending order
	matches []StateID

	// alphabet partitions the code point space so that every guard is a
	// union of classes
	alphabet *Alphabet

	// pattern is kept for diagnostics only
	pattern string
}

// Start returns the starting state ID of the NFA
func (n *NFA) Start() StateID {
	return n.start
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch returns true if the given state is a match state
func (n *NFA) IsMatch(id StateID) bool {
	if s := n.State(id); s != nil {
		return s.IsMatch()
	}
	return false
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// MatchStates returns the accepting states in ascending order.
func (n *NFA) MatchStates() []StateID {
	return n.matches
}

// Alphabet returns the input partition shared by all guards of the NFA.
func (n *NFA) Alphabet() *Alphabet {
	return n.alphabet
}

// Pattern returns the source pattern, if the NFA was built from one.
func (n *NFA) Pattern() string {
	return n.pattern
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, matches: %v, classes: %d}",
		len(n.states), n.start, n.matches, n.alphabet.Len())
}
