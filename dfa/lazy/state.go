package lazy

import (
	"fmt"

	"github.com/Dophin2009/regexp2/nfa"
)

// StateID identifies a DFA state within one Cache. IDs are only meaningful
// until the cache is next cleared.
type StateID uint32

// Special state constants
const (
	// InvalidState marks a transition that has not been computed yet
	InvalidState StateID = 0xFFFFFFFF

	// DeadState is the non-accepting sink, present in every cache at id 0
	DeadState StateID = 0
)

// State is a DFA state built on demand.
type State struct {
	id     StateID
	label  []nfa.StateID
	accept bool

	// trans has one entry per alphabet class; InvalidState entries have
	// not been computed yet.
	trans []StateID
}

func newState(id StateID, label []nfa.StateID, accept bool, classes int) *State {
	trans := make([]StateID, classes)
	for i := range trans {
		trans[i] = InvalidState
	}
	return &State{id: id, label: label, accept: accept, trans: trans}
}

// ID returns the state's identifier
func (s *State) ID() StateID {
	return s.id
}

// IsMatch returns true if this is an accepting state
func (s *State) IsMatch() bool {
	return s.accept
}

// NFAStates returns the NFA states represented by this DFA state
func (s *State) NFAStates() []nfa.StateID {
	return s.label
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	known := 0
	for _, t := range s.trans {
		if t != InvalidState {
			known++
		}
	}
	return fmt.Sprintf("DFAState(id=%d, isMatch=%v, transitions=%d, nfaStates=%v)",
		s.id, s.accept, known, s.label)
}
