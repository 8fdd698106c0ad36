package nfa

import (
	"fmt"

	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/syntax"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
type Builder struct {
	states     []State
	start      StateID
	boundaries *BoundarySet // Tracks guard boundaries for the alphabet partition
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states:     make([]State, 0, capacity),
		start:      InvalidState,
		boundaries: NewBoundarySet(),
	}
}

func (b *Builder) add(s State) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	s.id = id
	b.states = append(b.states, s)
	return id
}

// AddMatch adds a match (accepting) state and returns its ID
func (b *Builder) AddMatch() StateID {
	return b.add(State{kind: StateMatch})
}

// AddRune adds a state that transitions to next on exactly r.
func (b *Builder) AddRune(r rune, next StateID) StateID {
	b.boundaries.SetRange(r, r)
	return b.add(State{kind: StateRune, r: r, next: next})
}

// AddClass adds a state that transitions to next on any member of class.
func (b *Builder) AddClass(class syntax.CharClass, next StateID) StateID {
	for _, rg := range class.Ranges() {
		b.boundaries.SetRange(rg.Lo, rg.Hi)
	}
	return b.add(State{kind: StateClass, class: class, next: next})
}

// AddSplit adds a state with epsilon transitions to two states.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{kind: StateSplit, left: left, right: right})
}

// AddEpsilon adds a state with a single epsilon transition (no input consumed)
func (b *Builder) AddEpsilon(next StateID) StateID {
	return b.add(State{kind: StateEpsilon, next: next})
}

// Patch updates a state's target. This is used during compilation to handle
// forward references (e.g., loops, alternations).
// This only works for states with a single 'next' target (Rune, Class, Epsilon).
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
			Err:     ErrInvalidState,
		}
	}

	s := &b.states[stateID]
	switch s.kind {
	case StateRune, StateClass, StateEpsilon:
		s.next = target
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// PatchSplit updates the left and right targets of a Split state
func (b *Builder) PatchSplit(stateID StateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
			Err:     ErrInvalidState,
		}
	}

	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{
			Message: fmt.Sprintf("expected Split state, got %s", s.kind),
			StateID: stateID,
		}
	}

	s.left = left
	s.right = right
	return nil
}

// SetStart sets the starting state for the NFA
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
// - Start state is valid
// - All state references point to valid states
// - Every state is reachable from the start state
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{
			Message: "start state out of bounds",
			StateID: b.start,
			Err:     ErrInvalidState,
		}
	}

	valid := func(id StateID) bool { return int(id) < len(b.states) }
	for i := range b.states {
		s := &b.states[i]
		switch s.kind {
		case StateRune, StateClass, StateEpsilon:
			if !valid(s.next) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", s.next),
					StateID: s.id,
					Err:     ErrInvalidState,
				}
			}
		case StateSplit:
			if !valid(s.left) || !valid(s.right) {
				return &BuildError{
					Message: fmt.Sprintf("invalid split targets [%d, %d]", s.left, s.right),
					StateID: s.id,
					Err:     ErrInvalidState,
				}
			}
		}
	}

	seen := make([]bool, len(b.states))
	stack := []StateID{b.start}
	seen[b.start] = true
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s := &b.states[id]
		for _, next := range successors(s) {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			return &BuildError{
				Message: "state is not reachable from start",
				StateID: StateID(conv.IntToUint32(i)),
				Err:     ErrUnreachableState,
			}
		}
	}

	return nil
}

// successors returns every state directly reachable from s.
func successors(s *State) []StateID {
	switch s.kind {
	case StateRune, StateClass, StateEpsilon:
		return []StateID{s.next}
	case StateSplit:
		return []StateID{s.left, s.right}
	}
	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	n := &NFA{
		states:   b.states,
		start:    b.start,
		alphabet: b.boundaries.Alphabet(),
	}
	for i := range n.states {
		if n.states[i].kind == StateMatch {
			n.matches = append(n.matches, n.states[i].id)
		}
	}

	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// BuildOption is a functional option for configuring the built NFA
type BuildOption func(*NFA)

// WithPattern records the source pattern for diagnostics
func WithPattern(pattern string) BuildOption {
	return func(n *NFA) {
		n.pattern = pattern
	}
}
