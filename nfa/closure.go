package nfa

import (
	"slices"

	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/internal/sparse"
)

// AddClosure inserts the epsilon-closure of id into set. Every state
// reachable from id through Split and Epsilon states is inserted, including
// the epsilon states themselves. stack is scratch space; the possibly grown
// slice is returned for reuse.
func (n *NFA) AddClosure(set *sparse.SparseSet, id StateID, stack []StateID) []StateID {
	stack = append(stack[:0], id)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if set.Contains(uint32(cur)) {
			continue
		}
		set.Insert(uint32(cur))

		s := &n.states[cur]
		switch s.kind {
		case StateEpsilon:
			stack = append(stack, s.next)
		case StateSplit:
			// Right is pushed first so the left branch is explored first.
			stack = append(stack, s.right, s.left)
		}
	}
	return stack
}

// EpsilonClosure returns the sorted epsilon-closure of ids.
func (n *NFA) EpsilonClosure(ids ...StateID) []StateID {
	set := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))
	var stack []StateID
	for _, id := range ids {
		stack = n.AddClosure(set, id, stack)
	}
	return sortedStates(set)
}

// Move returns the sorted epsilon-closure of the states reached from ids by
// consuming r.
func (n *NFA) Move(ids []StateID, r rune) []StateID {
	set := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))
	var stack []StateID
	for _, id := range ids {
		if next := n.states[id].Step(r); next != InvalidState {
			stack = n.AddClosure(set, next, stack)
		}
	}
	return sortedStates(set)
}

// ContainsMatch reports whether any of ids is a match state.
func (n *NFA) ContainsMatch(ids []StateID) bool {
	for _, id := range ids {
		if n.states[id].kind == StateMatch {
			return true
		}
	}
	return false
}

func sortedStates(set *sparse.SparseSet) []StateID {
	out := make([]StateID, 0, set.Len())
	for _, v := range set.Values() {
		out = append(out, StateID(v))
	}
	slices.Sort(out)
	return out
}
