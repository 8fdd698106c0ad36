package dfa

import (
	"hash/fnv"
	"slices"

	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/internal/sparse"
	"github.com/Dophin2009/regexp2/nfa"
)

// StateID identifies a DFA state. IDs index the rows of the transition table.
type StateID uint32

// DeadState is the non-accepting sink. Every transition out of it leads back
// to it, so a search can stop as soon as it is entered.
const DeadState StateID = 0

// StateKey is a hash of a subset-construction label.
//
// Two DFA states are the same state if their labels (sorted NFA state sets)
// are equal. Keys are only a fast filter; labels are compared on collision.
type StateKey uint64

// ComputeStateKey hashes a sorted NFA state set with FNV-1a.
func ComputeStateKey(label []nfa.StateID) StateKey {
	if len(label) == 0 {
		return StateKey(0)
	}
	h := fnv.New64a()
	var buf [4]byte
	for _, sid := range label {
		buf[0] = byte(sid)
		buf[1] = byte(sid >> 8)
		buf[2] = byte(sid >> 16)
		buf[3] = byte(sid >> 24)
		// hash.Hash.Write never returns an error
		_, _ = h.Write(buf[:])
	}
	return StateKey(h.Sum64())
}

// Determinizer computes subset-construction steps over an NFA. It owns
// scratch space and must not be used concurrently.
type Determinizer struct {
	nfa   *nfa.NFA
	set   *sparse.SparseSet
	stack []nfa.StateID
}

// NewDeterminizer returns a Determinizer for n.
func NewDeterminizer(n *nfa.NFA) *Determinizer {
	return &Determinizer{
		nfa: n,
		set: sparse.NewSparseSet(conv.IntToUint32(n.States())),
	}
}

// Start returns the label of the start state: the epsilon-closure of the
// NFA start state.
func (d *Determinizer) Start() []nfa.StateID {
	d.set.Clear()
	d.stack = d.nfa.AddClosure(d.set, d.nfa.Start(), d.stack)
	return d.label()
}

// Next returns the label reached from label by consuming r: the
// epsilon-closure of every state reachable by one transition accepting r.
// An empty result is the dead state.
func (d *Determinizer) Next(label []nfa.StateID, r rune) []nfa.StateID {
	d.set.Clear()
	for _, id := range label {
		if next := d.nfa.State(id).Step(r); next != nfa.InvalidState {
			d.stack = d.nfa.AddClosure(d.set, next, d.stack)
		}
	}
	return d.label()
}

// IsAccepting reports whether label contains an NFA match state.
func (d *Determinizer) IsAccepting(label []nfa.StateID) bool {
	return d.nfa.ContainsMatch(label)
}

// label copies the scratch set into a fresh sorted slice.
func (d *Determinizer) label() []nfa.StateID {
	values := d.set.Values()
	out := make([]nfa.StateID, len(values))
	for i, v := range values {
		out[i] = nfa.StateID(v)
	}
	slices.Sort(out)
	return out
}

// stateIndex hash-conses labels to state ids.
type stateIndex struct {
	buckets map[StateKey][]StateID
}

func newStateIndex() *stateIndex {
	return &stateIndex{buckets: make(map[StateKey][]StateID)}
}

// lookup returns the id of label, if it has one. labels resolves an id to
// its label for collision checks.
func (x *stateIndex) lookup(key StateKey, label []nfa.StateID, labels [][]nfa.StateID) (StateID, bool) {
	for _, id := range x.buckets[key] {
		if slices.Equal(labels[id], label) {
			return id, true
		}
	}
	return 0, false
}

func (x *stateIndex) insert(key StateKey, id StateID) {
	x.buckets[key] = append(x.buckets[key], id)
}
