// Package dfa implements an eagerly constructed deterministic finite
// automaton over the rune-class alphabet of an NFA.
//
// Build runs the classic subset construction: every DFA state stands for a
// canonical set of NFA states, and the transition table is total over the
// alphabet partition. State 0 is always the dead state.
//
// A DFA is immutable once built and safe for concurrent use.
package dfa

import (
	"fmt"
	"strings"

	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/nfa"
)

// DFA is a deterministic automaton with a dense transition table.
type DFA struct {
	// table holds one row of len(classes) entries per state:
	// table[state*stride + class] is the target state.
	table  []StateID
	stride int

	accept []bool
	start  StateID

	// labels holds the NFA state set of every state. After minimization a
	// label is the union of the merged states' labels.
	labels [][]nfa.StateID

	alphabet *nfa.Alphabet
	pattern  string

	// reverse runs backward over a haystack and accepts where a match
	// begins. It is nil on a reverse DFA itself.
	reverse *DFA
}

// Start returns the start state.
func (d *DFA) Start() StateID {
	return d.start
}

// States returns the number of states, including the dead state.
func (d *DFA) States() int {
	return len(d.accept)
}

// IsAccepting reports whether id is an accepting state.
func (d *DFA) IsAccepting(id StateID) bool {
	return int(id) < len(d.accept) && d.accept[id]
}

// NextClass returns the transition from id on alphabet class c.
func (d *DFA) NextClass(id StateID, c uint32) StateID {
	return d.table[int(id)*d.stride+int(c)]
}

// Next returns the transition from id on rune r.
func (d *DFA) Next(id StateID, r rune) StateID {
	return d.table[int(id)*d.stride+int(d.alphabet.ClassOf(r))]
}

// Label returns the NFA states represented by id.
func (d *DFA) Label(id StateID) []nfa.StateID {
	return d.labels[id]
}

// Alphabet returns the rune-class partition the table is indexed by.
func (d *DFA) Alphabet() *nfa.Alphabet {
	return d.alphabet
}

// Pattern returns the source pattern, if known.
func (d *DFA) Pattern() string {
	return d.pattern
}

// AcceptingStates returns the ids of all accepting states.
func (d *DFA) AcceptingStates() []StateID {
	var out []StateID
	for id, ok := range d.accept {
		if ok {
			out = append(out, StateID(conv.IntToUint32(id)))
		}
	}
	return out
}

// String returns a human-readable dump of the transition table, one line per
// state. Transitions to the dead state are omitted.
func (d *DFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DFA{states: %d, classes: %d, start: %d}\n", d.States(), d.stride, d.start)
	for id := range d.accept {
		sid := StateID(conv.IntToUint32(id))
		marker := " "
		if d.accept[id] {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s%04d:", marker, id)
		for c := 0; c < d.stride; c++ {
			next := d.NextClass(sid, conv.IntToUint32(c))
			if next == DeadState {
				continue
			}
			lo, hi := d.alphabet.Range(conv.IntToUint32(c))
			if lo == hi {
				fmt.Fprintf(&sb, " %q=>%d", lo, next)
			} else {
				fmt.Fprintf(&sb, " %q-%q=>%d", lo, hi, next)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
