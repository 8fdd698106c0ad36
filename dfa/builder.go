package dfa

import (
	"fmt"

	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/nfa"
)

// Build determinizes n by subset construction.
//
// States are discovered breadth-first from the start state. For every state
// and every alphabet class, the class representative is stepped through the
// NFA and the result epsilon-closed; equal NFA state sets are the same DFA
// state. The empty set is the dead state.
//
// The DFA of the reversed pattern (see nfa.Reverse) is built as well; search
// uses it to find where the leftmost match begins. Each of the two is
// limited separately.
//
// Returns ErrStateLimitExceeded (wrapped in a DFAError carrying the limit)
// when more than cfg.MaxStates states would be created.
func Build(n *nfa.NFA, cfg Config) (*DFA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, err := determinize(n, cfg)
	if err != nil {
		return nil, err
	}
	d.reverse, err = determinize(nfa.Reverse(n), cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Minimize {
		return Minimize(d), nil
	}
	return d, nil
}

func determinize(n *nfa.NFA, cfg Config) (*DFA, error) {
	alphabet := n.Alphabet()
	stride := alphabet.Len()
	det := NewDeterminizer(n)
	index := newStateIndex()

	d := &DFA{
		stride:   stride,
		alphabet: alphabet,
		pattern:  n.Pattern(),
	}

	// add registers a new state and returns its id; rows are filled in
	// when the state is dequeued.
	add := func(label []nfa.StateID, key StateKey) (StateID, error) {
		if len(d.accept) >= cfg.MaxStates {
			return 0, &DFAError{
				Kind:    StateLimitExceeded,
				Message: fmt.Sprintf("DFA state limit exceeded (max %d)", cfg.MaxStates),
			}
		}
		id := StateID(conv.IntToUint32(len(d.accept)))
		d.accept = append(d.accept, det.IsAccepting(label))
		d.labels = append(d.labels, label)
		d.table = append(d.table, make([]StateID, stride)...)
		index.insert(key, id)
		return id, nil
	}

	// The dead state has the empty label and a zero row, which loops back
	// to itself.
	if _, err := add(nil, ComputeStateKey(nil)); err != nil {
		return nil, err
	}

	startLabel := det.Start()
	start, err := add(startLabel, ComputeStateKey(startLabel))
	if err != nil {
		return nil, err
	}
	d.start = start

	for cur := 1; cur < len(d.accept); cur++ {
		label := d.labels[cur]
		row := cur * stride
		for c := 0; c < stride; c++ {
			next := det.Next(label, alphabet.Representative(conv.IntToUint32(c)))
			if len(next) == 0 {
				continue
			}
			key := ComputeStateKey(next)
			id, ok := index.lookup(key, next, d.labels)
			if !ok {
				id, err = add(next, key)
				if err != nil {
					return nil, err
				}
			}
			d.table[row+c] = id
		}
	}
	return d, nil
}
