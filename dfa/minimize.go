package dfa

import (
	"encoding/binary"
	"slices"

	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/nfa"
)

// Minimize returns a DFA accepting the same language with the fewest states.
//
// It uses Moore's partition refinement: states start split into accepting
// and non-accepting blocks, and a block is split whenever two of its states
// disagree on the block of some successor. Refinement stops when a round
// creates no new block. The dead state stays at id 0 and the label of a
// merged state is the union of the original labels. The reverse DFA is
// minimized too.
func Minimize(d *DFA) *DFA {
	n := d.States()
	block := make([]uint32, n)
	for id := range n {
		if d.accept[id] {
			block[id] = 1
		}
	}

	blocks := countBlocks(block)
	sig := make([]byte, 4*(d.stride+1))
	next := make([]uint32, n)
	for {
		seen := make(map[string]uint32, blocks)
		for id := range n {
			binary.LittleEndian.PutUint32(sig, block[id])
			row := id * d.stride
			for c := 0; c < d.stride; c++ {
				binary.LittleEndian.PutUint32(sig[4*(c+1):], block[d.table[row+c]])
			}
			b, ok := seen[string(sig)]
			if !ok {
				b = conv.IntToUint32(len(seen))
				seen[string(sig)] = b
			}
			next[id] = b
		}
		block, next = next, block
		if len(seen) == blocks {
			break
		}
		blocks = len(seen)
	}

	// Blocks are numbered by first appearance, so the dead state's block
	// is already 0.
	m := &DFA{
		table:    make([]StateID, blocks*d.stride),
		stride:   d.stride,
		accept:   make([]bool, blocks),
		labels:   make([][]nfa.StateID, blocks),
		start:    StateID(block[d.start]),
		alphabet: d.alphabet,
		pattern:  d.pattern,
	}
	for id := range n {
		b := int(block[id])
		m.accept[b] = d.accept[id]
		m.labels[b] = mergeLabels(m.labels[b], d.labels[id])
		row := id * d.stride
		for c := 0; c < d.stride; c++ {
			m.table[b*d.stride+c] = StateID(block[d.table[row+c]])
		}
	}
	if d.reverse != nil {
		m.reverse = Minimize(d.reverse)
	}
	return m
}

func countBlocks(block []uint32) int {
	seen := make(map[uint32]struct{})
	for _, b := range block {
		seen[b] = struct{}{}
	}
	return len(seen)
}

// mergeLabels returns the sorted union of two sorted labels.
func mergeLabels(a, b []nfa.StateID) []nfa.StateID {
	if len(a) == 0 {
		return b
	}
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return slices.Compact(out)
}
