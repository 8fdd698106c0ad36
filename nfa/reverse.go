package nfa

import (
	"fmt"
	"unicode/utf8"

	"github.com/Dophin2009/regexp2/syntax"
)

// reverseEdge is a forward transition seen from its target.
type reverseEdge struct {
	from  StateID
	kind  StateKind
	r     rune
	class syntax.CharClass
}

// Reverse builds the NFA that reads a haystack backward.
//
// Every transition of forward is flipped, the match states become the start
// and the start leads to the only match state. The start also loops on any
// rune, so a run over haystack[p:] from its end accepts exactly when some
// match of forward begins at p. Run from the end of a haystack, the reverse
// automaton therefore marks every match start in one pass.
//
// Example:
//
//	Forward NFA for "ab":
//	  start -> a -> b -> match
//
//	Reverse NFA:
//	  start(any*) -> b -> a -> match
func Reverse(forward *NFA) *NFA {
	edges := collectReverseEdges(forward)

	b := NewBuilderWithCapacity(2*forward.States() + 4)
	match := b.AddMatch()

	// Pass 1: one placeholder per forward state so that edges can refer to
	// states not built yet.
	rev := make([]StateID, forward.States())
	for i := range rev {
		rev[i] = b.AddEpsilon(InvalidState)
	}

	// Pass 2: fill each placeholder with the flipped incoming edges.
	for i := range rev {
		id := StateID(i)
		var outs []StateID
		if id == forward.Start() {
			outs = append(outs, match)
		}
		for _, e := range edges[id] {
			switch e.kind {
			case StateRune:
				outs = append(outs, b.AddRune(e.r, rev[e.from]))
			case StateClass:
				outs = append(outs, b.AddClass(e.class, rev[e.from]))
			default:
				outs = append(outs, rev[e.from])
			}
		}
		reversePatch(b, rev[id], alternate(b, outs))
	}

	var starts []StateID
	for _, m := range forward.MatchStates() {
		starts = append(starts, rev[m])
	}

	// The unanchored start skips any suffix of the haystack.
	start := b.AddSplit(InvalidState, InvalidState)
	skip := b.AddClass(syntax.NewCharClass([]syntax.Range{{Lo: 0, Hi: utf8.MaxRune}}, false), start)
	if err := b.PatchSplit(start, alternate(b, starts), skip); err != nil {
		panic(fmt.Sprintf("nfa: %v", err))
	}
	b.SetStart(start)

	n, err := b.Build(WithPattern(forward.Pattern()))
	if err != nil {
		panic(fmt.Sprintf("nfa: invalid reverse automaton for %q: %v", forward.Pattern(), err))
	}
	return n
}

// collectReverseEdges lists, for every forward state, the transitions that
// enter it.
func collectReverseEdges(forward *NFA) [][]reverseEdge {
	edges := make([][]reverseEdge, forward.States())
	for i := range forward.states {
		s := &forward.states[i]
		switch s.kind {
		case StateRune:
			edges[s.next] = append(edges[s.next], reverseEdge{from: s.id, kind: StateRune, r: s.r})
		case StateClass:
			edges[s.next] = append(edges[s.next], reverseEdge{from: s.id, kind: StateClass, class: s.class})
		case StateSplit:
			edges[s.left] = append(edges[s.left], reverseEdge{from: s.id, kind: StateEpsilon})
			edges[s.right] = append(edges[s.right], reverseEdge{from: s.id, kind: StateEpsilon})
		case StateEpsilon:
			edges[s.next] = append(edges[s.next], reverseEdge{from: s.id, kind: StateEpsilon})
		}
	}
	return edges
}

// alternate returns a state that moves by epsilon to every state of outs.
// outs must not be empty.
func alternate(b *Builder, outs []StateID) StateID {
	head := outs[len(outs)-1]
	for i := len(outs) - 2; i >= 0; i-- {
		head = b.AddSplit(outs[i], head)
	}
	return head
}

func reversePatch(b *Builder, id, target StateID) {
	if err := b.Patch(id, target); err != nil {
		panic(fmt.Sprintf("nfa: %v", err))
	}
}
