package nfa

import (
	"unicode/utf8"

	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/internal/sparse"
)

// Candidates returns the first position at or after at where a match might
// start, or -1 if no later position can start a match. Searches use it to
// skip input when no thread is active. A nil Candidates means every position
// is a candidate.
type Candidates func(haystack []byte, at int) int

// PikeVM executes an NFA by simulating all of its active states at once.
//
// The NFA is immutable and the PikeVM holds no mutable state, so a single
// PikeVM may be shared by goroutines. Per-search scratch lives in a
// PikeVMState, which must not be shared between concurrent searches.
type PikeVM struct {
	nfa *NFA
}

// PikeVMState holds mutable per-search state for PikeVM.
// This struct should be pooled (via sync.Pool) for concurrent usage.
type PikeVMState struct {
	// Thread queues for current and next generation
	queue     []thread
	nextQueue []thread

	// visited tracks states already added to the generation being built
	visited *sparse.SparseSet

	// stack is scratch space for epsilon closure
	stack []StateID
}

// thread is an active consuming or match state together with the position
// where the attempt that reached it began.
type thread struct {
	state    StateID
	startPos int
}

// NewPikeVM creates a new PikeVM for executing the given NFA
func NewPikeVM(nfa *NFA) *PikeVM {
	return &PikeVM{nfa: nfa}
}

// NFA returns the automaton executed by the PikeVM.
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// NewState allocates scratch space sized for this PikeVM's NFA.
func (p *PikeVM) NewState() *PikeVMState {
	capacity := max(p.nfa.States(), 16)
	return &PikeVMState{
		queue:     make([]thread, 0, capacity),
		nextQueue: make([]thread, 0, capacity),
		visited:   sparse.NewSparseSet(conv.IntToUint32(capacity)),
		stack:     make([]StateID, 0, capacity),
	}
}

// addThread adds the epsilon-closure of id to queue, skipping states
// already visited in this generation. Only consuming and match states are
// queued.
func (p *PikeVM) addThread(st *PikeVMState, queue []thread, id StateID, startPos int) []thread {
	st.stack = append(st.stack[:0], id)
	for len(st.stack) > 0 {
		cur := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		if st.visited.Contains(uint32(cur)) {
			continue
		}
		st.visited.Insert(uint32(cur))

		s := &p.nfa.states[cur]
		switch s.kind {
		case StateEpsilon:
			st.stack = append(st.stack, s.next)
		case StateSplit:
			st.stack = append(st.stack, s.right, s.left)
		default:
			queue = append(queue, thread{state: cur, startPos: startPos})
		}
	}
	return queue
}

// IsMatch reports whether the whole haystack is matched by the NFA.
func (p *PikeVM) IsMatch(haystack []byte) bool {
	return p.IsMatchWithState(p.NewState(), haystack)
}

// IsMatchWithState is IsMatch using caller-provided scratch space.
func (p *PikeVM) IsMatchWithState(st *PikeVMState, haystack []byte) bool {
	st.visited.Clear()
	queue := p.addThread(st, st.queue[:0], p.nfa.start, 0)
	next := st.nextQueue[:0]

	for pos := 0; pos < len(haystack); {
		if len(queue) == 0 {
			break
		}
		r, w := decodeRune(haystack[pos:])
		pos += w

		st.visited.Clear()
		next = next[:0]
		for _, t := range queue {
			if target := p.nfa.states[t.state].Step(r); target != InvalidState {
				next = p.addThread(st, next, target, 0)
			}
		}
		queue, next = next, queue
		if len(queue) == 0 {
			st.queue, st.nextQueue = queue, next
			return false
		}
	}

	st.queue, st.nextQueue = queue, next
	for _, t := range queue {
		if p.nfa.states[t.state].kind == StateMatch {
			return true
		}
	}
	return false
}

// Search finds the leftmost-longest match in haystack.
// Returns (start, end, true) if a match is found, or (-1, -1, false) if not.
func (p *PikeVM) Search(haystack []byte) (int, int, bool) {
	return p.SearchWithState(p.NewState(), haystack, 0, nil, true)
}

// SearchAt is Search restricted to matches starting at or after at.
func (p *PikeVM) SearchAt(haystack []byte, at int) (int, int, bool) {
	return p.SearchWithState(p.NewState(), haystack, at, nil, true)
}

// SearchShortest finds the leftmost match, preferring the shortest end.
func (p *PikeVM) SearchShortest(haystack []byte, at int) (int, int, bool) {
	return p.SearchWithState(p.NewState(), haystack, at, nil, false)
}

// SearchWithState runs a single pass over haystack from at, starting a new
// attempt at every candidate position until a match is found. Threads are
// queued in order of their start position and each state is kept only by
// the earliest attempt to reach it, so the first attempt to report a match
// owns the leftmost start.
//
// With longest set the match extends as far as possible; otherwise the
// first end reached from the leftmost start is reported.
func (p *PikeVM) SearchWithState(st *PikeVMState, haystack []byte, at int, cands Candidates, longest bool) (int, int, bool) {
	if at < 0 || at > len(haystack) {
		return -1, -1, false
	}

	bestStart, bestEnd := -1, -1
	cand := at
	if cands != nil {
		cand = cands(haystack, at)
	}

	st.visited.Clear()
	queue := st.queue[:0]
	next := st.nextQueue[:0]

	pos := at
	for {
		// Seed a new attempt here unless a match has already been found;
		// any later start would lose to it.
		if bestStart < 0 && cand >= 0 {
			if cands != nil && cand < pos {
				cand = cands(haystack, pos)
			}
			if cands == nil || cand == pos {
				queue = p.addThread(st, queue, p.nfa.start, pos)
			}
		}

		for _, t := range queue {
			if p.nfa.states[t.state].kind != StateMatch {
				continue
			}
			if bestStart < 0 || t.startPos < bestStart ||
				(longest && t.startPos == bestStart && pos > bestEnd) {
				bestStart, bestEnd = t.startPos, pos
			}
		}

		if pos >= len(haystack) {
			break
		}

		if len(queue) == 0 {
			if bestStart >= 0 || cand < 0 {
				break
			}
			st.visited.Clear()
			if cands != nil && cand > pos {
				pos = cand
				continue
			}
			_, w := decodeRune(haystack[pos:])
			pos += w
			continue
		}

		r, w := decodeRune(haystack[pos:])
		st.visited.Clear()
		next = next[:0]
		for _, t := range queue {
			if bestStart >= 0 && (t.startPos > bestStart || (!longest && t.startPos == bestStart)) {
				continue
			}
			if target := p.nfa.states[t.state].Step(r); target != InvalidState {
				next = p.addThread(st, next, target, t.startPos)
			}
		}
		queue, next = next, queue
		pos += w
	}

	st.queue, st.nextQueue = queue[:0], next[:0]
	if bestStart < 0 {
		return -1, -1, false
	}
	return bestStart, bestEnd, true
}

// decodeRune decodes the first rune of b with an ASCII fast path.
// Invalid UTF-8 decodes as utf8.RuneError with width 1.
func decodeRune(b []byte) (rune, int) {
	if c := b[0]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRune(b)
}

// DecodeRune is exported for the DFA searchers so that every backend
// splits input into runes identically.
func DecodeRune(b []byte) (rune, int) {
	return decodeRune(b)
}
