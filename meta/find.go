package meta

import (
	"sync/atomic"

	"github.com/Dophin2009/regexp2/nfa"
)

// IsMatch reports whether the whole haystack matches the pattern.
//
// Example:
//
//	engine, _ := meta.Compile("(a|b)*abb", meta.BackendDFA)
//	engine.IsMatch([]byte("aababb")) // true
//	engine.IsMatch([]byte("xabb"))   // false: the match must span the input
func (e *Engine) IsMatch(haystack []byte) bool {
	switch e.strategy {
	case UseDFA:
		atomic.AddUint64(&e.stats.DFASearches, 1)
		return e.dfa.IsMatch(haystack)
	case UseLazyDFA:
		atomic.AddUint64(&e.stats.LazyDFASearches, 1)
		state := e.getSearchState()
		defer e.putSearchState(state)
		clears := state.cache.Clears()
		matched := e.lazyDFA.IsMatchWithCache(state.cache, haystack)
		e.recordClears(state, clears)
		return matched
	default:
		atomic.AddUint64(&e.stats.NFASearches, 1)
		state := e.getSearchState()
		defer e.putSearchState(state)
		return e.pikevm.IsMatchWithState(state.pikevm, haystack)
	}
}

// Find returns the leftmost-longest match in haystack, or nil.
//
// Example:
//
//	engine, _ := meta.Compile(`\d+`, meta.BackendNFA)
//	match := engine.Find([]byte("ab 123 45"))
//	println(match.Start(), match.End()) // 3, 6
func (e *Engine) Find(haystack []byte) *Match {
	return e.FindAt(haystack, 0)
}

// FindAt returns the leftmost-longest match starting at or after byte
// offset at, or nil. Offsets in the result are relative to the whole
// haystack.
func (e *Engine) FindAt(haystack []byte, at int) *Match {
	return e.find(haystack, at, true)
}

// FindShortest returns the match with the leftmost start and, from that
// start, the shortest end.
//
// Example:
//
//	engine, _ := meta.Compile("a+", meta.BackendDFA)
//	match := engine.FindShortest([]byte("baaa"))
//	println(match.Start(), match.End()) // 1, 2
func (e *Engine) FindShortest(haystack []byte) *Match {
	return e.FindShortestAt(haystack, 0)
}

// FindShortestAt is FindShortest starting at byte offset at.
func (e *Engine) FindShortestAt(haystack []byte, at int) *Match {
	return e.find(haystack, at, false)
}

// FindAll returns successive non-overlapping leftmost-longest matches. After
// an empty match the search resumes one rune further. If n >= 0, at most n
// matches are returned.
//
// Example:
//
//	engine, _ := meta.Compile("a*", meta.BackendNFA)
//	matches := engine.FindAll([]byte("baab"), -1)
//	// [0,0] [1,3] [3,3] [4,4]
func (e *Engine) FindAll(haystack []byte, n int) []*Match {
	if n == 0 {
		return nil
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	state.starts.Reset()
	var matches []*Match
	at := 0
	for at <= len(haystack) && (n < 0 || len(matches) < n) {
		start, end, ok := e.search(state, haystack, at, true)
		if !ok {
			break
		}
		matches = append(matches, NewMatch(start, end, haystack))
		if end > start {
			at = end
			continue
		}
		if end >= len(haystack) {
			break
		}
		_, w := nfa.DecodeRune(haystack[end:])
		at = end + w
	}
	return matches
}

func (e *Engine) find(haystack []byte, at int, longest bool) *Match {
	if at < 0 || at > len(haystack) {
		return nil
	}
	state := e.getSearchState()
	defer e.putSearchState(state)

	state.starts.Reset()
	start, end, ok := e.search(state, haystack, at, longest)
	if !ok {
		return nil
	}
	return NewMatch(start, end, haystack)
}

// search dispatches one unanchored search to the strategy's automaton.
// Searches of one haystack may share state.starts; it must be reset before
// moving to another haystack.
func (e *Engine) search(state *SearchState, haystack []byte, at int, longest bool) (int, int, bool) {
	if e.literalLen > 0 {
		return e.searchLiteral(haystack, at)
	}

	var cands nfa.Candidates
	if state.tracker != nil {
		state.tracker.Reset()
		cands = state.tracker.Find
	}

	var start, end int
	var ok bool
	switch e.strategy {
	case UseDFA:
		atomic.AddUint64(&e.stats.DFASearches, 1)
		start, end, ok = e.dfa.FindAtWithStarts(haystack, at, cands, longest, &state.starts)
	case UseLazyDFA:
		atomic.AddUint64(&e.stats.LazyDFASearches, 1)
		clears := state.cache.Clears()
		start, end, ok = e.lazyDFA.FindAtWithStarts(state.cache, haystack, at, cands, longest, &state.starts)
		e.recordClears(state, clears)
	default:
		atomic.AddUint64(&e.stats.NFASearches, 1)
		start, end, ok = e.pikevm.SearchWithState(state.pikevm, haystack, at, cands, longest)
	}

	if state.tracker != nil {
		e.recordPrefilter(state)
	}
	return start, end, ok
}

// searchLiteral finds matches of a pattern whose matches are exactly the
// prefilter's literals, all e.literalLen bytes long. Every occurrence is
// then a match and it is both the longest and the shortest from its start.
func (e *Engine) searchLiteral(haystack []byte, at int) (int, int, bool) {
	atomic.AddUint64(&e.stats.LiteralSearches, 1)
	start := e.prefilter.Find(haystack, at)
	if start < 0 {
		atomic.AddUint64(&e.stats.PrefilterSkipped, uint64(len(haystack)-at))
		return -1, -1, false
	}
	atomic.AddUint64(&e.stats.PrefilterCandidates, 1)
	atomic.AddUint64(&e.stats.PrefilterSkipped, uint64(start-at))
	return start, start + e.literalLen, true
}

func (e *Engine) recordClears(state *SearchState, before int) {
	if d := state.cache.Clears() - before; d > 0 {
		atomic.AddUint64(&e.stats.LazyCacheClears, uint64(d))
	}
}

func (e *Engine) recordPrefilter(state *SearchState) {
	candidates, skipped := state.tracker.Stats()
	atomic.AddUint64(&e.stats.PrefilterCandidates, candidates)
	atomic.AddUint64(&e.stats.PrefilterSkipped, skipped)
	if !state.tracker.IsActive() {
		atomic.AddUint64(&e.stats.PrefilterRetired, 1)
	}
}
