package meta

import (
	"sync/atomic"

	"github.com/Dophin2009/regexp2/dfa"
	"github.com/Dophin2009/regexp2/dfa/lazy"
	"github.com/Dophin2009/regexp2/nfa"
	"github.com/Dophin2009/regexp2/prefilter"
	"github.com/Dophin2009/regexp2/syntax"
)

// Engine is a compiled pattern.
//
// The automata and prefilter are immutable after compilation. Per-search
// mutable state (PikeVM queues, lazy DFA caches, prefilter trackers) comes
// from a sync.Pool, so an Engine is safe for concurrent use.
//
// Example:
//
//	engine, err := meta.Compile(`(foo|bar)\d+`, meta.BackendDFA)
//	if err != nil {
//	    return err
//	}
//	match := engine.Find([]byte("test foo123 end"))
//	if match != nil {
//	    println(string(match.Bytes())) // "foo123"
//	}
type Engine struct {
	// stats must be first for 8-byte alignment of its atomics on 32-bit
	// platforms.
	stats Stats

	pattern  string
	config   Config
	strategy Strategy
	ast      *syntax.Node

	nfa       *nfa.NFA
	pikevm    *nfa.PikeVM
	dfa       *dfa.DFA
	lazyDFA   *lazy.DFA
	prefilter prefilter.Prefilter

	// literalLen is the length of every match when the prefilter's
	// literals are exactly the matches, and 0 otherwise.
	literalLen int

	statePool *searchStatePool
}

// Stats tracks execution statistics. All counters are updated atomically.
type Stats struct {
	// NFASearches counts PikeVM searches.
	NFASearches uint64

	// DFASearches counts eager DFA searches.
	DFASearches uint64

	// LazyDFASearches counts lazy DFA searches.
	LazyDFASearches uint64

	// LazyCacheClears counts lazy DFA cache clears.
	LazyCacheClears uint64

	// LiteralSearches counts searches answered by the prefilter alone.
	LiteralSearches uint64

	// PrefilterCandidates counts candidate positions proposed by the
	// prefilter.
	PrefilterCandidates uint64

	// PrefilterSkipped counts haystack bytes the prefilter skipped.
	PrefilterSkipped uint64

	// PrefilterRetired counts searches in which the prefilter was dropped
	// for proposing too many candidates.
	PrefilterRetired uint64
}

// Pattern returns the source pattern.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Backend returns the backend the engine was compiled for.
func (e *Engine) Backend() Backend {
	return e.config.Backend
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// AST returns the parsed pattern.
func (e *Engine) AST() *syntax.Node {
	return e.ast
}

// NFA returns the compiled NFA. Every engine has one.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// DFA returns the eager DFA, or nil unless the strategy is UseDFA.
func (e *Engine) DFA() *dfa.DFA {
	return e.dfa
}

// LazyDFA returns the lazy DFA, or nil unless the strategy is UseLazyDFA.
func (e *Engine) LazyDFA() *lazy.DFA {
	return e.lazyDFA
}

// Prefilter returns the literal prefilter, or nil if the pattern has none.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		NFASearches:         atomic.LoadUint64(&e.stats.NFASearches),
		DFASearches:         atomic.LoadUint64(&e.stats.DFASearches),
		LazyDFASearches:     atomic.LoadUint64(&e.stats.LazyDFASearches),
		LazyCacheClears:     atomic.LoadUint64(&e.stats.LazyCacheClears),
		LiteralSearches:     atomic.LoadUint64(&e.stats.LiteralSearches),
		PrefilterCandidates: atomic.LoadUint64(&e.stats.PrefilterCandidates),
		PrefilterSkipped:    atomic.LoadUint64(&e.stats.PrefilterSkipped),
		PrefilterRetired:    atomic.LoadUint64(&e.stats.PrefilterRetired),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.NFASearches, 0)
	atomic.StoreUint64(&e.stats.DFASearches, 0)
	atomic.StoreUint64(&e.stats.LazyDFASearches, 0)
	atomic.StoreUint64(&e.stats.LazyCacheClears, 0)
	atomic.StoreUint64(&e.stats.LiteralSearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&e.stats.PrefilterSkipped, 0)
	atomic.StoreUint64(&e.stats.PrefilterRetired, 0)
}

// getSearchState retrieves a SearchState from the pool.
// Caller must call putSearchState when done.
func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

// putSearchState returns a SearchState to the pool.
func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}
