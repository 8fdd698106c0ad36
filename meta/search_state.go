package meta

import (
	"sync"

	"github.com/Dophin2009/regexp2/dfa"
	"github.com/Dophin2009/regexp2/dfa/lazy"
	"github.com/Dophin2009/regexp2/nfa"
	"github.com/Dophin2009/regexp2/prefilter"
)

// SearchState holds per-search mutable state. It is obtained from the
// engine's pool and must not be shared between goroutines.
type SearchState struct {
	// pikevm holds the PikeVM thread queues.
	pikevm *nfa.PikeVMState

	// cache holds lazily built DFA states. Only set for UseLazyDFA. It is
	// kept across searches, so states built once are reused.
	cache *lazy.Cache

	// tracker measures the prefilter within one search. Only set when the
	// engine has a prefilter.
	tracker *prefilter.Tracker

	// starts records the match starts found by the reverse DFA, shared by
	// the searches of one FindAll.
	starts dfa.Starts
}

func newSearchState(e *Engine) *SearchState {
	state := &SearchState{
		pikevm: e.pikevm.NewState(),
	}
	if e.lazyDFA != nil {
		state.cache = e.lazyDFA.NewCache()
	}
	if e.prefilter != nil {
		state.tracker = prefilter.NewTracker(e.prefilter)
	}
	return state
}

// reset prepares the SearchState for reuse.
func (s *SearchState) reset() {
	if s.tracker != nil {
		s.tracker.Reset()
	}
	s.starts.Reset()
}

// searchStatePool manages a pool of SearchState instances.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool(e *Engine) *searchStatePool {
	return &searchStatePool{
		pool: sync.Pool{
			New: func() any {
				return newSearchState(e)
			},
		},
	}
}

// get retrieves a SearchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns a SearchState to the pool for reuse.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	state.reset()
	p.pool.Put(state)
}
