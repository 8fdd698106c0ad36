package lazy

import (
	"slices"

	"github.com/Dophin2009/regexp2/dfa"
	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/nfa"
)

// Cache holds the DFA states determinized so far by one searcher.
//
// A Cache is not safe for concurrent use; each goroutine needs its own. It
// may be reused across searches, and reuse is what makes the lazy DFA fast:
// states computed by one search are found ready by the next.
//
// Memory management:
//   - States are never evicted individually
//   - When the cache is full it is cleared entirely and the search
//     continues, rebuilding states on demand
//   - Clearing keeps the allocated map memory
type Cache struct {
	dfa *DFA
	det *dfa.Determinizer

	states []*State
	index  map[dfa.StateKey][]StateID

	// reverse caches the states of the reverse DFA. It is nil in a cache
	// of a reverse DFA.
	reverse *Cache

	// start is the start state's id, or InvalidState after a clear.
	start StateID

	clears int
	hits   uint64
	misses uint64
}

// NewCache returns an empty cache for d.
func (d *DFA) NewCache() *Cache {
	c := &Cache{
		dfa:   d,
		det:   dfa.NewDeterminizer(d.nfa),
		index: make(map[dfa.StateKey][]StateID),
	}
	if d.reverse != nil {
		c.reverse = d.reverse.NewCache()
	}
	c.reset()
	return c
}

// reset leaves only the dead state in the cache.
func (c *Cache) reset() {
	clear(c.states)
	c.states = c.states[:0]
	clear(c.index)
	c.states = append(c.states, newState(DeadState, nil, false, c.dfa.alphabet.Len()))
	c.index[dfa.ComputeStateKey(nil)] = []StateID{DeadState}
	c.start = InvalidState
}

// Size returns the current number of forward states in the cache. The
// reverse states are bounded by the same limit.
func (c *Cache) Size() int {
	return len(c.states)
}

// Clears returns how many times the cache has been cleared because it was
// full, counting the forward and the reverse states.
func (c *Cache) Clears() int {
	if c.reverse != nil {
		return c.clears + c.reverse.clears
	}
	return c.clears
}

// Stats returns transition hit/miss counts and the hit rate.
//
// A hit is a transition found already computed; a miss required a
// subset-construction step.
func (c *Cache) Stats() (hits, misses uint64, hitRate float64) {
	hits, misses = c.hits, c.misses
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return hits, misses, hitRate
}

// State returns the state with the given id, or nil.
func (c *Cache) State(id StateID) *State {
	if int(id) >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// startState returns the id of the start state, computing it if needed.
func (c *Cache) startState() StateID {
	if c.start == InvalidState {
		if len(c.states) >= c.dfa.config.CacheStates {
			c.reset()
			c.clears++
		}
		c.start = c.intern(c.det.Start())
	}
	return c.start
}

// next returns the transition from id on class, determinizing it on a miss.
// A miss may clear the cache, after which only the returned id and the start
// state are valid.
func (c *Cache) next(id StateID, class uint32) StateID {
	s := c.states[id]
	if t := s.trans[class]; t != InvalidState {
		c.hits++
		return t
	}
	c.misses++

	label := c.det.Next(s.label, c.dfa.alphabet.Representative(class))
	if t, ok := c.lookup(dfa.ComputeStateKey(label), label); ok {
		s.trans[class] = t
		return t
	}
	if len(c.states) >= c.dfa.config.CacheStates {
		src := s.label
		c.reset()
		c.clears++
		s = c.states[c.intern(src)]
	}
	t := c.intern(label)
	s.trans[class] = t
	return t
}

// intern returns the id of label, adding a state for it if it has none.
// The caller guarantees there is room.
func (c *Cache) intern(label []nfa.StateID) StateID {
	key := dfa.ComputeStateKey(label)
	if id, ok := c.lookup(key, label); ok {
		return id
	}
	id := StateID(conv.IntToUint32(len(c.states)))
	c.states = append(c.states, newState(id, label, c.det.IsAccepting(label), c.dfa.alphabet.Len()))
	c.index[key] = append(c.index[key], id)
	return id
}

func (c *Cache) lookup(key dfa.StateKey, label []nfa.StateID) (StateID, bool) {
	for _, id := range c.index[key] {
		if slices.Equal(c.states[id].label, label) {
			return id, true
		}
	}
	return InvalidState, false
}
