package meta

import "fmt"

// Strategy is the search strategy an Engine dispatches to.
type Strategy uint8

const (
	// UseNFA simulates the NFA with the PikeVM.
	UseNFA Strategy = iota

	// UseDFA runs the eagerly built DFA.
	UseDFA

	// UseLazyDFA runs a DFA whose states are built during search in a
	// bounded per-search cache. Selected when the eager DFA exceeds
	// Config.MaxDFAStates.
	UseLazyDFA
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UseDFA:
		return "UseDFA"
	case UseLazyDFA:
		return "UseLazyDFA"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}
