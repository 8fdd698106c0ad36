package meta

import (
	"testing"
)

// engineVariant names a configuration every search test runs against.
type engineVariant struct {
	name   string
	config Config
}

func variants() []engineVariant {
	minimized := DefaultConfig(BackendDFA)
	minimized.MinimizeDFA = true

	lazyDFA := DefaultConfig(BackendDFA)
	lazyDFA.MaxDFAStates = 2
	lazyDFA.LazyCacheStates = 3

	noPrefilter := DefaultConfig(BackendDFA)
	noPrefilter.EnablePrefilter = false

	nfaNoPrefilter := DefaultConfig(BackendNFA)
	nfaNoPrefilter.EnablePrefilter = false

	return []engineVariant{
		{"nfa", DefaultConfig(BackendNFA)},
		{"nfa-noprefilter", nfaNoPrefilter},
		{"dfa", DefaultConfig(BackendDFA)},
		{"dfa-min", minimized},
		{"dfa-lazy", lazyDFA},
		{"dfa-noprefilter", noPrefilter},
	}
}

func mustCompile(t testing.TB, pattern string, config Config) *Engine {
	t.Helper()
	engine, err := CompileWithConfig(pattern, config)
	if err != nil {
		t.Fatalf("CompileWithConfig(%q) error = %v", pattern, err)
	}
	return engine
}

// span is a match as a comparable value; {-1, -1} means no match.
type span struct {
	Start, End int
}

func spanOf(m *Match) span {
	if m == nil {
		return span{-1, -1}
	}
	return span{m.Start(), m.End()}
}

func spansOf(ms []*Match) []span {
	out := make([]span, len(ms))
	for i, m := range ms {
		out[i] = spanOf(m)
	}
	return out
}
