package meta

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/Dophin2009/regexp2/syntax"
)

func TestIsMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"(a|b)*abb", "abb", true},
		{"(a|b)*abb", "aababb", true},
		{"(a|b)*abb", "ab", false},
		{"(a|b)*abb", "xabb", false},
		{"[^B-Fa-z]*", "AGAQR", true},
		{"[^B-Fa-z]*", "Bz", false},
		{`\d+\w?`, "3a", true},
		{`\d+\w?`, "08m", true},
		{`\d+\w?`, "999_", true},
		{`\d+\w?`, "", false},
		{`\d+\w?`, "a", false},
		{`\d+`, "٣٤", true},
		{"[a-z]", "`", false},
		{"[a-z]", "{", false},
		{"hello", "hello", true},
		{"hello", "hello world", false},
		{"", "", true},
		{"", "a", false},
		{".", "\n", false},
		{".", "日", true},
		{`\s+`, " \t 　", true},
	}
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			for _, tt := range tests {
				engine := mustCompile(t, tt.pattern, v.config)
				if got := engine.IsMatch([]byte(tt.input)); got != tt.want {
					t.Errorf("%q.IsMatch(%q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    span
	}{
		{`\d+`, "ab 123 45", span{3, 6}},
		{"a|ab", "xab", span{1, 3}},
		{"(foo|bar)[a-z]+", "xx foobaz yy", span{3, 9}},
		{"(foo|bar)[a-z]+", "foo bar", span{-1, -1}},
		{"hello", "say hello", span{4, 9}},
		{"a*", "bbb", span{0, 0}},
		{"a*", "baa", span{0, 0}},
		{"x*", "", span{0, 0}},
		{"b+", "aaabbbccc", span{3, 6}},
		{"日本", "こんにちは日本", span{15, 21}},
		{"[xyz]q", "aaazq", span{3, 5}},
		{"(ab|c)+d?", "zzabcabd", span{2, 8}},
	}
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			for _, tt := range tests {
				engine := mustCompile(t, tt.pattern, v.config)
				if got := spanOf(engine.Find([]byte(tt.input))); got != tt.want {
					t.Errorf("%q.Find(%q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestFindAt(t *testing.T) {
	for _, v := range variants() {
		engine := mustCompile(t, "ab", v.config)
		h := []byte("ab ab ab")
		if got := spanOf(engine.FindAt(h, 1)); got != (span{3, 5}) {
			t.Errorf("%s: FindAt(1) = %v, want {3 5}", v.name, got)
		}
		if got := engine.FindAt(h, 7); got != nil {
			t.Errorf("%s: FindAt(7) = %v, want nil", v.name, spanOf(got))
		}
		if got := engine.FindAt(h, -1); got != nil {
			t.Errorf("%s: FindAt(-1) = %v, want nil", v.name, spanOf(got))
		}
		if got := engine.FindAt(h, len(h)+1); got != nil {
			t.Errorf("%s: FindAt(len+1) = %v, want nil", v.name, spanOf(got))
		}
	}
}

func TestFindShortest(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    span
	}{
		{"a+", "baaa", span{1, 2}},
		{"a|ab", "xab", span{1, 2}},
		{"(a|b)*abb", "abbabb", span{0, 3}},
		{"a*", "aaa", span{0, 0}},
		{"q", "aaa", span{-1, -1}},
	}
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			for _, tt := range tests {
				engine := mustCompile(t, tt.pattern, v.config)
				if got := spanOf(engine.FindShortest([]byte(tt.input))); got != tt.want {
					t.Errorf("%q.FindShortest(%q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		n       int
		want    []span
	}{
		{"a*", "baab", -1, []span{{0, 0}, {1, 3}, {3, 3}, {4, 4}}},
		{`\d+`, "1 22 333", -1, []span{{0, 1}, {2, 4}, {5, 8}}},
		{`\d+`, "1 22 333", 2, []span{{0, 1}, {2, 4}}},
		{`\d+`, "1 22 333", 0, []span{}},
		{"x*", "日本", -1, []span{{0, 0}, {3, 3}, {6, 6}}},
		{"foo|bar", "foobarbaz foo", -1, []span{{0, 3}, {3, 6}, {10, 13}}},
		{"z", "abc", -1, []span{}},
	}
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			for _, tt := range tests {
				engine := mustCompile(t, tt.pattern, v.config)
				got := spansOf(engine.FindAll([]byte(tt.input), tt.n))
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("%q.FindAll(%q, %d) mismatch (-want +got):\n%s", tt.pattern, tt.input, tt.n, diff)
				}
			}
		})
	}
}

// All engine variants must agree with the plain NFA on every input.
func TestVariantsAgree(t *testing.T) {
	patterns := []string{
		"(a|b)*abb", "a+b*", "(ab|ba)+", "a?b?c", "[ab]c|ca*", "(a|bc)*c+",
		"ab(c|a)*b", "(a*|b)c", "b|(ac)+", "a|bab|xyz|qqq", "ab|cd", "abcd|c",
		"((a[^a][^a]|(a)*)abc(ab)*|(abc[a-c]c|[bé][a-c][ab][^a]))",
	}
	inputs := []string{
		"", "a", "abb", "aababb", "cab", "bacbac", "abcabcab", "ccc", "xaaby", "ac ac",
		"ababb", "xcdab", "xabcd", "qqxyzbab",
	}
	plain := DefaultConfig(BackendNFA)
	plain.EnablePrefilter = false
	for _, pattern := range patterns {
		reference := mustCompile(t, pattern, plain)
		for _, v := range variants() {
			engine := mustCompile(t, pattern, v.config)
			for _, in := range inputs {
				h := []byte(in)
				if got, want := engine.IsMatch(h), reference.IsMatch(h); got != want {
					t.Errorf("%s %q.IsMatch(%q) = %v, want %v", v.name, pattern, in, got, want)
				}
				if got, want := spanOf(engine.Find(h)), spanOf(reference.Find(h)); got != want {
					t.Errorf("%s %q.Find(%q) = %v, want %v", v.name, pattern, in, got, want)
				}
				if got, want := spanOf(engine.FindShortest(h)), spanOf(reference.FindShortest(h)); got != want {
					t.Errorf("%s %q.FindShortest(%q) = %v, want %v", v.name, pattern, in, got, want)
				}
				if diff := cmp.Diff(spansOf(reference.FindAll(h, -1)), spansOf(engine.FindAll(h, -1))); diff != "" {
					t.Errorf("%s %q.FindAll(%q) mismatch (-want +got):\n%s", v.name, pattern, in, diff)
				}
			}
		}
	}
}

// Literal prefixes of different lengths must not hide a match that starts
// before the first literal occurrence to end.
func TestPrefilterKeepsLeftmostStart(t *testing.T) {
	pattern := "((a[^a][^a]|(a)*)abc(ab)*|(abc[a-c]c|[bé][a-c][ab][^a]))"
	for _, v := range variants() {
		engine := mustCompile(t, pattern, v.config)
		if got := spanOf(engine.Find([]byte("ababb"))); got != (span{1, 5}) {
			t.Errorf("%s: Find(ababb) = %v, want {1 5}", v.name, got)
		}
	}

	engine := mustCompile(t, "a|bab|xyz|qqq", DefaultConfig(BackendNFA))
	if got := spanOf(engine.FindAt([]byte("ababb"), 1)); got != (span{1, 4}) {
		t.Errorf("FindAt(ababb, 1) = %v, want {1 4}", got)
	}
}

func TestCompileTwiceAgrees(t *testing.T) {
	a := mustCompile(t, `[a-c]+\d`, DefaultConfig(BackendDFA))
	b := mustCompile(t, `[a-c]+\d`, DefaultConfig(BackendDFA))
	for _, in := range []string{"abc1", "x", "cc9", "ab", "a١"} {
		assert.Equal(t, a.IsMatch([]byte(in)), b.IsMatch([]byte(in)))
		assert.Equal(t, spanOf(a.Find([]byte(in))), spanOf(b.Find([]byte(in))))
	}
}

func TestStrategySelection(t *testing.T) {
	engine := mustCompile(t, "abc", DefaultConfig(BackendNFA))
	assert.Equal(t, engine.Strategy(), UseNFA)
	assert.Assert(t, engine.DFA() == nil)
	assert.Assert(t, engine.LazyDFA() == nil)
	assert.Assert(t, engine.NFA() != nil)

	engine = mustCompile(t, "abc", DefaultConfig(BackendDFA))
	assert.Equal(t, engine.Strategy(), UseDFA)
	assert.Assert(t, engine.DFA() != nil)

	config := DefaultConfig(BackendDFA)
	config.MaxDFAStates = 2
	engine = mustCompile(t, "abc", config)
	assert.Equal(t, engine.Strategy(), UseLazyDFA)
	assert.Assert(t, engine.DFA() == nil)
	assert.Assert(t, engine.LazyDFA() != nil)
	assert.Equal(t, engine.Backend(), BackendDFA)
	assert.Equal(t, engine.Pattern(), "abc")
}

func TestMinimizeDFAConfig(t *testing.T) {
	config := DefaultConfig(BackendDFA)
	plain := mustCompile(t, "(a|b)*abb", config)
	config.MinimizeDFA = true
	minimized := mustCompile(t, "(a|b)*abb", config)
	assert.Equal(t, minimized.DFA().States(), 5)
	assert.Assert(t, plain.DFA().States() >= minimized.DFA().States())
}

func TestPrefilterSelection(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"hello", true},
		{"(foo|bar)[a-z]+", true},
		{"a*", false},
		{"a?b?", false},
		{".*foo", false},
		{"[a-z]+", false},
	}
	for _, tt := range tests {
		engine := mustCompile(t, tt.pattern, DefaultConfig(BackendNFA))
		if got := engine.Prefilter() != nil; got != tt.want {
			t.Errorf("%q has prefilter = %v, want %v", tt.pattern, got, tt.want)
		}
	}

	config := DefaultConfig(BackendNFA)
	config.EnablePrefilter = false
	engine := mustCompile(t, "hello", config)
	assert.Assert(t, engine.Prefilter() == nil)
}

func TestStats(t *testing.T) {
	engine := mustCompile(t, "hello[a-z]*", DefaultConfig(BackendDFA))
	match := engine.Find([]byte("say hello"))
	assert.Equal(t, spanOf(match), span{4, 9})

	stats := engine.Stats()
	assert.Equal(t, stats.DFASearches, uint64(1))
	assert.Equal(t, stats.NFASearches, uint64(0))
	assert.Equal(t, stats.LiteralSearches, uint64(0))
	assert.Equal(t, stats.PrefilterCandidates, uint64(1))
	assert.Equal(t, stats.PrefilterSkipped, uint64(4))

	engine.IsMatch([]byte("hello"))
	assert.Equal(t, engine.Stats().DFASearches, uint64(2))

	engine.ResetStats()
	assert.DeepEqual(t, engine.Stats(), Stats{})
}

// A pattern whose matches are exactly equal-length literals is answered by
// the prefilter alone.
func TestLiteralSearch(t *testing.T) {
	for _, backend := range []Backend{BackendNFA, BackendDFA} {
		engine := mustCompile(t, "hello|world", DefaultConfig(backend))
		assert.Equal(t, spanOf(engine.Find([]byte("say world, hello"))), span{4, 9})
		assert.Equal(t, spanOf(engine.FindShortest([]byte("hello"))), span{0, 5})
		assert.Equal(t, spanOf(engine.Find([]byte("hell"))), span{-1, -1})
		assert.DeepEqual(t, spansOf(engine.FindAll([]byte("helloworld"), -1)), []span{{0, 5}, {5, 10}})

		stats := engine.Stats()
		assert.Equal(t, stats.LiteralSearches, uint64(6))
		assert.Equal(t, stats.NFASearches+stats.DFASearches+stats.LazyDFASearches, uint64(0))
	}

	// Literals of different lengths still go through the automaton.
	engine := mustCompile(t, "ab|abc", DefaultConfig(BackendNFA))
	assert.Equal(t, spanOf(engine.Find([]byte("xabc"))), span{1, 4})
	assert.Equal(t, engine.Stats().LiteralSearches, uint64(0))
}

// FindAll over a long haystack scans it backward once, not once per match.
func TestFindAllLong(t *testing.T) {
	h := []byte(strings.Repeat("ab ", 20_000))
	for _, v := range variants() {
		engine := mustCompile(t, "b|a[^a]*c", v.config)
		if got := len(engine.FindAll(h, -1)); got != 20_000 {
			t.Errorf("%s: len(FindAll) = %d, want 20000", v.name, got)
		}
		if got := spanOf(engine.Find([]byte(strings.Repeat("a", 100_000)))); got != (span{-1, -1}) {
			t.Errorf("%s: Find(a...) = %v, want no match", v.name, got)
		}
	}
}

func TestLazyStats(t *testing.T) {
	config := DefaultConfig(BackendDFA)
	config.MaxDFAStates = 2
	config.LazyCacheStates = 3
	engine := mustCompile(t, "(a|b)*abb", config)
	assert.Assert(t, engine.IsMatch([]byte("abababababb")))
	stats := engine.Stats()
	assert.Equal(t, stats.LazyDFASearches, uint64(1))
	assert.Assert(t, stats.LazyCacheClears > 0)
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("(a|b", BackendDFA)
	assert.Assert(t, errors.Is(err, syntax.ErrUnclosedGroup))

	var parseErr *syntax.ParseError
	assert.Assert(t, errors.As(err, &parseErr))
	assert.Equal(t, parseErr.Kind, syntax.UnclosedGroup)
	assert.Equal(t, parseErr.Pos, 4)

	var compileErr *CompileError
	assert.Assert(t, errors.As(err, &compileErr))
	assert.Equal(t, compileErr.Pattern, "(a|b")
	assert.Equal(t, err.Error(), parseErr.Error())

	_, err = Compile("a", Backend(0))
	var configErr *ConfigError
	assert.Assert(t, errors.As(err, &configErr))
	assert.Equal(t, configErr.Field, "Backend")
}

// A lazy DFA never makes compilation fail, however many states the
// pattern needs.
func TestLargeDFAFallsBackToLazy(t *testing.T) {
	pattern := "(a|b)*a(a|b)(a|b)(a|b)(a|b)(a|b)(a|b)(a|b)(a|b)(a|b)(a|b)"
	config := DefaultConfig(BackendDFA)
	config.MaxDFAStates = 100
	engine := mustCompile(t, pattern, config)
	assert.Equal(t, engine.Strategy(), UseLazyDFA)
	// The 'a' must be followed by exactly ten more letters.
	assert.Assert(t, engine.IsMatch([]byte("bba"+strings.Repeat("b", 10))))
	assert.Assert(t, !engine.IsMatch([]byte("bba"+strings.Repeat("b", 9))))
	assert.Assert(t, !engine.IsMatch([]byte(strings.Repeat("b", 13))))
}
