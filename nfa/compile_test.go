package nfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/Dophin2009/regexp2/syntax"
)

func mustCompile(t testing.TB, pattern string) *NFA {
	t.Helper()
	n, err := CompilePattern(pattern)
	if err != nil {
		t.Fatalf("CompilePattern(%q) error = %v", pattern, err)
	}
	return n
}

// Thompson's construction allocates a fixed number of states per operator,
// plus one final match state.
func TestCompileStateCounts(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"", 2},      // epsilon + match
		{"a", 3},     // rune + end + match
		{".", 3},     // class + end + match
		{"[a-z]", 3}, // class + end + match
		{"ab", 5},    // 2 per literal + match
		{"a|b", 7},   // 2 per literal + split + join + match
		{"a*", 5},    // 2 + split + end + match
		{"a+", 5},    // 2 + loop split + end + match
		{"a?", 5},    // 2 + split + end + match
		{"(a)", 3},   // groups add nothing
		{"((a))", 3}, // nested groups add nothing
		{"()", 2},    // empty group
		{"(a|b)*abb", 15},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			if n.States() != tt.states {
				t.Errorf("States() = %d, want %d", n.States(), tt.states)
			}
			if len(n.MatchStates()) != 1 {
				t.Errorf("MatchStates() = %v, want exactly one", n.MatchStates())
			}
		})
	}
}

// Nested quantifiers must not duplicate subtrees: the state count grows
// linearly with nesting depth.
func TestCompileNestedPlusIsLinear(t *testing.T) {
	pattern := "a"
	for range 20 {
		pattern = "(" + pattern + ")+"
	}
	n := mustCompile(t, pattern)
	if want := 3 + 20*2; n.States() != want {
		t.Errorf("States() = %d, want %d", n.States(), want)
	}
}

func TestCompilePatternParseError(t *testing.T) {
	_, err := CompilePattern("(a|b")
	if !errors.Is(err, syntax.ErrUnclosedGroup) {
		t.Errorf("CompilePattern error = %v, want UnclosedGroup", err)
	}
}

// Every guard in the NFA must be a union of whole alphabet classes: all
// runes of a class are treated identically by every state.
func TestAlphabetRespectsGuards(t *testing.T) {
	patterns := []string{
		"[a-z]+",
		"[^B-Fa-z]*",
		`\d+\w?`,
		`\s\S`,
		"a.b",
		"[α-ω]x|é",
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n := mustCompile(t, pattern)
			a := n.Alphabet()
			for c := uint32(0); int(c) < a.Len(); c++ {
				lo, hi := a.Range(c)
				probes := []rune{lo, hi, lo + (hi-lo)/2}
				for id := range n.States() {
					s := n.State(StateID(id))
					want := s.Step(lo)
					for _, r := range probes {
						if got := s.Step(r); got != want {
							t.Fatalf("class %d [%U-%U]: %v steps differently on %U and %U",
								c, lo, hi, s, lo, r)
						}
					}
				}
			}
		})
	}
}

func TestEpsilonClosure(t *testing.T) {
	n := mustCompile(t, "a*b")
	closure := n.EpsilonClosure(n.Start())

	kinds := map[StateKind]int{}
	for _, id := range closure {
		kinds[n.State(id).Kind()]++
	}
	// The start closure can consume 'a' or 'b' and cannot accept.
	if kinds[StateRune] != 2 {
		t.Errorf("closure has %d rune states, want 2", kinds[StateRune])
	}
	if n.ContainsMatch(closure) {
		t.Error("start closure of a*b must not contain the match state")
	}
	for i := 1; i < len(closure); i++ {
		if closure[i-1] >= closure[i] {
			t.Fatalf("closure %v is not strictly sorted", closure)
		}
	}

	afterB := n.Move(closure, 'b')
	if !n.ContainsMatch(afterB) {
		t.Error("a*b should accept after 'b'")
	}
	if got := n.Move(closure, 'c'); len(got) != 0 {
		t.Errorf("Move on 'c' = %v, want empty", got)
	}
}

// Star over a nullable expression creates an epsilon cycle; closure must
// terminate.
func TestEpsilonClosureCycle(t *testing.T) {
	n := mustCompile(t, "(a*)*")
	closure := n.EpsilonClosure(n.Start())
	if !n.ContainsMatch(closure) {
		t.Error("(a*)* should accept the empty string")
	}
}

func TestWriteDOT(t *testing.T) {
	n := mustCompile(t, `a|[0-9]"`)
	var sb strings.Builder
	if err := n.WriteDOT(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"digraph NFA {",
		"_start -> n",
		"doublecircle",
		`[label="a"]`,
		`[label="[0-9]"]`,
		`[label="\""]`,
		`[label="ε"]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}
