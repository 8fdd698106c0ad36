package literal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Dophin2009/regexp2/syntax"
)

func extract(t *testing.T, cfg ExtractorConfig, pattern string) *Seq {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", pattern, err)
	}
	return New(cfg).ExtractPrefixes(re)
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"hello", `["hello"*]`},
		{"(foo|bar)", `["bar"* "foo"*]`},
		{"[abc]test", `["atest"* "btest"* "ctest"*]`},
		{"hello.*world", `["hello"]`},
		{"a*b", `["a" "b"*]`},
		{"a+b", `["a"]`},
		{"a?b", `["b"* "ab"*]`},
		{"(foo|bar)[a-z]+", `["bar" "foo"]`},
		{"foo(bar|baz)?", `["foo"]`},
		{"é+x", `["é"]`},
		{"ab|abc", `["ab"]`},
		{".*foo", `[]`},
		{"a?", `[]`},
		{"a*", `[]`},
		{"", `[]`},
		{"[a-z]x", `[]`},
		{"[^a]x", `[]`},
		{`\d`, `[]`},
		{"�", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := extract(t, DefaultConfig(), tt.pattern)
			if got.String() != tt.want {
				t.Errorf("ExtractPrefixes(%q) = %s, want %s", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestExtractPrefixesLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLiterals = 4
	if got := extract(t, cfg, "a|b|c|d|e"); !got.IsEmpty() {
		t.Errorf("five alternatives with MaxLiterals=4 = %s, want empty", got)
	}
	// The product is too large, so the prefix stops growing.
	if got := extract(t, cfg, "(a|b)(c|d|e)"); got.String() != `["a" "b"]` {
		t.Errorf("cross product over limit = %s, want [\"a\" \"b\"]", got)
	}

	cfg = DefaultConfig()
	cfg.MaxLiteralLen = 3
	if got := extract(t, cfg, "abcdef"); got.String() != `["abc"]` {
		t.Errorf("truncated = %s, want [\"abc\"]", got)
	}

	cfg = DefaultConfig()
	cfg.MaxClassSize = 2
	if got := extract(t, cfg, "[abc]"); !got.IsEmpty() {
		t.Errorf("class over MaxClassSize = %s, want empty", got)
	}
}

// Every non-empty match must contain one of the extracted literals at its
// start. Checked by brute force over short inputs.
func TestExtractPrefixesCoverMatches(t *testing.T) {
	patterns := []string{"a*b", "a?bc|c", "(ab|c)+d?", "x(y|z)*", "(a|b)?c?d"}
	alphabet := "abcdxyz"
	for _, pattern := range patterns {
		seq := extract(t, DefaultConfig(), pattern)
		if seq.IsEmpty() {
			t.Fatalf("ExtractPrefixes(%q) is empty", pattern)
		}
		re := mustStdlib(t, pattern)
		for _, in := range words(alphabet, 4) {
			if in == "" || !re(in) {
				continue
			}
			found := false
			for _, lit := range seq.Literals() {
				if strings.HasPrefix(in, string(lit)) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%q matches %q but no literal of %s begins it", pattern, in, seq)
			}
		}
	}
}

func TestSeqMinimize(t *testing.T) {
	seq := NewSeq(
		NewLiteral([]byte("foobar"), true),
		NewLiteral([]byte("foo"), true),
		NewLiteral([]byte("baz"), true),
		NewLiteral([]byte("baz"), false),
	)
	seq.Minimize()
	got := make([]string, seq.Len())
	for i := range got {
		got[i] = seq.Get(i).String()
	}
	want := []string{
		"literal{baz, complete=false}",
		"literal{foo, complete=false}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Minimize() mismatch (-want +got):\n%s", diff)
	}
	if seq.AllComplete() {
		t.Error("AllComplete() = true after merging incomplete literals")
	}
}

func TestSeqLongestCommonPrefix(t *testing.T) {
	seq := NewSeq(
		NewLiteral([]byte("hello"), true),
		NewLiteral([]byte("help"), true),
		NewLiteral([]byte("hero"), true),
	)
	if got := string(seq.LongestCommonPrefix()); got != "he" {
		t.Errorf("LongestCommonPrefix() = %q, want %q", got, "he")
	}
	if got := NewSeq().LongestCommonPrefix(); len(got) != 0 {
		t.Errorf("empty LongestCommonPrefix() = %q", got)
	}
	if !seq.AllComplete() || NewSeq().AllComplete() {
		t.Error("AllComplete() wrong")
	}
	var nilSeq *Seq
	if nilSeq.Len() != 0 || !nilSeq.IsEmpty() {
		t.Error("nil Seq must be empty")
	}
}
