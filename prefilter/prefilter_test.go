package prefilter

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/Dophin2009/regexp2/literal"
	"github.com/Dophin2009/regexp2/syntax"
)

func seqOf(complete bool, lits ...string) *literal.Seq {
	out := make([]literal.Literal, len(lits))
	for i, l := range lits {
		out[i] = literal.NewLiteral([]byte(l), complete)
	}
	return literal.NewSeq(out...)
}

// bruteFind returns the first position at or after start where any literal
// occurs.
func bruteFind(haystack []byte, start int, lits [][]byte) int {
	for i := start; i < len(haystack); i++ {
		for _, lit := range lits {
			if bytes.HasPrefix(haystack[i:], lit) {
				return i
			}
		}
	}
	return -1
}

func TestNewSelectsStrategy(t *testing.T) {
	tests := []struct {
		name string
		seq  *literal.Seq
		want string
	}{
		{"single byte", seqOf(true, "a"), "*prefilter.memchrPrefilter"},
		{"two bytes", seqOf(true, "a", "b"), "*prefilter.byteSetPrefilter"},
		{"three bytes", seqOf(true, "a", "b", "c"), "*prefilter.byteSetPrefilter"},
		{"substring", seqOf(true, "hello"), "*prefilter.memmemPrefilter"},
		{"many", seqOf(true, "foo", "bar"), "*prefilter.ahoCorasickPrefilter"},
		{"four bytes", seqOf(true, "a", "b", "c", "d"), "*prefilter.ahoCorasickPrefilter"},
		{"cut to bytes", seqOf(true, "ab", "b", "cab"), "*prefilter.byteSetPrefilter"},
		{"cut to one literal", seqOf(true, "foo", "foobar"), "*prefilter.memmemPrefilter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := New(tt.seq)
			if pf == nil {
				t.Fatal("New() = nil")
			}
			if got := fmt.Sprintf("%T", pf); got != tt.want {
				t.Errorf("New() type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewRejects(t *testing.T) {
	if pf := New(literal.NewSeq()); pf != nil {
		t.Errorf("New(empty) = %T, want nil", pf)
	}
	if pf := New(nil); pf != nil {
		t.Errorf("New(nil) = %T, want nil", pf)
	}
	if pf := New(seqOf(true, "", "a")); pf != nil {
		t.Errorf("New(with empty literal) = %T, want nil", pf)
	}
}

// cut truncates every literal to the length of the shortest one.
func cut(set []string) [][]byte {
	n := len(set[0])
	for _, s := range set {
		n = min(n, len(s))
	}
	out := make([][]byte, len(set))
	for i, s := range set {
		out[i] = []byte(s[:n])
	}
	return out
}

func TestFindAgreesWithBruteForce(t *testing.T) {
	sets := [][]string{
		{"x"},
		{"x", "y"},
		{"x", "y", "z"},
		{"needle"},
		{"foo", "bar", "baz"},
		{"ab", "b", "cab"},
		{"日本", "語"},
		{"a", "bab", "xyz", "qqq"},
		{"ab", "bcd", "cdef", "zz"},
		{"foo", "quux", "barbaz", "qux"},
	}
	haystacks := []string{
		"",
		"x",
		"no match here",
		"xyz",
		"a foo and a bar and a baz",
		"haystack with a needle in it",
		"cab ab b",
		strings.Repeat("-", 40) + "z" + strings.Repeat("-", 40),
		"日本語",
		"ababb",
		"xbcdef abzz",
		"a quux or a barbaz, not qu",
	}
	for _, set := range sets {
		pf := New(seqOf(false, set...))
		if pf == nil {
			t.Fatalf("New(%q) = nil", set)
		}
		lits := cut(set)
		whole := make([][]byte, len(set))
		for i, s := range set {
			whole[i] = []byte(s)
		}
		for _, h := range haystacks {
			hb := []byte(h)
			for start := 0; start <= len(hb); start++ {
				got := pf.Find(hb, start)
				want := bruteFind(hb, start, lits)
				if got != want {
					t.Errorf("%q.Find(%q, %d) = %d, want %d", set, h, start, got, want)
				}
				// No occurrence of a whole literal may be skipped.
				if first := bruteFind(hb, start, whole); first >= 0 && (got < 0 || got > first) {
					t.Errorf("%q.Find(%q, %d) = %d, skips occurrence at %d", set, h, start, got, first)
				}
			}
		}
	}
}

func TestCompleteness(t *testing.T) {
	tests := []struct {
		seq          *literal.Seq
		wantComplete bool
		wantLen      int
	}{
		{seqOf(true, "a"), true, 1},
		{seqOf(false, "a"), false, 0},
		{seqOf(true, "a", "b"), true, 1},
		{seqOf(true, "hello"), true, 5},
		{seqOf(true, "foo", "bar"), true, 3},
		{seqOf(true, "foo", "quux"), false, 0},
		{seqOf(true, "ab", "cd", "efg"), false, 0},
		{seqOf(false, "foo", "bar"), false, 0},
	}
	for _, tt := range tests {
		pf := New(tt.seq)
		if got := pf.IsComplete(); got != tt.wantComplete {
			t.Errorf("New(%s).IsComplete() = %v, want %v", tt.seq, got, tt.wantComplete)
		}
		if got := pf.LiteralLen(); got != tt.wantLen {
			t.Errorf("New(%s).LiteralLen() = %d, want %d", tt.seq, got, tt.wantLen)
		}
	}
}

// Candidates from a prefilter built from a pattern's prefixes must include
// every match start.
func TestPrefilterFromPattern(t *testing.T) {
	re, err := syntax.Parse("(hello|world)!")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
	pf := New(seq)
	if pf == nil {
		t.Fatal("New() = nil")
	}
	h := []byte("foo hello! bar world! baz")
	if got := pf.Find(h, 0); got != 4 {
		t.Errorf("Find(0) = %d, want 4", got)
	}
	if got := pf.Find(h, 5); got != 15 {
		t.Errorf("Find(5) = %d, want 15", got)
	}
	if got := pf.Find(h, 16); got != -1 {
		t.Errorf("Find(16) = %d, want -1", got)
	}
	// Without the '!' neither literal occurs.
	if got := pf.Find([]byte("foo hello bar world baz"), 0); got != -1 {
		t.Errorf("Find(no literal) = %d, want -1", got)
	}
}

func TestTrackerRetires(t *testing.T) {
	tr := NewTrackerWithConfig(New(seqOf(false, "a")), TrackerConfig{
		WarmupCandidates: 8,
		CheckInterval:    1,
		MinSkip:          2,
	})
	h := []byte(strings.Repeat("a", 64))
	pos := 0
	for i := 0; i < 8; i++ {
		got := tr.Find(h, pos)
		if got != pos {
			t.Fatalf("Find(%d) = %d, want %d", pos, got, pos)
		}
		pos++
	}
	if tr.IsActive() {
		t.Fatal("tracker still active after dense candidates")
	}
	// Retired: every position is a candidate, even without the literal.
	if got := tr.Find([]byte("bbbb"), 2); got != 2 {
		t.Errorf("retired Find() = %d, want 2", got)
	}
	candidates, skipped := tr.Stats()
	if candidates != 8 || skipped != 0 {
		t.Errorf("Stats() = (%d, %d), want (8, 0)", candidates, skipped)
	}

	tr.Reset()
	if !tr.IsActive() {
		t.Error("IsActive() = false after Reset")
	}
	if got := tr.Find([]byte("bbbb"), 0); got != -1 {
		t.Errorf("Find() after Reset = %d, want -1", got)
	}
}

func TestTrackerStaysActiveOnSparseCandidates(t *testing.T) {
	inner := New(seqOf(false, "needle"))
	tr := NewTrackerWithConfig(inner, TrackerConfig{
		WarmupCandidates: 2,
		CheckInterval:    1,
		MinSkip:          4,
	})
	h := []byte(strings.Repeat(strings.Repeat("-", 30)+"needle", 10))
	n := 0
	for pos := tr.Find(h, 0); pos >= 0; pos = tr.Find(h, pos+1) {
		n++
	}
	if n != 10 {
		t.Errorf("found %d candidates, want 10", n)
	}
	if !tr.IsActive() {
		t.Error("tracker retired on sparse candidates")
	}
	if tr.Inner() != inner {
		t.Error("Inner() returned a different prefilter")
	}
}
