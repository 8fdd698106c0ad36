// Package regexp2 provides a regular-expression engine with explicit NFA and
// DFA backends.
//
// A pattern is parsed into a syntax tree, compiled to a Thompson NFA and,
// for the DFA backend, determinized by subset construction. Both backends
// give identical results.
//
// Basic usage:
//
//	re, err := regexp2.Compile(`\d+\w?`, regexp2.BackendDFA)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	re.MatchString("08m")              // true: the whole string matches
//	re.FindString("room 101b, floor 3") // "101b"
//
// Matching semantics:
//   - MatchString reports whether the whole input matches
//   - Find methods return the leftmost-longest match
//   - Offsets are byte offsets into the input
//
// Supported syntax: literals, '.', bracket classes, groups, alternation,
// the quantifiers * + ? and the shorthands \d \D \w \W \s \S. There are no
// anchors, counted repetition, captures or flags.
package regexp2

import (
	"github.com/Dophin2009/regexp2/meta"
	"github.com/Dophin2009/regexp2/syntax"
)

// Backend selects the automaton a Regex matches with.
type Backend = meta.Backend

const (
	// BackendNFA matches by simulating the NFA.
	BackendNFA = meta.BackendNFA

	// BackendDFA matches with a DFA, built lazily when the full DFA would
	// be too large.
	BackendDFA = meta.BackendDFA
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := regexp2.MustCompile(`(a|b)*abb`, regexp2.BackendNFA)
//	if re.MatchString("aababb") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Regexp is an alias for Regex.
type Regexp = Regex

// Compile compiles pattern for backend.
//
// Example:
//
//	re, err := regexp2.Compile(`[a-z]+@[a-z]+`, regexp2.BackendDFA)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string, backend Backend) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig(backend))
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
//
// Example:
//
//	var word = regexp2.MustCompile(`\w+`, regexp2.BackendDFA)
func MustCompile(pattern string, backend Backend) *Regex {
	re, err := Compile(pattern, backend)
	if err != nil {
		panic("regexp2: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := regexp2.DefaultConfig(regexp2.BackendDFA)
//	config.MinimizeDFA = true
//	re, err := regexp2.CompileWithConfig("(a|b)*abb", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for backend.
func DefaultConfig(backend Backend) meta.Config {
	return meta.DefaultConfig(backend)
}

// QuoteMeta returns a string that escapes all regular expression
// metacharacters inside s. The result matches exactly s.
//
// Example:
//
//	regexp2.QuoteMeta("1.5+2") // `1\.5\+2`
func QuoteMeta(s string) string {
	return syntax.QuoteMeta(s)
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Backend returns the backend the Regex matches with.
func (r *Regex) Backend() Backend {
	return r.engine.Backend()
}

// Engine returns the underlying compiled engine.
func (r *Regex) Engine() *meta.Engine {
	return r.engine
}

// Match reports whether all of b matches the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether all of s matches the pattern.
//
// Example:
//
//	re := regexp2.MustCompile(`\d+`, regexp2.BackendDFA)
//	re.MatchString("123")     // true
//	re.MatchString("abc 123") // false
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// IsMatch is MatchString.
func (r *Regex) IsMatch(s string) bool {
	return r.MatchString(s)
}

// Find returns the text of the leftmost-longest match in b, or nil.
func (r *Regex) Find(b []byte) []byte {
	match := r.engine.Find(b)
	if match == nil {
		return nil
	}
	return match.Bytes()
}

// FindString returns the text of the leftmost-longest match in s.
// Returns the empty string if there is no match, as well as when the
// match is empty; use FindStringIndex to tell them apart.
//
// Example:
//
//	re := regexp2.MustCompile(`\d+`, regexp2.BackendNFA)
//	re.FindString("age: 42") // "42"
func (r *Regex) FindString(s string) string {
	loc := r.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindIndex returns the location of the leftmost-longest match in b as
// byte offsets; the match is b[loc[0]:loc[1]]. Returns nil if there is no
// match.
func (r *Regex) FindIndex(b []byte) []int {
	match := r.engine.Find(b)
	if match == nil {
		return nil
	}
	return []int{match.Start(), match.End()}
}

// FindStringIndex returns the location of the leftmost-longest match in s.
//
// Example:
//
//	re := regexp2.MustCompile(`\d+`, regexp2.BackendNFA)
//	loc := re.FindStringIndex("age: 42")
//	println(loc[0], loc[1]) // 5, 7
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindShortestIndex returns the location of the match with the leftmost
// start and, from it, the shortest end. Returns nil if there is no match.
//
// Example:
//
//	re := regexp2.MustCompile(`a+`, regexp2.BackendDFA)
//	re.FindShortestIndex("baaa") // [1 2]
func (r *Regex) FindShortestIndex(s string) []int {
	match := r.engine.FindShortest([]byte(s))
	if match == nil {
		return nil
	}
	return []int{match.Start(), match.End()}
}

// FindAll returns successive non-overlapping matches in b. If n >= 0, it
// returns at most n matches. Returns nil if there is no match.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	matches := r.engine.FindAll(b, n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][]byte, len(matches))
	for i, m := range matches {
		out[i] = m.Bytes()
	}
	return out
}

// FindAllString is the string version of FindAll.
//
// Example:
//
//	re := regexp2.MustCompile(`\d+`, regexp2.BackendDFA)
//	re.FindAllString("1 22 333", -1) // ["1" "22" "333"]
func (r *Regex) FindAllString(s string, n int) []string {
	indices := r.FindAllStringIndex(s, n)
	if indices == nil {
		return nil
	}
	out := make([]string, len(indices))
	for i, loc := range indices {
		out[i] = s[loc[0]:loc[1]]
	}
	return out
}

// FindAllIndex returns the locations of successive non-overlapping matches
// in b. If n >= 0, it returns at most n locations.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	matches := r.engine.FindAll(b, n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{m.Start(), m.End()}
	}
	return out
}

// FindAllStringIndex is the string version of FindAllIndex.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// Count returns the number of successive non-overlapping matches in b. If
// n >= 0, it counts at most n matches.
func (r *Regex) Count(b []byte, n int) int {
	return len(r.engine.FindAll(b, n))
}

// CountString is the string version of Count.
func (r *Regex) CountString(s string, n int) int {
	return r.Count([]byte(s), n)
}

// ReplaceAllLiteral returns a copy of src with every match replaced by
// repl. repl is substituted directly.
//
// Example:
//
//	re := regexp2.MustCompile(`\d+`, regexp2.BackendDFA)
//	re.ReplaceAllLiteral([]byte("age: 42"), []byte("XX")) // "age: XX"
func (r *Regex) ReplaceAllLiteral(src, repl []byte) []byte {
	indices := r.FindAllIndex(src, -1)
	if len(indices) == 0 {
		result := make([]byte, len(src))
		copy(result, src)
		return result
	}

	result := make([]byte, 0, len(src)+len(repl)*len(indices))
	lastEnd := 0
	for _, idx := range indices {
		result = append(result, src[lastEnd:idx[0]]...)
		result = append(result, repl...)
		lastEnd = idx[1]
	}
	return append(result, src[lastEnd:]...)
}

// ReplaceAllLiteralString is the string version of ReplaceAllLiteral.
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	return string(r.ReplaceAllLiteral([]byte(src), []byte(repl)))
}

// Split slices s into substrings separated by matches. If n >= 0, it
// returns at most n substrings; the last one is the unsplit remainder.
//
// Example:
//
//	re := regexp2.MustCompile(`,`, regexp2.BackendNFA)
//	re.Split("a,b,c", -1) // ["a" "b" "c"]
//	re.Split("a,b,c", 2)  // ["a" "b,c"]
func (r *Regex) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	indices := r.FindAllStringIndex(s, -1)
	if len(indices) == 0 {
		return []string{s}
	}

	result := make([]string, 0, len(indices)+1)
	lastEnd := 0
	for _, idx := range indices {
		if n > 0 && len(result) == n-1 {
			break
		}
		result = append(result, s[lastEnd:idx[0]])
		lastEnd = idx[1]
	}
	return append(result, s[lastEnd:])
}
