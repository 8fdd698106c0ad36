package literal

import (
	"regexp"
	"testing"
)

// mustStdlib returns a whole-string matcher for pattern using Go's regexp,
// which agrees with this package's syntax for patterns without shorthands.
func mustStdlib(t *testing.T, pattern string) func(string) bool {
	t.Helper()
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		t.Fatalf("regexp.Compile(%q) error = %v", pattern, err)
	}
	return re.MatchString
}

func words(alphabet string, maxLen int) []string {
	out := []string{""}
	prev := []string{""}
	for range maxLen {
		var next []string
		for _, p := range prev {
			for _, r := range alphabet {
				next = append(next, p+string(r))
			}
		}
		out = append(out, next...)
		prev = next
	}
	return out
}
