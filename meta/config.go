// Package meta implements the compiled matcher that coordinates parsing,
// automaton construction and search.
//
// An Engine owns one of three search strategies:
//   - UseNFA: PikeVM simulation of the Thompson NFA
//   - UseDFA: an eagerly built, table-driven DFA
//   - UseLazyDFA: a DFA built on demand, used when the eager DFA would exceed
//     Config.MaxDFAStates
//
// The backend (NFA or DFA) is always chosen by the caller; the engine only
// decides between the eager and lazy DFA. Find-style searches may consult a
// literal prefilter to skip positions where no match can start.
package meta

import "fmt"

// Backend selects the automaton used for matching. There is no default
// backend: the zero value is invalid.
type Backend uint8

const (
	// BackendNFA matches by simulating the NFA.
	BackendNFA Backend = iota + 1

	// BackendDFA matches with a DFA built by subset construction.
	BackendDFA
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendNFA:
		return "nfa"
	case BackendDFA:
		return "dfa"
	default:
		return fmt.Sprintf("Backend(%d)", uint8(b))
	}
}

// ParseBackend returns the backend named s ("nfa" or "dfa").
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "nfa":
		return BackendNFA, nil
	case "dfa":
		return BackendDFA, nil
	}
	return 0, &ConfigError{
		Field:   "Backend",
		Message: fmt.Sprintf("unknown backend %q", s),
	}
}

// Config controls engine construction.
//
// Example:
//
//	config := meta.DefaultConfig(meta.BackendDFA)
//	config.MinimizeDFA = true
//	engine, err := meta.CompileWithConfig("(a|b)*abb", config)
type Config struct {
	// Backend selects the NFA or DFA backend. Required.
	Backend Backend

	// MaxDFAStates caps the eager DFA. A pattern needing more states is
	// matched by the lazy DFA instead.
	// Default: 10000
	MaxDFAStates int

	// EnablePrefilter enables literal-based candidate search.
	// Default: true
	EnablePrefilter bool

	// MinimizeDFA minimizes the eager DFA after construction.
	// Default: false
	MinimizeDFA bool

	// LazyCacheStates bounds the number of states each lazy DFA search
	// cache holds before it is cleared.
	// Default: 1000
	LazyCacheStates int

	// MaxLiterals limits the size of the literal set a prefilter is built
	// from.
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns the default configuration for backend.
func DefaultConfig(backend Backend) Config {
	return Config{
		Backend:         backend,
		MaxDFAStates:    10_000,
		EnablePrefilter: true,
		LazyCacheStates: 1_000,
		MaxLiterals:     64,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - Backend: BackendNFA or BackendDFA
//   - MaxDFAStates: 2 to 1,000,000 (DFA backend)
//   - LazyCacheStates: 3 to 1,000,000 (DFA backend)
//   - MaxLiterals: 1 to 1,000 (prefilter enabled)
func (c Config) Validate() error {
	if c.Backend != BackendNFA && c.Backend != BackendDFA {
		return &ConfigError{
			Field:   "Backend",
			Message: "must be BackendNFA or BackendDFA",
		}
	}

	if c.Backend == BackendDFA {
		if c.MaxDFAStates < 2 || c.MaxDFAStates > 1_000_000 {
			return &ConfigError{
				Field:   "MaxDFAStates",
				Message: "must be between 2 and 1,000,000",
			}
		}
		if c.LazyCacheStates < 3 || c.LazyCacheStates > 1_000_000 {
			return &ConfigError{
				Field:   "LazyCacheStates",
				Message: "must be between 3 and 1,000,000",
			}
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp2: invalid config: " + e.Field + ": " + e.Message
}
