package meta

import (
	"errors"

	"github.com/Dophin2009/regexp2/dfa"
	"github.com/Dophin2009/regexp2/dfa/lazy"
	"github.com/Dophin2009/regexp2/literal"
	"github.com/Dophin2009/regexp2/nfa"
	"github.com/Dophin2009/regexp2/prefilter"
	"github.com/Dophin2009/regexp2/syntax"
)

// Compile compiles pattern for backend with the default configuration.
//
// Example:
//
//	engine, err := meta.Compile("hello.*world", meta.BackendNFA)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string, backend Backend) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig(backend))
}

// CompileWithConfig compiles pattern with config.
//
// The only errors are an invalid config (*ConfigError) and a syntax error
// (*CompileError wrapping a *syntax.ParseError). A DFA that would exceed
// config.MaxDFAStates is replaced by a lazy DFA, never reported.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	re, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}

	return CompileAST(pattern, re, config)
}

// CompileAST compiles an already parsed pattern. pattern is used for
// display only.
func CompileAST(pattern string, re *syntax.Node, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	n := nfa.Compile(re, nfa.WithPattern(pattern))
	e := &Engine{
		pattern:  pattern,
		config:   config,
		strategy: UseNFA,
		ast:      re,
		nfa:      n,
		pikevm:   nfa.NewPikeVM(n),
	}

	if config.Backend == BackendDFA {
		if err := e.buildDFA(); err != nil {
			return nil, &CompileError{
				Pattern: pattern,
				Err:     err,
			}
		}
	}

	if config.EnablePrefilter && !re.Nullable() {
		e.prefilter = buildPrefilter(re, config)
		if e.prefilter != nil && e.prefilter.IsComplete() {
			e.literalLen = e.prefilter.LiteralLen()
		}
	}

	e.statePool = newSearchStatePool(e)
	return e, nil
}

// buildDFA builds the eager DFA, falling back to the lazy DFA when the
// state limit is exceeded.
func (e *Engine) buildDFA() error {
	dfaConfig := dfa.DefaultConfig().
		WithMaxStates(e.config.MaxDFAStates).
		WithMinimize(e.config.MinimizeDFA)

	d, err := dfa.Build(e.nfa, dfaConfig)
	if err == nil {
		e.dfa = d
		e.strategy = UseDFA
		return nil
	}
	if !errors.Is(err, dfa.ErrStateLimitExceeded) {
		return err
	}

	lazyConfig := lazy.DefaultConfig().WithCacheStates(e.config.LazyCacheStates)
	l, err := lazy.New(e.nfa, lazyConfig)
	if err != nil {
		return err
	}
	e.lazyDFA = l
	e.strategy = UseLazyDFA
	return nil
}

// buildPrefilter returns a prefilter over the literal prefixes of re, or nil.
// re must not match the empty string: an empty match can start anywhere.
func buildPrefilter(re *syntax.Node, config Config) prefilter.Prefilter {
	extractorConfig := literal.DefaultConfig()
	extractorConfig.MaxLiterals = config.MaxLiterals
	prefixes := literal.New(extractorConfig).ExtractPrefixes(re)
	return prefilter.New(prefixes)
}

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
// For syntax errors, returns the error directly.
func (e *CompileError) Error() string {
	var parseErr *syntax.ParseError
	if errors.As(e.Err, &parseErr) {
		return e.Err.Error()
	}
	return "regexp2: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
