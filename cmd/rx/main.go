// Command rx matches a pattern against lines of input, or prints the
// pattern's automaton in Graphviz DOT.
//
// Usage:
//
//	rx [flags] pattern [file]
//
// With no file, rx reads standard input. The exit status is 0 if any line
// matched, 1 if none did and 2 on error.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Dophin2009/regexp2"
	"github.com/Dophin2009/regexp2/dfa"
	"github.com/Dophin2009/regexp2/meta"
	"github.com/Dophin2009/regexp2/syntax"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	backend  string
	mode     string
	dot      string
	minimize bool
	verbose  bool
	logLevel string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.backend, "backend", "", "matching backend: nfa or dfa (required)")
	fs.StringVar(&opts.mode, "mode", "match", "match (whole line), find, all or shortest")
	fs.StringVar(&opts.dot, "dot", "", "print the nfa or dfa in Graphviz DOT and exit")
	fs.BoolVar(&opts.minimize, "min", false, "minimize the DFA")
	fs.BoolVar(&opts.verbose, "v", false, "log debug output")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: rx -backend nfa|dfa [flags] pattern [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if opts.backend == "" || fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return exitError
	}

	level := parseLogLevel(opts.logLevel)
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	pattern := fs.Arg(0)
	backend, err := meta.ParseBackend(opts.backend)
	if err != nil {
		fmt.Fprintf(stderr, "rx: %v\n", err)
		return exitError
	}

	config := regexp2.DefaultConfig(backend)
	config.MinimizeDFA = opts.minimize
	re, err := regexp2.CompileWithConfig(pattern, config)
	if err != nil {
		reportCompileError(stderr, pattern, err)
		return exitError
	}
	logger.Debug("compiled",
		"pattern", pattern,
		"backend", backend,
		"strategy", re.Engine().Strategy(),
		"nfa_states", re.Engine().NFA().States(),
	)

	if opts.dot != "" {
		if err := writeDOT(stdout, re, opts); err != nil {
			fmt.Fprintf(stderr, "rx: %v\n", err)
			return exitError
		}
		return exitMatch
	}

	input := stdin
	if fs.NArg() == 2 {
		f, err := os.Open(fs.Arg(1))
		if err != nil {
			fmt.Fprintf(stderr, "rx: %v\n", err)
			return exitError
		}
		defer f.Close()
		input = f
	}

	matched, err := scan(input, stdout, re, opts.mode)
	if err != nil {
		fmt.Fprintf(stderr, "rx: %v\n", err)
		return exitError
	}

	stats := re.Engine().Stats()
	logger.Debug("done",
		"matched_lines", matched,
		"nfa_searches", stats.NFASearches,
		"dfa_searches", stats.DFASearches,
		"lazy_searches", stats.LazyDFASearches,
		"lazy_cache_clears", stats.LazyCacheClears,
		"literal_searches", stats.LiteralSearches,
		"prefilter_candidates", stats.PrefilterCandidates,
		"prefilter_skipped", stats.PrefilterSkipped,
	)

	if matched == 0 {
		return exitNoMatch
	}
	return exitMatch
}

// scan applies re to every line of r and returns the number of lines that
// produced output.
func scan(r io.Reader, w io.Writer, re *regexp2.Regex, mode string) (int, error) {
	out := bufio.NewWriter(w)
	defer out.Flush()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	matched := 0
	for lineno := 1; sc.Scan(); lineno++ {
		line := sc.Text()
		var spans [][]int
		switch mode {
		case "match":
			if re.MatchString(line) {
				fmt.Fprintln(out, line)
				matched++
			}
			continue
		case "find":
			if loc := re.FindStringIndex(line); loc != nil {
				spans = [][]int{loc}
			}
		case "shortest":
			if loc := re.FindShortestIndex(line); loc != nil {
				spans = [][]int{loc}
			}
		case "all":
			spans = re.FindAllStringIndex(line, -1)
		default:
			return matched, fmt.Errorf("unknown mode %q", mode)
		}
		for _, loc := range spans {
			fmt.Fprintf(out, "%d:%d-%d:%s\n", lineno, loc[0], loc[1], line[loc[0]:loc[1]])
		}
		if len(spans) > 0 {
			matched++
		}
	}
	return matched, sc.Err()
}

func writeDOT(w io.Writer, re *regexp2.Regex, opts options) error {
	engine := re.Engine()
	switch opts.dot {
	case "nfa":
		return engine.NFA().WriteDOT(w)
	case "dfa":
		d := engine.DFA()
		if d == nil {
			// NFA backend, or too large for the eager DFA. Build one with
			// the default state limit.
			cfg := dfa.DefaultConfig().WithMinimize(opts.minimize)
			var err error
			if d, err = dfa.Build(engine.NFA(), cfg); err != nil {
				return err
			}
		}
		return d.WriteDOT(w)
	}
	return fmt.Errorf("unknown -dot value %q (want nfa or dfa)", opts.dot)
}

// reportCompileError prints err and, for syntax errors, the pattern with a
// caret under the offending position.
func reportCompileError(w io.Writer, pattern string, err error) {
	fmt.Fprintf(w, "rx: %v\n", err)
	var perr *syntax.ParseError
	if !errors.As(err, &perr) {
		return
	}
	pos := min(max(perr.Pos, 0), len(pattern))
	fmt.Fprintf(w, "  %s\n  %s^\n", pattern, strings.Repeat(" ", utf8.RuneCountInString(pattern[:pos])))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
