package syntax

import "fmt"

// ErrorKind classifies pattern syntax errors.
type ErrorKind uint8

const (
	// UnexpectedEnd indicates the pattern ended where an operand was required
	UnexpectedEnd ErrorKind = iota

	// UnexpectedChar indicates a character that cannot start or continue an expression here
	UnexpectedChar

	// UnclosedGroup indicates a '(' without its matching ')'
	UnclosedGroup

	// UnclosedClass indicates a '[' without its matching ']'
	UnclosedClass

	// InvalidRange indicates a class range whose start is greater than its end
	InvalidRange

	// InvalidEscape indicates an unknown alphanumeric escape such as \q
	InvalidEscape

	// EmptyClass indicates a bracket class with no members, e.g. [] or [^]
	EmptyClass

	// NestingTooDeep indicates groups or quantifiers nested beyond MaxNesting
	NestingTooDeep
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case UnexpectedChar:
		return "UnexpectedChar"
	case UnclosedGroup:
		return "UnclosedGroup"
	case UnclosedClass:
		return "UnclosedClass"
	case InvalidRange:
		return "InvalidRange"
	case InvalidEscape:
		return "InvalidEscape"
	case EmptyClass:
		return "EmptyClass"
	case NestingTooDeep:
		return "NestingTooDeep"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// description returns the message used in ParseError.Error.
func (k ErrorKind) description() string {
	switch k {
	case UnexpectedEnd:
		return "unexpected end of pattern"
	case UnexpectedChar:
		return "unexpected character"
	case UnclosedGroup:
		return "missing closing )"
	case UnclosedClass:
		return "missing closing ]"
	case InvalidRange:
		return "invalid character class range"
	case InvalidEscape:
		return "invalid escape sequence"
	case EmptyClass:
		return "empty character class"
	case NestingTooDeep:
		return "expression nesting too deep"
	default:
		return k.String()
	}
}

// Sentinel errors for use with errors.Is. Only the Kind is compared.
var (
	ErrUnexpectedEnd  = &ParseError{Kind: UnexpectedEnd}
	ErrUnexpectedChar = &ParseError{Kind: UnexpectedChar}
	ErrUnclosedGroup  = &ParseError{Kind: UnclosedGroup}
	ErrUnclosedClass  = &ParseError{Kind: UnclosedClass}
	ErrInvalidRange   = &ParseError{Kind: InvalidRange}
	ErrInvalidEscape  = &ParseError{Kind: InvalidEscape}
	ErrEmptyClass     = &ParseError{Kind: EmptyClass}
	ErrNestingTooDeep = &ParseError{Kind: NestingTooDeep}
)

// ParseError reports the first syntax error found in a pattern.
// Pos is a byte offset into Pattern. For errors caused by the pattern ending
// early (unclosed groups and classes) Pos equals len(Pattern).
type ParseError struct {
	Kind    ErrorKind
	Pos     int
	Pattern string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Pattern == "" && e.Pos == 0 {
		return "regexp2: " + e.Kind.description()
	}
	return fmt.Sprintf("regexp2: %s at position %d in %q", e.Kind.description(), e.Pos, e.Pattern)
}

// Is implements error comparison for errors.Is
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
