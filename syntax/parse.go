package syntax

import "unicode/utf8"

// MaxNesting bounds how deeply groups and stacked quantifiers may nest.
// Later compilation stages recurse over the tree, so very deep patterns are
// rejected up front with NestingTooDeep.
const MaxNesting = 1000

// Parse parses a pattern and returns the root of its syntax tree.
// The empty pattern is valid and yields an OpEmpty node.
func Parse(pattern string) (*Node, error) {
	p := &parser{pattern: pattern}
	if pattern == "" {
		return &Node{Op: OpEmpty}, nil
	}
	root, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		// Only a stray ')' can stop a top-level union early.
		return nil, p.errorf(UnexpectedChar, p.pos)
	}
	return root, nil
}

type parser struct {
	pattern string
	pos     int
	depth   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.pattern)
}

// peek returns the next rune and its width without consuming it.
func (p *parser) peek() (rune, int) {
	c := p.pattern[p.pos]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(p.pattern[p.pos:])
}

// next consumes and returns the next rune.
func (p *parser) next() rune {
	r, w := p.peek()
	p.pos += w
	return r
}

func (p *parser) errorf(kind ErrorKind, pos int) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Pattern: p.pattern}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxNesting {
		return p.errorf(NestingTooDeep, p.pos)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseUnion parses concat ('|' concat)*.
func (p *parser) parseUnion() (*Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for !p.eof() && p.pattern[p.pos] == '|' {
		p.pos++
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &Node{
			Op:    OpUnion,
			Left:  left,
			Right: right,
			Pos:   Pos{Begin: left.Pos.Begin, End: right.Pos.End},
		}
	}
	return left, nil
}

// parseConcat parses one or more repeat expressions. An empty operand is an
// error: at the end of input it is UnexpectedEnd (or UnclosedGroup inside a
// group), otherwise the offending '|' or ')' is UnexpectedChar.
func (p *parser) parseConcat() (*Node, error) {
	var result *Node
	for !p.eof() {
		c := p.pattern[p.pos]
		if c == '|' || c == ')' {
			break
		}
		item, err := p.parseRepeat()
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = item
			continue
		}
		result = &Node{
			Op:    OpConcat,
			Left:  result,
			Right: item,
			Pos:   Pos{Begin: result.Pos.Begin, End: item.Pos.End},
		}
	}
	if result != nil {
		return result, nil
	}
	if !p.eof() {
		return nil, p.errorf(UnexpectedChar, p.pos)
	}
	if p.depth > 0 {
		return nil, p.errorf(UnclosedGroup, p.pos)
	}
	return nil, p.errorf(UnexpectedEnd, p.pos)
}

// parseRepeat parses an atom followed by any number of postfix quantifiers.
func (p *parser) parseRepeat() (*Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	stacked := 0
	for !p.eof() {
		var op Op
		switch p.pattern[p.pos] {
		case '*':
			op = OpStar
		case '+':
			op = OpPlus
		case '?':
			op = OpOptional
		default:
			return atom, nil
		}
		stacked++
		if p.depth+stacked > MaxNesting {
			return nil, p.errorf(NestingTooDeep, p.pos)
		}
		p.pos++
		atom = &Node{Op: op, Sub: atom, Pos: Pos{Begin: atom.Pos.Begin, End: p.pos}}
	}
	return atom, nil
}

func (p *parser) parseAtom() (*Node, error) {
	start := p.pos
	switch p.pattern[p.pos] {
	case '(':
		return p.parseGroup()
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		return &Node{Op: OpAnyChar, Pos: Pos{Begin: start, End: p.pos}}, nil
	case '\\':
		return p.parseEscape()
	case '*', '+', '?':
		return nil, p.errorf(UnexpectedChar, p.pos)
	}
	r := p.next()
	return &Node{Op: OpLiteral, Rune: r, Pos: Pos{Begin: start, End: p.pos}}, nil
}

func (p *parser) parseGroup() (*Node, error) {
	start := p.pos
	p.pos++ // '('
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var sub *Node
	if !p.eof() && p.pattern[p.pos] == ')' {
		sub = &Node{Op: OpEmpty, Pos: Pos{Begin: p.pos, End: p.pos}}
	} else {
		var err error
		if sub, err = p.parseUnion(); err != nil {
			return nil, err
		}
	}
	if p.eof() {
		return nil, p.errorf(UnclosedGroup, p.pos)
	}
	p.pos++ // ')'
	return &Node{Op: OpGroup, Sub: sub, Pos: Pos{Begin: start, End: p.pos}}, nil
}

// parseEscape parses a backslash sequence outside a bracket class.
func (p *parser) parseEscape() (*Node, error) {
	start := p.pos
	p.pos++ // '\\'
	if p.eof() {
		return nil, p.errorf(UnexpectedEnd, p.pos)
	}
	c := p.next()
	if class, ok := Shorthand(c); ok {
		return &Node{Op: OpCharClass, Class: class, Pos: Pos{Begin: start, End: p.pos}}, nil
	}
	r, ok := escapedRune(c)
	if !ok {
		return nil, p.errorf(InvalidEscape, start)
	}
	return &Node{Op: OpLiteral, Rune: r, Pos: Pos{Begin: start, End: p.pos}}, nil
}

// escapedRune resolves a non-shorthand escape. Named control escapes map to
// their control character, ASCII letters and digits are reserved, and any
// other rune stands for itself.
func escapedRune(c rune) (rune, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	}
	if c < utf8.RuneSelf && isAlnum(byte(c)) {
		return 0, false
	}
	return c, true
}

func isAlnum(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// parseClass parses a bracket expression. A leading '^' negates the class.
// Inside the brackets '[' and a '^' that is not first are literal, a '-'
// that cannot form a range is literal, and shorthands contribute their
// members.
func (p *parser) parseClass() (*Node, error) {
	start := p.pos
	p.pos++ // '['
	negated := false
	if !p.eof() && p.pattern[p.pos] == '^' {
		negated = true
		p.pos++
	}
	if !p.eof() && p.pattern[p.pos] == ']' {
		return nil, p.errorf(EmptyClass, p.pos)
	}

	var ranges []Range
	for {
		if p.eof() {
			return nil, p.errorf(UnclosedClass, p.pos)
		}
		if p.pattern[p.pos] == ']' {
			p.pos++
			break
		}
		itemStart := p.pos
		lo, members, err := p.parseClassItem()
		if err != nil {
			return nil, err
		}
		if members != nil {
			ranges = append(ranges, members...)
			continue
		}
		if !p.isRangeDash() {
			ranges = append(ranges, Range{Lo: lo, Hi: lo})
			continue
		}
		p.pos++ // '-'
		hi, members, err := p.parseClassItem()
		if err != nil {
			return nil, err
		}
		if members != nil || lo > hi {
			return nil, p.errorf(InvalidRange, itemStart)
		}
		ranges = append(ranges, Range{Lo: lo, Hi: hi})
	}

	class := NewCharClass(ranges, negated)
	return &Node{Op: OpCharClass, Class: class, Pos: Pos{Begin: start, End: p.pos}}, nil
}

// isRangeDash reports whether the input is at a '-' that joins two class
// items. A '-' followed by ']' or by the end of input is literal.
func (p *parser) isRangeDash() bool {
	if p.pos+1 >= len(p.pattern) || p.pattern[p.pos] != '-' {
		return false
	}
	return p.pattern[p.pos+1] != ']'
}

// parseClassItem parses a single rune or escape inside a class. Shorthand
// escapes return their member ranges instead of a rune.
func (p *parser) parseClassItem() (rune, []Range, error) {
	if p.pattern[p.pos] != '\\' {
		return p.next(), nil, nil
	}
	start := p.pos
	p.pos++
	if p.eof() {
		return 0, nil, p.errorf(UnclosedClass, p.pos)
	}
	c := p.next()
	if members := shorthandMembers(c); members != nil {
		return 0, members, nil
	}
	r, ok := escapedRune(c)
	if !ok {
		return 0, nil, p.errorf(InvalidEscape, start)
	}
	return r, nil, nil
}
