// Package compiler implements the hand-written pushdown parser that turns a
// JMESPath expression string into a selector.Selector tree.
//
// The parser maintains three stacks: a state stack (here mirrored for
// introspection while the call stack drives control flow), a selector stack
// K of frame values that get rewritten in place as postfix operators are
// recognized, and a structure offset stack marking the base K index of each
// open bracket/brace/paren group.
package compiler

import (
	"strconv"
	"strings"

	"github.com/jacoelho/jpq/internal/jmespath/selector"
	"github.com/jacoelho/jpq/internal/stack"
)

// Compiler holds the mutable state of one compilation pass. It is not
// reused across expressions.
type Compiler struct {
	runes []rune
	pos   int
	line  int
	col   int

	states  *stack.Stack[State]
	K       *stack.Stack[*frame]
	offsets *stack.Stack[int]

	funcs map[string]selector.FuncID
}

func newCompiler(expr string) *Compiler {
	return &Compiler{
		runes:   []rune(expr),
		line:    1,
		col:     1,
		states:  stack.New[State](),
		K:       stack.New[*frame](),
		offsets: stack.NewWithCapacity[int](4),
		funcs: map[string]selector.FuncID{
			"sort_by": selector.FuncSortBy,
		},
	}
}

// Compile parses expr and returns its root selector tree.
func Compile(expr string) (*selector.Selector, error) {
	c := newCompiler(expr)

	root := newFrame(selector.SubExpression)
	c.K.Push(root)

	c.pushState(StateStart)
	c.pushState(StateSubExpression)

	c.skipSpace()
	if c.eof() {
		return nil, c.errorAt(ErrUnexpectedEndOfInput)
	}
	if err := c.parseChain(root); err != nil {
		return nil, err
	}
	c.popState() // sub_expression
	c.popState() // start

	c.skipSpace()
	if !c.eof() {
		return nil, c.errorAt(ErrUnidentified)
	}
	if c.K.Size() != 1 || !c.states.IsEmpty() {
		return nil, c.errorAt(ErrUnexpectedEndOfInput)
	}
	if !c.offsets.IsEmpty() {
		return nil, c.errorAt(ErrUnexpectedEndOfInput)
	}
	return root.sel, nil
}

func (c *Compiler) pushState(s State) { c.states.Push(s) }
func (c *Compiler) popState()         { c.states.Pop() }

// --- cursor primitives ---

func (c *Compiler) eof() bool { return c.pos >= len(c.runes) }

func (c *Compiler) peek() rune { return c.runes[c.pos] }

func (c *Compiler) advance() rune {
	r := c.runes[c.pos]
	c.pos++
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r
}

func (c *Compiler) skipSpace() {
	for !c.eof() {
		switch c.peek() {
		case ' ', '\t', '\n', '\r':
			c.advance()
		default:
			return
		}
	}
}

func (c *Compiler) errorAt(code string) *ParseError {
	return &ParseError{Code: code, Line: c.line, Column: c.col}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// --- lexical scanners ---

// scanUnquotedIdent assumes the caller already confirmed the current rune
// satisfies isIdentStart.
func (c *Compiler) scanUnquotedIdent() string {
	var b strings.Builder
	for !c.eof() && isIdentChar(c.peek()) {
		b.WriteRune(c.advance())
	}
	return b.String()
}

// scanInt reads an optionally negative run of digits.
func (c *Compiler) scanInt() (int64, error) {
	start := c.pos
	if !c.eof() && c.peek() == '-' {
		c.advance()
	}
	digitsStart := c.pos
	for !c.eof() && isDigit(c.peek()) {
		c.advance()
	}
	if c.pos == digitsStart {
		return 0, c.errorAt(ErrInvalidNumber)
	}
	n, err := strconv.ParseInt(string(c.runes[start:c.pos]), 10, 64)
	if err != nil {
		return 0, c.errorAt(ErrInvalidNumber)
	}
	return n, nil
}

// scanQuotedString accumulates until an unescaped '"', honoring "\X" as the
// literal character X. This is not full JSON string unescaping.
func (c *Compiler) scanQuotedString() (string, error) {
	var b strings.Builder
	for {
		if c.eof() {
			return "", c.errorAt(ErrUnexpectedEndOfInput)
		}
		r := c.advance()
		if r == '\\' {
			if c.eof() {
				return "", c.errorAt(ErrUnexpectedEndOfInput)
			}
			b.WriteRune(c.advance())
			continue
		}
		if r == '"' {
			return b.String(), nil
		}
		b.WriteRune(r)
	}
}

// scanRawStringText reads a '...' raw string; '\' consumes and skips the
// next character verbatim.
func (c *Compiler) scanRawStringText() (string, error) {
	var b strings.Builder
	for {
		if c.eof() {
			return "", c.errorAt(ErrUnexpectedEndOfInput)
		}
		r := c.advance()
		if r == '\\' {
			if c.eof() {
				return "", c.errorAt(ErrUnexpectedEndOfInput)
			}
			b.WriteRune(c.advance())
			continue
		}
		if r == '\'' {
			return b.String(), nil
		}
		b.WriteRune(r)
	}
}

// scanUntil reads verbatim until the terminator rune, used for `json value`
// literals.
func (c *Compiler) scanUntil(terminator rune) (string, error) {
	var b strings.Builder
	for {
		if c.eof() {
			return "", c.errorAt(ErrUnexpectedEndOfInput)
		}
		r := c.advance()
		if r == terminator {
			return b.String(), nil
		}
		b.WriteRune(r)
	}
}

// scanComparator reads one of the six filter comparators.
func (c *Compiler) scanComparator() (selector.Cmp, error) {
	if c.eof() {
		return 0, c.errorAt(ErrExpectedComparator)
	}
	switch c.advance() {
	case '<':
		if !c.eof() && c.peek() == '=' {
			c.advance()
			return selector.CmpLe, nil
		}
		return selector.CmpLt, nil
	case '>':
		if !c.eof() && c.peek() == '=' {
			c.advance()
			return selector.CmpGe, nil
		}
		return selector.CmpGt, nil
	case '=':
		if c.eof() || c.peek() != '=' {
			return 0, c.errorAt(ErrExpectedComparator)
		}
		c.advance()
		return selector.CmpEq, nil
	case '!':
		if c.eof() || c.peek() != '=' {
			return 0, c.errorAt(ErrExpectedComparator)
		}
		c.advance()
		return selector.CmpNe, nil
	default:
		return 0, c.errorAt(ErrExpectedComparator)
	}
}

// scanHashKey accepts a quoted, raw, or unquoted key.
func (c *Compiler) scanHashKey() (string, error) {
	if c.eof() {
		return "", c.errorAt(ErrExpectedKey)
	}
	switch ch := c.peek(); {
	case ch == '"':
		c.advance()
		return c.scanQuotedString()
	case ch == '\'':
		c.advance()
		return c.scanRawStringText()
	case isIdentStart(ch):
		return c.scanUnquotedIdent(), nil
	default:
		return "", c.errorAt(ErrExpectedKey)
	}
}

// wrap rewrites fr's selector in place to be kind, with the previous
// selector as its Lhs. This is the central frame-rewriting operation used
// by object/list/flatten projections, pipe, and filter.
func (c *Compiler) wrap(fr *frame, kind selector.Kind) *selector.Selector {
	inner := fr.sel
	wrapped := selector.New(kind)
	wrapped.Lhs = inner
	fr.sel = wrapped
	return wrapped
}

func reverseSelectors(s []*selector.Selector) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseEntries(s []selector.HashEntry) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

