package compiler

import (
	"github.com/jacoelho/jpq/internal/jmespath/selector"
	"github.com/jacoelho/jpq/internal/jmespath/value"
)

// parseChain parses one term into fr, then threads any immediately
// following continuations ('.', '|', '[', '{') onto it, folded into the
// term loop rather than kept as a separate re-entrant state.
func (c *Compiler) parseChain(fr *frame) error {
	c.pushState(StateSubExpression)
	defer c.popState()

	if err := c.parseTerm(fr); err != nil {
		return err
	}
	for {
		c.skipSpace()
		if c.eof() {
			return nil
		}
		switch c.peek() {
		case '.':
			c.advance()
			if err := c.parseTerm(fr); err != nil {
				return err
			}
		case '|':
			c.advance()
			c.wrap(fr, selector.Pipe)
			if err := c.parseTerm(fr); err != nil {
				return err
			}
		case '[':
			c.advance()
			if err := c.parseBracketSpecifier(fr); err != nil {
				return err
			}
		case '{':
			c.advance()
			if err := c.parseMultiSelectHash(fr); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// parseTerm parses one primary production into fr.
func (c *Compiler) parseTerm(fr *frame) error {
	c.pushState(StateExpression)
	defer c.popState()

	c.skipSpace()
	if c.eof() {
		return c.errorAt(ErrUnexpectedEndOfInput)
	}

	switch ch := c.peek(); {
	case ch == '"':
		c.advance()
		name, err := c.scanQuotedString()
		if err != nil {
			return err
		}
		ident := selector.New(selector.Identifier)
		ident.Name = name
		fr.sel.AddChild(ident)
		return nil

	case ch == '\'':
		c.advance()
		text, err := c.scanRawStringText()
		if err != nil {
			return err
		}
		lit := selector.New(selector.JSONLiteral)
		lit.Literal = value.FromString(text)
		fr.sel.AddChild(lit)
		return nil

	case ch == '`':
		c.advance()
		text, err := c.scanUntil('`')
		if err != nil {
			return err
		}
		v, err := value.Parse(text)
		if err != nil {
			return c.errorAt(ErrUnidentified)
		}
		lit := selector.New(selector.JSONLiteral)
		lit.Literal = v
		fr.sel.AddChild(lit)
		return nil

	case ch == '[':
		c.advance()
		return c.parseBracketSpecifier(fr)

	case ch == '{':
		c.advance()
		return c.parseMultiSelectHash(fr)

	case ch == '*':
		c.advance()
		c.wrap(fr, selector.ObjectProjection)
		return nil

	case ch == '&':
		// Expression-reference argument (e.g. sort_by's &key_expr): the
		// leading '&' only defers evaluation, which in this evaluator's
		// tree-walking design is already how every selector behaves, so
		// parsing just skips past it to the underlying expression.
		c.advance()
		return c.parseTerm(fr)

	case isIdentStart(ch):
		name := c.scanUnquotedIdent()
		return c.parseIdentifierOrFunction(fr, name)

	case isDigit(ch) || ch == '-':
		// Bare numeric literal as a function argument (e.g. the "1" in
		// xyz(1)); the grammar otherwise only admits numbers inside
		// backtick json values, but function call sites accept them
		// unadorned too.
		n, err := c.scanInt()
		if err != nil {
			return err
		}
		lit := selector.New(selector.JSONLiteral)
		lit.Literal = value.FromInt(n)
		fr.sel.AddChild(lit)
		return nil

	default:
		return c.errorAt(ErrExpectedIdentifier)
	}
}

// parseIdentifierOrFunction resolves name either as a plain field access or,
// if immediately followed by '(', as a function call. The function-name
// lookup is deferred to the closing ')' rather than performed here, so that
// an unterminated call ("foo(") reports unexpected_end_of_input instead of
// function_name_not_found.
func (c *Compiler) parseIdentifierOrFunction(fr *frame, name string) error {
	if !c.eof() && c.peek() == '(' {
		c.advance()
		c.pushState(StateIdentifierOrFunction)
		defer c.popState()

		pos := c.K.Size()
		c.offsets.Push(pos)

		fnSel := selector.New(selector.Function)
		fnSel.Fn = selector.FuncUnknown
		fnSel.Name = name
		fr.sel = fnSel

		argFrame := newFrame(selector.SubExpression)
		c.K.Push(argFrame)

		return c.parseArgs(argFrame, fr, pos)
	}

	ident := selector.New(selector.Identifier)
	ident.Name = name
	fr.sel.AddChild(ident)
	return nil
}

// parseArgs reads comma-separated argument expressions until ')' (spec
// §4.3.4 arg_or_right_paren).
func (c *Compiler) parseArgs(argFrame *frame, fnFrame *frame, pos int) error {
	c.pushState(StateArgOrRightParen)
	defer c.popState()

	for {
		c.skipSpace()
		if err := c.parseChain(argFrame); err != nil {
			return err
		}
		c.skipSpace()
		if c.eof() {
			return c.errorAt(ErrUnexpectedEndOfInput)
		}
		switch c.peek() {
		case ',':
			c.advance()
			c.skipSpace()
			argFrame = newFrame(selector.SubExpression)
			c.K.Push(argFrame)
		case ')':
			c.advance()
			return c.closeArgs(pos, fnFrame)
		default:
			return c.errorAt(ErrExpectedRightBracket)
		}
	}
}

func (c *Compiler) closeArgs(pos int, fnFrame *frame) error {
	c.offsets.Pop()
	var args []*selector.Selector
	for c.K.Size() > pos {
		leaf, _ := c.K.Pop()
		args = append(args, leaf.sel)
	}
	reverseSelectors(args)

	fnID, ok := c.funcs[fnFrame.sel.Name]
	if !ok {
		return c.errorAt(ErrFunctionNameNotFound)
	}
	fnFrame.sel.Fn = fnID
	for _, a := range args {
		fnFrame.sel.AddChild(a)
	}
	return nil
}

// parseBracketSpecifier dispatches on the character right after '[' (spec
// §4.3.5).
func (c *Compiler) parseBracketSpecifier(fr *frame) error {
	c.pushState(StateBracketSpecifier)
	defer c.popState()

	if c.eof() {
		return c.errorAt(ErrUnexpectedEndOfInput)
	}

	switch ch := c.peek(); {
	case ch == '*':
		c.advance()
		c.wrap(fr, selector.ListProjection)
		c.skipSpace()
		if c.eof() || c.peek() != ']' {
			return c.errorAt(ErrExpectedRightBracket)
		}
		c.advance()
		return nil

	case ch == ']':
		c.advance()
		c.wrap(fr, selector.FlattenProjection)
		return nil

	case ch == '?':
		c.advance()
		return c.parseFilter(fr)

	case ch == ':' || ch == '-' || isDigit(ch):
		return c.parseSliceOrIndex(fr)

	default:
		return c.parseMultiSelectList(fr)
	}
}

// parseSliceOrIndex handles a bracket specifier's index and slice forms,
// consolidated into one function since they differ only in which bound is
// being accumulated.
func (c *Compiler) parseSliceOrIndex(fr *frame) error {
	var start int64
	if ch := c.peek(); ch == '-' || isDigit(ch) {
		n, err := c.scanInt()
		if err != nil {
			return err
		}
		start = n
		c.skipSpace()
		if !c.eof() && c.peek() == ']' {
			c.advance()
			idx := selector.New(selector.Index)
			idx.Idx = start
			fr.sel.AddChild(idx)
			return nil
		}
	}

	if c.eof() || c.peek() != ':' {
		return c.errorAt(ErrExpectedRightBracket)
	}
	c.advance()

	sl := selector.Slice{Start: start, Step: 1}
	c.skipSpace()
	if !c.eof() && c.peek() != ':' && c.peek() != ']' {
		n, err := c.scanInt()
		if err != nil {
			return err
		}
		sl.End = &n
		c.skipSpace()
	}
	if !c.eof() && c.peek() == ':' {
		c.advance()
		c.skipSpace()
		if !c.eof() && c.peek() != ']' {
			n, err := c.scanInt()
			if err != nil {
				return err
			}
			sl.Step = n
		}
	}

	c.skipSpace()
	if c.eof() || c.peek() != ']' {
		return c.errorAt(ErrExpectedRightBracket)
	}
	c.advance()

	s := selector.New(selector.SliceSelector)
	s.Slice = sl
	fr.sel.AddChild(s)
	return nil
}

// parseFilter handles "[? lhs CMP rhs ]".
func (c *Compiler) parseFilter(fr *frame) error {
	c.pushState(StateComparator)
	defer c.popState()

	pos := c.K.Size()
	c.offsets.Push(pos)
	inner := newFrame(selector.SubExpression)
	c.K.Push(inner)

	c.skipSpace()
	if err := c.parseChain(inner); err != nil {
		return err
	}
	c.skipSpace()
	cmp, err := c.scanComparator()
	if err != nil {
		return err
	}
	filterSel := c.wrap(inner, selector.Filter)
	filterSel.Cmp = cmp

	c.skipSpace()
	if err := c.parseChain(inner); err != nil {
		return err
	}
	c.skipSpace()
	if c.eof() || c.peek() != ']' {
		return c.errorAt(ErrExpectedRightBracket)
	}
	c.advance()

	return c.closeFilter(pos)
}

func (c *Compiler) closeFilter(pos int) error {
	c.offsets.Pop()
	for c.K.Size() > pos+1 {
		leaf, _ := c.K.Pop()
		parent := *c.K.PeekRef()
		parent.sel.AddChild(leaf.sel)
	}
	inner := *c.K.PeekRef()
	c.K.Pop()
	outer := *c.K.PeekRef()

	newTop := selector.New(selector.SubExpression)
	newTop.AddChild(outer.sel)
	newTop.AddChild(inner.sel)
	outer.sel = newTop
	return nil
}

// parseMultiSelectList handles "[e1, e2, ...]".
func (c *Compiler) parseMultiSelectList(fr *frame) error {
	c.pushState(StateExpectRightBracket4)
	defer c.popState()

	pos := c.K.Size()
	c.offsets.Push(pos)
	item := newFrame(selector.SubExpression)
	c.K.Push(item)

	for {
		c.skipSpace()
		if err := c.parseChain(item); err != nil {
			return err
		}
		c.skipSpace()
		if c.eof() {
			return c.errorAt(ErrUnexpectedEndOfInput)
		}
		switch c.peek() {
		case ',':
			c.advance()
			c.skipSpace()
			item = newFrame(selector.SubExpression)
			c.K.Push(item)
		case ']':
			c.advance()
			return c.closeMultiSelectList(pos, fr)
		default:
			return c.errorAt(ErrExpectedRightBracket)
		}
	}
}

func (c *Compiler) closeMultiSelectList(pos int, fr *frame) error {
	c.offsets.Pop()
	var items []*selector.Selector
	for c.K.Size() > pos {
		leaf, _ := c.K.Pop()
		items = append(items, leaf.sel)
	}
	reverseSelectors(items)

	msl := selector.New(selector.MultiSelectList)
	for _, it := range items {
		msl.AddChild(it)
	}
	fr.sel.AddChild(msl)
	return nil
}

// parseMultiSelectHash handles "{k1: e1, k2: e2, ...}".
func (c *Compiler) parseMultiSelectHash(fr *frame) error {
	c.pushState(StateMultiSelectHash)
	defer c.popState()

	pos := c.K.Size()
	c.offsets.Push(pos)

	for {
		c.skipSpace()
		key, err := c.scanHashKey()
		if err != nil {
			return err
		}
		c.skipSpace()
		if c.eof() || c.peek() != ':' {
			return c.errorAt(ErrExpectedColon)
		}
		c.advance()
		c.skipSpace()

		entry := newFrame(selector.SubExpression)
		entry.key = key
		c.K.Push(entry)

		if err := c.parseChain(entry); err != nil {
			return err
		}
		c.skipSpace()
		if c.eof() {
			return c.errorAt(ErrUnexpectedEndOfInput)
		}
		switch c.peek() {
		case ',':
			c.advance()
		case '}':
			c.advance()
			return c.closeMultiSelectHash(pos, fr)
		default:
			return c.errorAt(ErrExpectedRightBrace)
		}
	}
}

func (c *Compiler) closeMultiSelectHash(pos int, fr *frame) error {
	c.offsets.Pop()
	var entries []selector.HashEntry
	for c.K.Size() > pos {
		leaf, _ := c.K.Pop()
		entries = append(entries, selector.HashEntry{Key: leaf.key, Value: leaf.sel})
	}
	reverseEntries(entries)

	msh := selector.New(selector.MultiSelectHash)
	msh.Entries = entries
	fr.sel.AddChild(msh)
	return nil
}
