package jmespath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/jpq/internal/jmespath/selector"
	"github.com/jacoelho/jpq/internal/jmespath/value"
)

func ast(s *selector.Selector) string {
	var b strings.Builder
	writeAST(&b, s)
	return b.String()
}

func writeAST(b *strings.Builder, s *selector.Selector) {
	if s == nil {
		b.WriteString("nil")
		return
	}

	b.WriteByte('(')
	b.WriteString(s.Kind.String())

	switch s.Kind {
	case selector.Identifier:
		fmt.Fprintf(b, " %q", s.Name)
	case selector.Index:
		fmt.Fprintf(b, " %d", s.Idx)
	case selector.SliceSelector:
		fmt.Fprintf(b, " %d", s.Slice.Start)
		if s.Slice.End != nil {
			fmt.Fprintf(b, " %d", *s.Slice.End)
		} else {
			b.WriteString(" nil")
		}
		fmt.Fprintf(b, " %d", s.Slice.Step)
	case selector.Function:
		fmt.Fprintf(b, " %q", s.Name)
	case selector.Filter:
		fmt.Fprintf(b, " %s", s.Cmp)
	case selector.JSONLiteral:
		b.WriteByte(' ')
		b.WriteString(literalString(s.Literal))
	}

	for _, c := range s.Children {
		b.WriteByte(' ')
		writeAST(b, c)
	}
	if s.Lhs != nil {
		b.WriteByte(' ')
		writeAST(b, s.Lhs)
	}
	for _, c := range s.Rhs {
		b.WriteByte(' ')
		writeAST(b, c)
	}
	for _, a := range s.Args {
		b.WriteByte(' ')
		writeAST(b, a)
	}
	for _, e := range s.Entries {
		fmt.Fprintf(b, " (%s ", e.Key)
		writeAST(b, e.Value)
		b.WriteByte(')')
	}

	b.WriteByte(')')
}

// literalString renders a JSONLiteral's payload so --ast shows the value a
// backtick or raw-string literal actually holds, not just its kind.
func literalString(v value.Value) string {
	switch v.Kind() {
	case value.Null:
		return "null"
	case value.Bool:
		return strconv.FormatBool(v.Bool())
	case value.Number:
		if v.NumKind() == value.Int {
			return strconv.FormatInt(v.Int64(), 10)
		}
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case value.String:
		return strconv.Quote(v.String())
	case value.Array:
		var b strings.Builder
		b.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(literalString(item))
		}
		b.WriteByte(']')
		return b.String()
	case value.Object:
		var b strings.Builder
		b.WriteByte('{')
		first := true
		v.Object().Range(func(key string, item value.Value) bool {
			if !first {
				b.WriteByte(' ')
			}
			first = false
			fmt.Fprintf(&b, "%s: %s", key, literalString(item))
			return true
		})
		b.WriteByte('}')
		return b.String()
	default:
		return "?"
	}
}
