// Package compat cross-checks the navigational subset of JMESPath (field
// access, indices, and bare wildcards) against RFC 9535 JSONPath by
// translating a compiled selector tree into an equivalent JSONPath string
// and running it through theory/jsonpath.
package compat

import (
	"fmt"
	"strings"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/jpq/internal/jmespath/compiler"
	"github.com/jacoelho/jpq/internal/jmespath/selector"
	"github.com/jacoelho/jpq/internal/jmespath/value"
)

// Translate walks sel and, if it only uses the constructs that overlap
// with JSONPath's navigational semantics (SubExpression, Identifier,
// Index, and a bare ListProjection/ObjectProjection/FlattenProjection with
// nothing chained after it, each rendered as "[*]"), emits an equivalent
// JSONPath string. It returns false for
// filters, pipes, multi-select, and function calls, none of which have a
// direct JSONPath equivalent.
func Translate(sel *selector.Selector) (string, bool) {
	var b strings.Builder
	b.WriteByte('$')
	if !translate(sel, &b) {
		return "", false
	}
	return b.String(), true
}

func translate(sel *selector.Selector, b *strings.Builder) bool {
	if sel == nil {
		return true
	}
	switch sel.Kind {
	case selector.SubExpression:
		for _, c := range sel.Children {
			if !translate(c, b) {
				return false
			}
		}
		return true
	case selector.Identifier:
		b.WriteByte('.')
		b.WriteString(sel.Name)
		return true
	case selector.Index:
		fmt.Fprintf(b, "[%d]", sel.Idx)
		return true
	case selector.ListProjection, selector.ObjectProjection, selector.FlattenProjection:
		if len(sel.Rhs) != 0 {
			return false
		}
		if !translate(sel.Lhs, b) {
			return false
		}
		b.WriteString("[*]")
		return true
	default:
		return false
	}
}

// Verify compiles expr, translates it to JSONPath, and, only when
// translation succeeds, evaluates both expr and the translated JSONPath
// against root, reporting whether the two engines agree.
func Verify(root value.Value, expr string) (agree bool, err error) {
	sel, err := compiler.Compile(expr)
	if err != nil {
		return false, fmt.Errorf("compile %q: %w", expr, err)
	}

	path, ok := Translate(sel)
	if !ok {
		return false, fmt.Errorf("expression %q has no JSONPath-comparable subset", expr)
	}

	ctx := selector.NewContext()
	want, err := selector.Evaluate(ctx, sel, root)
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", expr, err)
	}

	compiled, err := jsonpath.Parse(path)
	if err != nil {
		return false, fmt.Errorf("parse jsonpath %q: %w", path, err)
	}

	got := compiled.Select(toAny(root))

	return resultsAgree(want, got), nil
}

// resultsAgree compares JMESPath's single Value result against JSONPath's
// []any match list: JSONPath has no projection collapsing, so a JMESPath
// projection result (an array) is compared element-wise against the match
// list, while a scalar/object result is compared against the sole match.
func resultsAgree(want value.Value, got []any) bool {
	if want.IsArray() {
		items := want.Items()
		if len(items) != len(got) {
			return false
		}
		for i, item := range items {
			if !value.Equal(item, fromAny(got[i])) {
				return false
			}
		}
		return true
	}
	if want.IsNull() {
		return len(got) == 0
	}
	if len(got) != 1 {
		return false
	}
	return value.Equal(want, fromAny(got[0]))
}

func toAny(v value.Value) any {
	switch v.Kind() {
	case value.Null:
		return nil
	case value.Bool:
		return v.Bool()
	case value.Number:
		if v.NumKind() == value.Int {
			return v.Int64()
		}
		return v.Float64()
	case value.String:
		return v.String()
	case value.Array:
		items := v.Items()
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = toAny(it)
		}
		return out
	case value.Object:
		out := make(map[string]any, v.Object().Len())
		v.Object().Range(func(k string, vv value.Value) bool {
			out[k] = toAny(vv)
			return true
		})
		return out
	default:
		return nil
	}
}

func fromAny(in any) value.Value {
	switch t := in.(type) {
	case nil:
		return value.NullValue
	case bool:
		return value.FromBool(t)
	case string:
		return value.FromString(t)
	case int:
		return value.FromInt(int64(t))
	case int64:
		return value.FromInt(t)
	case float64:
		return value.FromFloat(t)
	case []any:
		items := make([]value.Value, len(t))
		for i, it := range t {
			items[i] = fromAny(it)
		}
		return value.FromArray(items)
	case map[string]any:
		obj := value.NewObject()
		for k, vv := range t {
			obj.Set(k, fromAny(vv))
		}
		return value.FromObject(obj)
	default:
		return value.FromString(fmt.Sprintf("%v", t))
	}
}
