package selector

import "github.com/jacoelho/jpq/internal/jmespath/value"

// evalFilter keeps the elements of input for which Lhs compares true
// against Rhs (the comparator's right-hand operand, evaluated per
// element). Chaining after the closing ']', e.g. the ".k" in
// "xs[?k > `1`].k", is not this selector's concern: the compiler folds a
// filter's surrounding context into a SubExpression sibling, so the
// trailing identifier projects over Filter's array result on its own.
func evalFilter(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	if input.Kind() != value.Array {
		return null(), nil
	}

	var out []value.Value
	for _, item := range input.Items() {
		left, err := Evaluate(ctx, sel.Lhs, item)
		if err != nil {
			return null(), err
		}
		right, err := evalSequence(ctx, sel.Rhs, item)
		if err != nil {
			return null(), err
		}

		ok, defined := compare(sel.Cmp, left, right)
		if !defined || !ok {
			continue
		}
		out = append(out, item)
	}
	return ctx.alloc(value.FromArray(out)), nil
}

// compare evaluates a single comparator. Eq/Ne are always defined over
// arbitrary values (deep structural equality). The ordering comparators are
// defined only when both operands are numbers.
func compare(c Cmp, l, r value.Value) (result bool, defined bool) {
	switch c {
	case CmpEq:
		return value.Equal(l, r), true
	case CmpNe:
		return !value.Equal(l, r), true
	case CmpLt:
		less, ok := value.NumericLess(l, r)
		return less, ok
	case CmpLe:
		less, ok := value.NumericLess(l, r)
		if !ok {
			return false, false
		}
		return less || value.Equal(l, r), true
	case CmpGt:
		less, ok := value.NumericLess(r, l)
		return less, ok
	case CmpGe:
		less, ok := value.NumericLess(r, l)
		if !ok {
			return false, false
		}
		return less || value.Equal(l, r), true
	default:
		return false, false
	}
}
