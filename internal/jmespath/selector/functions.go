package selector

import (
	"sort"

	"github.com/jacoelho/jpq/internal/jmespath/value"
)

// evalFunction dispatches to a registered built-in. Arity and argument-type
// violations are reported as errors, unlike navigation mismatches elsewhere
// in the evaluator, which collapse to null.
func evalFunction(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	switch sel.Fn {
	case FuncSortBy:
		return evalSortBy(ctx, sel, input)
	default:
		return null(), invalidArgument("unknown function %q", sel.Name)
	}
}

// evalSortBy implements sort_by(array, &key_expr): stable-sort a clone of
// the array by comparing key_expr(a) against key_expr(b) with value.Compare's
// total order. The source's comparator is not restricted to numbers and this
// follows it rather than the stricter canonical JMESPath definition (see
// DESIGN.md).
func evalSortBy(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	if len(sel.Args) != 2 {
		return null(), invalidArgument("sort_by requires exactly 2 arguments, got %d", len(sel.Args))
	}

	arr, err := Evaluate(ctx, sel.Args[0], input)
	if err != nil {
		return null(), err
	}
	if arr.Kind() != value.Array {
		return null(), invalidArgument("sort_by: first argument must be an array")
	}

	keyExpr := sel.Args[1]
	items := arr.Items()

	keys := make([]value.Value, len(items))
	for i, item := range items {
		k, err := Evaluate(ctx, keyExpr, item)
		if err != nil {
			return null(), err
		}
		keys[i] = k
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return value.Compare(keys[order[i]], keys[order[j]]) < 0
	})

	out := make([]value.Value, len(items))
	for i, idx := range order {
		out[i] = items[idx]
	}

	return ctx.alloc(value.FromArray(out)), nil
}
