package selector

import "github.com/jacoelho/jpq/internal/jmespath/value"

func evalListProjection(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	lhs, err := Evaluate(ctx, sel.Lhs, input)
	if err != nil {
		return null(), err
	}
	if lhs.Kind() != value.Array {
		return null(), nil
	}
	return projectElements(ctx, sel.Rhs, lhs.Items())
}

func evalObjectProjection(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	lhs, err := Evaluate(ctx, sel.Lhs, input)
	if err != nil {
		return null(), err
	}
	if lhs.Kind() != value.Object {
		return null(), nil
	}
	var items []value.Value
	lhs.Object().Range(func(_ string, v value.Value) bool {
		items = append(items, v)
		return true
	})
	return projectElements(ctx, sel.Rhs, items)
}

func evalFlattenProjection(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	lhs, err := Evaluate(ctx, sel.Lhs, input)
	if err != nil {
		return null(), err
	}
	if lhs.Kind() != value.Array {
		return null(), nil
	}
	var flattened []value.Value
	for _, item := range lhs.Items() {
		if item.Kind() == value.Array {
			flattened = append(flattened, item.Items()...)
		} else {
			flattened = append(flattened, item)
		}
	}
	return projectElements(ctx, sel.Rhs, flattened)
}

// projectElements applies rhs to each element of items, dropping results
// that evaluate to null.
func projectElements(ctx *Context, rhs []*Selector, items []value.Value) (value.Value, error) {
	var out []value.Value
	for _, item := range items {
		v, err := evalSequence(ctx, rhs, item)
		if err != nil {
			return null(), err
		}
		if !v.IsNull() {
			out = append(out, v)
		}
	}
	return ctx.alloc(value.FromArray(out)), nil
}

// evalPipe collapses a non-array LHS to null; otherwise the whole LHS value
// (not each element) feeds the RHS chain.
func evalPipe(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	lhs, err := Evaluate(ctx, sel.Lhs, input)
	if err != nil {
		return null(), err
	}
	if lhs.Kind() != value.Array {
		return null(), nil
	}
	return evalSequence(ctx, sel.Rhs, lhs)
}
