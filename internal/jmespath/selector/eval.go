package selector

import "github.com/jacoelho/jpq/internal/jmespath/value"

// Evaluate walks sel against input, returning either a reference to part of
// input or a value built in ctx's arena. It never returns an error for
// navigation mismatches: those collapse to null. Only function-argument
// violations set err.
func Evaluate(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	if sel == nil {
		return null(), nil
	}

	switch sel.Kind {
	case SubExpression:
		return evalSubExpression(ctx, sel, input)
	case Identifier:
		return evalIdentifier(ctx, sel, input), nil
	case Index:
		return evalIndex(sel, input), nil
	case SliceSelector:
		return evalSlice(ctx, sel, input), nil
	case JSONLiteral:
		return sel.Literal, nil
	case ListProjection:
		return evalListProjection(ctx, sel, input)
	case ObjectProjection:
		return evalObjectProjection(ctx, sel, input)
	case FlattenProjection:
		return evalFlattenProjection(ctx, sel, input)
	case Pipe:
		return evalPipe(ctx, sel, input)
	case Filter:
		return evalFilter(ctx, sel, input)
	case MultiSelectList:
		return evalMultiSelectList(ctx, sel, input)
	case MultiSelectHash:
		return evalMultiSelectHash(ctx, sel, input)
	case Function:
		return evalFunction(ctx, sel, input)
	default:
		return null(), nil
	}
}

// evalSequence folds a chain of selectors left-to-right over a starting
// value, the way SubExpression, ListProjection's rhs, Pipe's rhs, and
// Filter's rhs all need to.
func evalSequence(ctx *Context, seq []*Selector, start value.Value) (value.Value, error) {
	v := start
	for _, s := range seq {
		next, err := Evaluate(ctx, s, v)
		if err != nil {
			return null(), err
		}
		v = next
	}
	return v, nil
}

func evalSubExpression(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	return evalSequence(ctx, sel.Children, input)
}

func evalIdentifier(ctx *Context, sel *Selector, input value.Value) value.Value {
	switch input.Kind() {
	case value.Object:
		if v, ok := input.At(sel.Name); ok {
			return v
		}
		return null()
	case value.Array:
		var out []value.Value
		for _, item := range input.Items() {
			if item.Kind() != value.Object {
				continue
			}
			if v, ok := item.At(sel.Name); ok {
				out = append(out, v)
			}
		}
		return ctx.alloc(value.FromArray(out))
	default:
		return null()
	}
}

func evalIndex(sel *Selector, input value.Value) value.Value {
	if input.Kind() != value.Array {
		return null()
	}
	n := int64(input.Len())
	i := sel.Idx
	if i < 0 {
		i = n + i
	}
	if i < 0 || i >= n {
		return null()
	}
	return input.Index(int(i))
}
