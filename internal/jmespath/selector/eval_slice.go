package selector

import "github.com/jacoelho/jpq/internal/jmespath/value"

// evalSlice normalizes Slice against the array's length and materializes
// the selected elements into a new arena array. A negative start wraps
// around from the end of the array (size+start), not size-start.
func evalSlice(ctx *Context, sel *Selector, input value.Value) value.Value {
	if input.Kind() != value.Array {
		return null()
	}
	n := int64(input.Len())

	start := normalizeSliceBound(sel.Slice.Start, n)
	var end int64
	if sel.Slice.End != nil {
		end = normalizeSliceBound(*sel.Slice.End, n)
		if end > n {
			end = n
		}
	} else {
		end = n
	}

	step := sel.Slice.Step
	if step == 0 {
		step = 1
	}

	var out []value.Value
	if step > 0 {
		for i := start; i < end; i += step {
			if i < 0 || i >= n {
				continue
			}
			out = append(out, input.Index(int(i)))
		}
	} else {
		for i := end - 1; i >= start; i += step {
			if i < 0 || i >= n {
				continue
			}
			out = append(out, input.Index(int(i)))
		}
	}
	return ctx.alloc(value.FromArray(out))
}

// normalizeSliceBound resolves a possibly-negative bound against size n,
// wrapping from the end: n + bound when bound < 0, else bound unchanged.
func normalizeSliceBound(bound, n int64) int64 {
	if bound < 0 {
		return n + bound
	}
	return bound
}
