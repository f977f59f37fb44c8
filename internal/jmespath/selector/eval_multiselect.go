package selector

import "github.com/jacoelho/jpq/internal/jmespath/value"

func evalMultiSelectList(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	if input.Kind() != value.Object {
		return null(), nil
	}
	out := make([]value.Value, 0, len(sel.Children))
	for _, child := range sel.Children {
		v, err := Evaluate(ctx, child, input)
		if err != nil {
			return null(), err
		}
		out = append(out, v)
	}
	return ctx.alloc(value.FromArray(out)), nil
}

func evalMultiSelectHash(ctx *Context, sel *Selector, input value.Value) (value.Value, error) {
	if input.Kind() != value.Object {
		return null(), nil
	}
	obj := value.NewObject()
	obj.Reserve(len(sel.Entries))
	for _, entry := range sel.Entries {
		v, err := Evaluate(ctx, entry.Value, input)
		if err != nil {
			return null(), err
		}
		obj.Set(entry.Key, v)
	}
	return ctx.alloc(value.FromObject(obj)), nil
}
