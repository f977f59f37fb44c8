package selector

import (
	"testing"

	"github.com/jacoelho/jpq/internal/jmespath/value"
)

func mustParse(t *testing.T, text string) value.Value {
	t.Helper()
	v, err := value.Parse(text)
	if err != nil {
		t.Fatalf("value.Parse(%q): %v", text, err)
	}
	return v
}

func ident(name string) *Selector {
	s := New(Identifier)
	s.Name = name
	return s
}

func TestEvalIdentifier(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `{"a": {"b": 1}}`)

	sub := New(SubExpression)
	sub.AddChild(ident("a"))
	sub.AddChild(ident("b"))

	got, err := Evaluate(ctx, sub, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got.IsNumber() || got.Int64() != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestEvalIdentifierArrayFallback(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[{"k": 1}, {"other": 2}, {"k": 3}]`)

	got, err := Evaluate(ctx, ident("k"), input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("got len %d, want 2", got.Len())
	}
	if got.Index(0).Int64() != 1 || got.Index(1).Int64() != 3 {
		t.Fatalf("got %v, want [1 3]", got)
	}
}

func TestEvalIndexNegative(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[1,2,3,4]`)

	idx := New(Index)
	idx.Idx = -1

	got, err := Evaluate(ctx, idx, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Int64() != 4 {
		t.Fatalf("got %v, want 4", got)
	}
}

func TestEvalSlice(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[1,2,3,4]`)

	end := int64(4)
	sl := New(SliceSelector)
	sl.Slice = Slice{Start: 0, End: &end, Step: 2}

	got, err := Evaluate(ctx, sl, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Len() != 2 || got.Index(0).Int64() != 1 || got.Index(1).Int64() != 3 {
		t.Fatalf("got %v, want [1 3]", got)
	}
}

func TestEvalSliceNegativeStep(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[1,2,3,4]`)

	sl := New(SliceSelector)
	sl.Slice = Slice{Start: -1, End: nil, Step: -1}

	// start -1 wraps to 3 (n+start); a negative step walks from end-1 (3)
	// down to start (3), so only the last element is selected.
	got, err := Evaluate(ctx, sl, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := []int64{4}
	if got.Len() != len(want) {
		t.Fatalf("got len %d, want %d", got.Len(), len(want))
	}
	for i, w := range want {
		if got.Index(i).Int64() != w {
			t.Fatalf("index %d: got %v, want %v", i, got.Index(i), w)
		}
	}
}

func TestEvalFilter(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[{"k": 1}, {"k": 2}, {"k": 3}]`)

	one := New(JSONLiteral)
	one.Literal = value.FromInt(1)

	f := New(Filter)
	f.Lhs = ident("k")
	f.Cmp = CmpGt
	f.Rhs = []*Selector{one}

	sub := New(SubExpression)
	sub.AddChild(f)
	sub.AddChild(ident("k"))

	got, err := Evaluate(ctx, sub, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Len() != 2 || got.Index(0).Int64() != 2 || got.Index(1).Int64() != 3 {
		t.Fatalf("got %v, want [2 3]", got)
	}
}

func TestEvalPipeNonArrayCollapsesToNull(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `{"a": 1}`)

	p := New(Pipe)
	p.Lhs = ident("a")
	p.Rhs = []*Selector{ident("b")}

	got, err := Evaluate(ctx, p, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got.IsNull() {
		t.Fatalf("got %v, want null", got)
	}
}

func TestEvalListProjectionDropsNull(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[{"k": 1}, {}, {"k": 3}]`)

	// An empty SubExpression is a pass-through: evalSequence over zero
	// children returns its input unchanged, so Lhs resolves to the array itself.
	proj := New(ListProjection)
	proj.Lhs = New(SubExpression)
	proj.Rhs = []*Selector{ident("k")}

	got, err := Evaluate(ctx, proj, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Len() != 2 || got.Index(0).Int64() != 1 || got.Index(1).Int64() != 3 {
		t.Fatalf("got %v, want [1 3]", got)
	}
}

func TestEvalFlattenProjection(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[[1,2],[3],4]`)

	fl := New(FlattenProjection)
	fl.Lhs = New(SubExpression)

	got, err := Evaluate(ctx, fl, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := []int64{1, 2, 3, 4}
	if got.Len() != len(want) {
		t.Fatalf("got len %d, want %d", got.Len(), len(want))
	}
	for i, w := range want {
		if got.Index(i).Int64() != w {
			t.Fatalf("index %d: got %v, want %v", i, got.Index(i), w)
		}
	}
}

func TestEvalMultiSelectList(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `{"a": 1, "b": 2}`)

	msl := New(MultiSelectList)
	msl.AddChild(ident("a"))
	msl.AddChild(ident("b"))

	got, err := Evaluate(ctx, msl, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Len() != 2 || got.Index(0).Int64() != 1 || got.Index(1).Int64() != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}
}

func TestEvalMultiSelectHashPreservesOrder(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `{"a": 1, "b": 2}`)

	msh := New(MultiSelectHash)
	msh.Entries = []HashEntry{
		{Key: "y", Value: ident("b")},
		{Key: "x", Value: ident("a")},
	}

	got, err := Evaluate(ctx, msh, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	keys := got.Object().Keys()
	if len(keys) != 2 || keys[0] != "y" || keys[1] != "x" {
		t.Fatalf("got keys %v, want [y x]", keys)
	}
}

func TestEvalSortBy(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[{"age": 30}, {"age": 10}, {"age": 20}]`)

	arrExpr := New(SubExpression)
	fn := New(Function)
	fn.Fn = FuncSortBy
	fn.Name = "sort_by"
	fn.Args = []*Selector{arrExpr, ident("age")}

	got, err := Evaluate(ctx, fn, input)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := []int64{10, 20, 30}
	if got.Len() != len(want) {
		t.Fatalf("got len %d, want %d", got.Len(), len(want))
	}
	for i, w := range want {
		age, _ := got.Index(i).At("age")
		if age.Int64() != w {
			t.Fatalf("index %d: got age %v, want %v", i, age, w)
		}
	}
}

func TestEvalSortByWrongArity(t *testing.T) {
	ctx := NewContext()
	input := mustParse(t, `[]`)

	fn := New(Function)
	fn.Fn = FuncSortBy
	fn.Name = "sort_by"
	fn.Args = []*Selector{New(SubExpression)}

	_, err := Evaluate(ctx, fn, input)
	if err == nil {
		t.Fatal("expected error for wrong arity")
	}
}
