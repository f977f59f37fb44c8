package compiler

import (
	"testing"

	"github.com/jacoelho/jpq/internal/jmespath/selector"
	"github.com/jacoelho/jpq/internal/jmespath/value"
)

func search(t *testing.T, doc, expr string) value.Value {
	t.Helper()
	root, err := value.Parse(doc)
	if err != nil {
		t.Fatalf("value.Parse(%q): %v", doc, err)
	}
	sel, err := Compile(expr)
	if err != nil {
		t.Fatalf("Compile(%q): %v", expr, err)
	}
	ctx := selector.NewContext()
	got, err := selector.Evaluate(ctx, sel, root)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", expr, err)
	}
	return got
}

func jsonEqual(t *testing.T, got value.Value, wantJSON string) {
	t.Helper()
	want, err := value.Parse(wantJSON)
	if err != nil {
		t.Fatalf("value.Parse(%q): %v", wantJSON, err)
	}
	if !value.Equal(got, want) {
		t.Fatalf("got %#v, want %s", got, wantJSON)
	}
}

func TestCompileScenarios(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		expr string
		want string
	}{
		{
			"nested field access",
			`{"a": {"b": {"c": 42}}}`,
			"a.b.c",
			"42",
		},
		{
			"sort_by",
			`{"xs": [{"n": 3}, {"n": 1}, {"n": 2}]}`,
			"sort_by(xs, &n)",
			`[{"n":1},{"n":2},{"n":3}]`,
		},
		{
			"slice with step",
			`{"xs": [1, 2, 3, 4]}`,
			"xs[0:4:2]",
			"[1, 3]",
		},
		{
			"slice reverse",
			`{"xs": [1, 2, 3, 4]}`,
			"xs[::-1]",
			"[4, 3, 2, 1]",
		},
		{
			"filter then project",
			`{"xs": [{"k":1},{"k":2},{"k":3}]}`,
			"xs[?k > `1`].k",
			"[2, 3]",
		},
		{
			"flatten",
			`{"xs":[[1,2],[3,[4,5]],6]}`,
			"xs[]",
			"[1, 2, 3, [4, 5], 6]",
		},
		{
			"multi-select hash",
			`{"a": {"x": 1, "y": 2}}`,
			"a.{p: x, q: y}",
			`{"p": 1, "q": 2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search(t, tt.doc, tt.expr)
			jsonEqual(t, got, tt.want)
		})
	}
}

func TestCompileParseErrors(t *testing.T) {
	tests := []struct {
		expr string
		code string
	}{
		{"a..", ErrExpectedIdentifier},
		{"foo(", ErrUnexpectedEndOfInput},
		{"xyz(1)", ErrFunctionNameNotFound},
		{"[? a > ]", ErrExpectedIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Compile(tt.expr)
			if err == nil {
				t.Fatalf("Compile(%q): expected error", tt.expr)
			}
			pe, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("Compile(%q): got %T, want *ParseError", tt.expr, err)
			}
			if pe.Code != tt.code {
				t.Fatalf("Compile(%q): got code %q, want %q", tt.expr, pe.Code, tt.code)
			}
		})
	}
}

func TestSliceRoundTrip(t *testing.T) {
	got := search(t, `{"xs": [1,2,3,4,5]}`, "xs[0:5]")
	jsonEqual(t, got, "[1,2,3,4,5]")
}

func TestProjectionIdempotenceOnEmpties(t *testing.T) {
	got := search(t, `{"xs": []}`, "xs[*]")
	jsonEqual(t, got, "[]")

	got = search(t, `{"o": {}}`, "o.*")
	jsonEqual(t, got, "[]")
}

func TestFilterTotalityExcludesNonNumeric(t *testing.T) {
	got := search(t, `{"xs":[{"k":"a"},{"k":"b"}]}`, "xs[?k > `1`]")
	jsonEqual(t, got, "[]")
}

func TestIdentityReturnsExactSubvalue(t *testing.T) {
	got := search(t, `{"a": {"nested": true}}`, "a")
	jsonEqual(t, got, `{"nested": true}`)
}

func TestListProjection(t *testing.T) {
	got := search(t, `{"xs": [{"n":1},{"n":2}]}`, "xs[*].n")
	jsonEqual(t, got, "[1, 2]")
}

func TestMultiSelectList(t *testing.T) {
	got := search(t, `{"a": 1, "b": 2}`, "[a, b]")
	jsonEqual(t, got, "[1, 2]")
}

func TestPipeCollapsesNonArray(t *testing.T) {
	got := search(t, `{"a": {"b": 1}}`, "a | b")
	jsonEqual(t, got, "null")
}

func TestIndexNegative(t *testing.T) {
	got := search(t, `{"xs": [1,2,3,4]}`, "xs[-1]")
	jsonEqual(t, got, "4")
}

func TestRawStringLiteral(t *testing.T) {
	got := search(t, `{}`, "'hello'")
	jsonEqual(t, got, `"hello"`)
}

func TestQuotedIdentifier(t *testing.T) {
	got := search(t, `{"a-b": 1}`, `"a-b"`)
	jsonEqual(t, got, "1")
}
