package compat

import (
	"testing"

	"github.com/jacoelho/jpq/internal/jmespath/compiler"
	"github.com/jacoelho/jpq/internal/jmespath/value"
)

func TestTranslateNavigationalSubset(t *testing.T) {
	tests := []struct {
		expr string
		want string
		ok   bool
	}{
		{"a.b.c", "$.a.b.c", true},
		{"a.b[0]", "$.a.b[0]", true},
		{"xs[*]", "$.xs[*]", true},
		{"xs[?k > `1`]", "", false},
		{"a | b", "", false},
		{"sort_by(xs, &n)", "", false},
		{"[a, b]", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			sel, err := compiler.Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.expr, err)
			}
			got, ok := Translate(sel)
			if ok != tt.ok {
				t.Fatalf("Translate(%q): ok = %v, want %v", tt.expr, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Translate(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestVerifyAgreesOnOverlap(t *testing.T) {
	root, err := value.Parse(`{"a": {"b": [10, 20, 30]}}`)
	if err != nil {
		t.Fatalf("value.Parse: %v", err)
	}

	agree, err := Verify(root, "a.b[1]")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !agree {
		t.Fatal("Verify(a.b[1]): engines disagree")
	}
}

func TestVerifyRejectsNonOverlapping(t *testing.T) {
	root, err := value.Parse(`{"xs": [{"k":1},{"k":2}]}`)
	if err != nil {
		t.Fatalf("value.Parse: %v", err)
	}

	if _, err := Verify(root, "xs[?k > `1`]"); err == nil {
		t.Fatal("Verify(filter expression): expected error, got nil")
	}
}
