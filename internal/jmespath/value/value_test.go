package value

import "testing"

func TestParseProducesNonNullValue(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"object", `{"a":1,"b":[1,2,3],"c":null,"d":true}`},
		{"nested", `{"xs":[{"n":3},{"n":1}]}`},
		{"scalar", `42`},
		{"string", `"hi"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.text, err)
			}
			if v.IsNull() && tc.text != "null" {
				t.Fatalf("Parse(%q) produced null", tc.text)
			}
		})
	}
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	v, err := Parse(`{"z":1,"a":2,"m":3}`)
	if err != nil {
		t.Fatal(err)
	}
	got := v.Object().Keys()
	want := []string{"z", "a", "m"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEqual(t *testing.T) {
	a, _ := Parse(`{"a":1,"b":[1,2]}`)
	b, _ := Parse(`{"a":1,"b":[1,2]}`)
	c, _ := Parse(`{"a":1,"b":[1,3]}`)

	if !Equal(a, b) {
		t.Errorf("expected a == b")
	}
	if Equal(a, c) {
		t.Errorf("expected a != c")
	}
}

func TestEqualObjectOrderIndependent(t *testing.T) {
	a, _ := Parse(`{"a":1,"b":2}`)
	b, _ := Parse(`{"b":2,"a":1}`)
	if !Equal(a, b) {
		t.Errorf("object equality should ignore member order")
	}
}

func TestCompareNumbers(t *testing.T) {
	a := FromInt(1)
	b := FromFloat(2.5)
	if Compare(a, b) >= 0 {
		t.Errorf("expected a < b")
	}
	if Compare(b, a) <= 0 {
		t.Errorf("expected b > a")
	}
	if Compare(a, FromInt(1)) != 0 {
		t.Errorf("expected a == a")
	}
}

func TestNumericLessUndefinedForNonNumbers(t *testing.T) {
	if _, ok := NumericLess(FromString("a"), FromInt(1)); ok {
		t.Errorf("expected comparison to be undefined for string operand")
	}
	if less, ok := NumericLess(FromInt(1), FromInt(2)); !ok || !less {
		t.Errorf("expected 1 < 2 to be defined and true")
	}
}
