// Package value implements the JSON-like document model that selectors
// navigate and the evaluator builds intermediates from.
//
// Value is a concrete tagged union rather than an interface: selectors
// dispatch on Kind with a switch, not a virtual call, matching the
// tagged-union discipline the rest of the evaluator uses.
package value

import "sort"

// Kind identifies which variant of Value is populated.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// NumKind distinguishes the representation backing a Number value.
type NumKind uint8

const (
	// Int holds signed/unsigned integers that fit in int64.
	Int NumKind = iota
	// Float holds a floating-point value.
	Float
)

// Value is a recursive JSON variant: null, boolean, number, string, array
// of Value, or an insertion-ordered object mapping string to Value.
type Value struct {
	kind Kind

	b   bool
	nk  NumKind
	i   int64
	f   float64
	str string
	arr []Value
	obj *object
}

// member is one insertion-ordered entry of an object.
type member struct {
	key   string
	value Value
}

// object is an insertion-ordered mapping from string keys to Value.
type object struct {
	members []member
	index   map[string]int
}

// NewObject returns an empty object, optionally pre-sized via reserve.
func NewObject() *object {
	return &object{index: make(map[string]int)}
}

// Reserve hints the expected final member count.
func (o *object) Reserve(n int) {
	if cap(o.members) < n {
		members := make([]member, len(o.members), n)
		copy(members, o.members)
		o.members = members
	}
}

// TryEmplace inserts key=v if key is absent, and is a no-op otherwise.
// Returns true if the key was newly inserted.
func (o *object) TryEmplace(key string, v Value) bool {
	if _, ok := o.index[key]; ok {
		return false
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, member{key: key, value: v})
	return true
}

// Set inserts or overwrites key=v, preserving original insertion order on overwrite.
func (o *object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, member{key: key, value: v})
}

// Contains reports whether key is present.
func (o *object) Contains(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// At returns the value for key, or (Value{}, false) if absent.
func (o *object) At(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].value, true
}

// Len returns the number of members.
func (o *object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Range iterates members in insertion order, stopping early if fn returns false.
func (o *object) Range(fn func(key string, v Value) bool) {
	if o == nil {
		return
	}
	for _, m := range o.members {
		if !fn(m.key, m.value) {
			return
		}
	}
}

// Keys returns the member keys in insertion order.
func (o *object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.key
	}
	return keys
}

// --- constructors ---

// NullValue is the zero Value; defined for readability at call sites.
var NullValue = Value{kind: Null}

func FromBool(b bool) Value { return Value{kind: Bool, b: b} }

func FromInt(i int64) Value { return Value{kind: Number, nk: Int, i: i} }

func FromFloat(f float64) Value { return Value{kind: Number, nk: Float, f: f} }

func FromString(s string) Value { return Value{kind: String, str: s} }

func FromArray(items []Value) Value { return Value{kind: Array, arr: items} }

func FromObject(o *object) Value { return Value{kind: Object, obj: o} }

// NewArray returns an empty array value, with items appended via PushBack.
func NewArray() Value { return Value{kind: Array} }

// PushBack appends v to an Array value in place.
func (v *Value) PushBack(item Value) {
	v.arr = append(v.arr, item)
}

// --- kind predicates ---

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == Null }
func (v Value) IsBool() bool   { return v.kind == Bool }
func (v Value) IsNumber() bool { return v.kind == Number }
func (v Value) IsString() bool { return v.kind == String }
func (v Value) IsArray() bool  { return v.kind == Array }
func (v Value) IsObject() bool { return v.kind == Object }

// --- scalar accessors ---

func (v Value) Bool() bool { return v.b }

func (v Value) String() string {
	if v.kind == String {
		return v.str
	}
	return ""
}

// NumKind reports whether a Number is backed by an integer or a float.
func (v Value) NumKind() NumKind { return v.nk }

// Float64 returns the numeric value as a float64 regardless of NumKind.
func (v Value) Float64() float64 {
	if v.nk == Float {
		return v.f
	}
	return float64(v.i)
}

// Int64 returns the numeric value truncated to int64.
func (v Value) Int64() int64 {
	if v.nk == Int {
		return v.i
	}
	return int64(v.f)
}

// --- array accessors ---

// Len returns the number of elements in an Array, or 0 otherwise.
func (v Value) Len() int {
	if v.kind != Array {
		return 0
	}
	return len(v.arr)
}

// Index returns the i'th array element. The caller must check bounds.
func (v Value) Index(i int) Value { return v.arr[i] }

// Items returns the backing array slice for iteration.
func (v Value) Items() []Value { return v.arr }

// --- object accessors ---

// Contains reports whether an Object value has key.
func (v Value) Contains(key string) bool {
	if v.kind != Object {
		return false
	}
	return v.obj.Contains(key)
}

// At looks up key on an Object value.
func (v Value) At(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	return v.obj.At(key)
}

// Object returns the backing *object for iteration. Nil for non-objects.
func (v Value) Object() *object {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// --- equality and ordering ---

// Equal performs total structural equality.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		// Integers and floats compare equal across representation.
		if a.kind == Number && b.kind == Number {
			return a.Float64() == b.Float64()
		}
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case Number:
		if a.nk == Int && b.nk == Int {
			return a.i == b.i
		}
		return a.Float64() == b.Float64()
	case String:
		return a.str == b.str
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		equal := true
		a.obj.Range(func(k string, av Value) bool {
			bv, ok := b.obj.At(k)
			if !ok || !Equal(av, bv) {
				equal = false
				return false
			}
			return true
		})
		return equal
	}
	return false
}

// Compare establishes a total order across all Values, used by sort_by.
// kindRank breaks ties between differing kinds, within a kind the natural
// order is used, falling back to member-count/lexicographic order for
// containers so the order is total and deterministic.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return kindRank(a.kind) - kindRank(b.kind)
	}
	switch a.kind {
	case Null:
		return 0
	case Bool:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case Number:
		af, bf := a.Float64(), b.Float64()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case String:
		switch {
		case a.str < b.str:
			return -1
		case a.str > b.str:
			return 1
		default:
			return 0
		}
	case Array:
		n := len(a.arr)
		if len(b.arr) < n {
			n = len(b.arr)
		}
		for i := 0; i < n; i++ {
			if c := Compare(a.arr[i], b.arr[i]); c != 0 {
				return c
			}
		}
		return len(a.arr) - len(b.arr)
	case Object:
		ak, bk := a.obj.Keys(), b.obj.Keys()
		sort.Strings(ak)
		sort.Strings(bk)
		n := len(ak)
		if len(bk) < n {
			n = len(bk)
		}
		for i := 0; i < n; i++ {
			if ak[i] != bk[i] {
				if ak[i] < bk[i] {
					return -1
				}
				return 1
			}
			av, _ := a.obj.At(ak[i])
			bv, _ := b.obj.At(bk[i])
			if c := Compare(av, bv); c != 0 {
				return c
			}
		}
		return len(ak) - len(bk)
	}
	return 0
}

func kindRank(k Kind) int {
	switch k {
	case Null:
		return 0
	case Bool:
		return 1
	case Number:
		return 2
	case String:
		return 3
	case Array:
		return 4
	case Object:
		return 5
	}
	return 6
}

// NumericLess reports whether a < b, and whether the comparison is defined
// at all: JMESPath's ordering comparators (<, <=, >, >=) are only defined
// when both operands are numbers.
func NumericLess(a, b Value) (less bool, defined bool) {
	if a.kind != Number || b.kind != Number {
		return false, false
	}
	return a.Float64() < b.Float64(), true
}
