// Package selector implements the JMESPath selector IR: a closed family of
// node kinds that compose into a tree and evaluate against a value.Value.
//
// Dynamic dispatch is deliberately avoided in favor of a tagged union with
// a central evaluate dispatcher over virtual calls. Only the variants that
// legitimately accumulate more selectors as the parser advances expose
// AddChild; every other kind panics if misused, so a compiler bug surfaces
// immediately instead of silently no-oping.
package selector

import "github.com/jacoelho/jpq/internal/jmespath/value"

// Kind identifies which selector variant a Selector node represents.
type Kind uint8

const (
	SubExpression Kind = iota
	Identifier
	Index
	SliceSelector
	JSONLiteral
	ListProjection
	ObjectProjection
	FlattenProjection
	Pipe
	Filter
	MultiSelectList
	MultiSelectHash
	Function
)

func (k Kind) String() string {
	switch k {
	case SubExpression:
		return "SubExpression"
	case Identifier:
		return "Identifier"
	case Index:
		return "Index"
	case SliceSelector:
		return "Slice"
	case JSONLiteral:
		return "JsonLiteral"
	case ListProjection:
		return "ListProjection"
	case ObjectProjection:
		return "ObjectProjection"
	case FlattenProjection:
		return "FlattenProjection"
	case Pipe:
		return "Pipe"
	case Filter:
		return "Filter"
	case MultiSelectList:
		return "MultiSelectList"
	case MultiSelectHash:
		return "MultiSelectHash"
	case Function:
		return "Function"
	default:
		return "Unknown"
	}
}

// Cmp identifies the comparator a Filter selector applies.
type Cmp uint8

const (
	CmpEq Cmp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (c Cmp) String() string {
	switch c {
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

// Slice is the triple (start, end, step) of a bracket slice specifier.
// End is nil when absent; evalSlice resolves concrete bounds against an
// array's length at evaluation time.
type Slice struct {
	Start int64
	End   *int64
	Step  int64
}

// HashEntry is one key/value pair of a MultiSelectHash, in source order.
type HashEntry struct {
	Key   string
	Value *Selector
}

// FuncID identifies a registered built-in function.
type FuncID uint8

const (
	FuncUnknown FuncID = iota
	FuncSortBy
)

// Selector is a node of the compiled expression tree. Exactly the fields
// relevant to Kind are populated; the zero value of the others is ignored.
type Selector struct {
	Kind Kind

	// SubExpression, MultiSelectList
	Children []*Selector

	// Identifier, Function (name before resolution)
	Name string

	// Index
	Idx int64

	// SliceSelector
	Slice Slice

	// JSONLiteral
	Literal value.Value

	// ListProjection, ObjectProjection, FlattenProjection, Pipe, Filter:
	// Lhs produces the collection/value the Rhs sequence is applied over.
	Lhs *Selector
	Rhs []*Selector

	// Filter
	Cmp Cmp

	// MultiSelectHash
	Entries []HashEntry

	// Function
	Fn   FuncID
	Args []*Selector
}

// New allocates a Selector of the given kind.
func New(k Kind) *Selector {
	return &Selector{Kind: k}
}

// AcceptsChildren reports whether the parser may AddChild onto this
// selector as it continues to accumulate sub-expressions.
func (s *Selector) AcceptsChildren() bool {
	switch s.Kind {
	case SubExpression, Function, ListProjection, ObjectProjection,
		FlattenProjection, Pipe, Filter, MultiSelectList:
		return true
	default:
		return false
	}
}

// AddChild appends child to the selector's accumulating slot: Children for
// SubExpression/MultiSelectList, Args for Function, Rhs for the projection
// and filter/pipe family. It panics for variants that do not accumulate,
// since the compiler should never attempt to mutate a completed leaf.
func (s *Selector) AddChild(child *Selector) {
	switch s.Kind {
	case SubExpression, MultiSelectList:
		s.Children = append(s.Children, child)
	case Function:
		s.Args = append(s.Args, child)
	case ListProjection, ObjectProjection, FlattenProjection, Pipe, Filter:
		s.Rhs = append(s.Rhs, child)
	default:
		panic("selector: AddChild on non-accumulating kind " + s.Kind.String())
	}
}
