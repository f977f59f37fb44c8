package compiler

// State names the parser mode being executed. The driver is recursive rather
// than loop-and-switch over a single stack cell, but it still pushes/pops a
// State stack alongside each call so the parser's nesting mirrors the named
// states of the grammar, one level of recursion per named production. The
// stack does not drive control flow; Compile only checks that it is empty
// once parsing ends.
type State uint8

const (
	StateStart State = iota
	StateExpression
	StateSubExpression
	StateIdentifierOrFunction
	StateArgOrRightParen
	StateBracketSpecifier
	StateMultiSelectHash
	StateKeyValExpr
	StateExpectColon
	StateExpectRightBrace
	StateComparator
	StateExpectRightBracket
	StateExpectRightBracket4
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateExpression:
		return "expression"
	case StateSubExpression:
		return "sub_expression"
	case StateIdentifierOrFunction:
		return "identifier_or_function"
	case StateArgOrRightParen:
		return "arg_or_right_paren"
	case StateBracketSpecifier:
		return "bracket_specifier"
	case StateMultiSelectHash:
		return "multi_select_hash"
	case StateKeyValExpr:
		return "key_val_expr"
	case StateExpectColon:
		return "expect_colon"
	case StateExpectRightBrace:
		return "expect_right_brace"
	case StateComparator:
		return "comparator"
	case StateExpectRightBracket:
		return "expect_right_bracket"
	case StateExpectRightBracket4:
		return "expect_right_bracket4"
	default:
		return "unknown"
	}
}
