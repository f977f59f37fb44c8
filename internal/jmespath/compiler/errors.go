package compiler

import "fmt"

// Error codes, per the grammar's error taxonomy. Each ParseError carries the
// offending position for diagnostics.
const (
	ErrExpectedIdentifier   = "expected_identifier"
	ErrExpectedIndex        = "expected_index"
	ErrExpectedComparator   = "expected_comparator"
	ErrExpectedDot          = "expected_dot"
	ErrExpectedColon        = "expected_colon"
	ErrExpectedKey          = "expected_key"
	ErrExpectedRightBrace   = "expected_right_brace"
	ErrExpectedRightBracket = "expected_right_bracket"
	ErrUnexpectedEndOfInput = "unexpected_end_of_input"
	ErrInvalidNumber        = "invalid_number"
	ErrFunctionNameNotFound = "function_name_not_found"
	ErrInvalidArgument      = "invalid_argument"
	ErrUnidentified         = "unidentified_error"
)

// ParseError reports a lexical or structural violation detected while
// compiling an expression. No further input is consumed once raised.
type ParseError struct {
	Code   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Code, e.Line, e.Column)
}
