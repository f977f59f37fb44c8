package selector

import "fmt"

// EvalError reports a function-argument violation detected during
// evaluation: wrong arity or wrong operand kind to a built-in function.
// Navigation type mismatches are never errors, they produce the null
// sentinel.
type EvalError struct {
	Code    string
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalidArgument(format string, args ...any) *EvalError {
	return &EvalError{Code: "invalid_argument", Message: fmt.Sprintf(format, args...)}
}
