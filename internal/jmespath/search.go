// Package jmespath ties the compiler, selector, and value packages together
// behind two public entry points: a reusable compiled Expression, and a
// one-shot Search convenience wrapper.
package jmespath

import (
	"github.com/jacoelho/jpq/internal/jmespath/compiler"
	"github.com/jacoelho/jpq/internal/jmespath/selector"
	"github.com/jacoelho/jpq/internal/jmespath/value"
)

// Expression is a compiled, reusable JMESPath expression. It holds no
// evaluation state of its own; every Search call gets a fresh arena.
type Expression struct {
	sel *selector.Selector
}

// Compile parses expr into a reusable Expression. On failure the returned
// error is a *compiler.ParseError carrying Line, Column, and Code.
func Compile(expr string) (*Expression, error) {
	sel, err := compiler.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Expression{sel: sel}, nil
}

// Search evaluates the expression against root.
func (e *Expression) Search(root value.Value) (value.Value, error) {
	ctx := selector.NewContext()
	return selector.Evaluate(ctx, e.sel, root)
}

// Selector exposes the compiled tree for callers that need to inspect or
// translate it (the CLI's --ast and --verify-compat flags).
func (e *Expression) Selector() *selector.Selector {
	return e.sel
}

// AST renders the compiled selector tree as an S-expression, e.g.
// "(SubExpression (Identifier \"a\") (Index 0))".
func (e *Expression) AST() string {
	return ast(e.sel)
}

// Search compiles expr and evaluates it against root in one call. Parse
// errors and evaluation errors are both returned unwrapped so a caller can
// type-assert on *compiler.ParseError to recover position information.
func Search(expr string, root value.Value) (value.Value, error) {
	e, err := Compile(expr)
	if err != nil {
		return value.Value{}, err
	}
	return e.Search(root)
}
