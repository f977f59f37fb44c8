package selector

import "github.com/jacoelho/jpq/internal/jmespath/value"

// Context is the per-call evaluation arena: every intermediate array/object
// a selector builds is allocated through it, and its lifetime spans exactly
// one top-level Evaluate call. Go's garbage collector makes the ownership
// implicit, but the arena is still kept as a bag of produced values so the
// evaluator's allocation behavior stays introspectable (see
// Context.Allocations) rather than vanishing into ad-hoc heap allocations.
type Context struct {
	arena []value.Value
}

// NewContext returns a fresh, empty evaluation arena for one search call.
func NewContext() *Context {
	return &Context{}
}

// alloc records v as an arena-owned intermediate and returns it unchanged.
func (c *Context) alloc(v value.Value) value.Value {
	c.arena = append(c.arena, v)
	return v
}

// Allocations reports how many intermediate values this call has produced
// so far. It is a bag, not a stack: order carries no meaning.
func (c *Context) Allocations() int {
	return len(c.arena)
}

// null returns the shared null result. It is a plain value, not a pointer,
// so its identity is never observed by callers.
func null() value.Value {
	return value.NullValue
}
