package compiler

import "github.com/jacoelho/jpq/internal/jmespath/selector"

// frame is one entry of the selector stack K (spec: §3.4). It carries either
// a pending hash key, a partial selector accepting more children via
// AddChild, or both at once while a multi-select-hash value is in progress.
type frame struct {
	sel *selector.Selector
	key string
}

func newFrame(k selector.Kind) *frame {
	return &frame{sel: selector.New(k)}
}
