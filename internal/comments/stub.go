//go:build !cgo

package comments

import "context"

type unavailableStripper struct{}

// NewStripper returns a Stripper that always fails with ErrStripperUnavailable
// because the tree-sitter bindings need cgo.
func NewStripper() Stripper {
	return unavailableStripper{}
}

func (unavailableStripper) Strip(context.Context, Request) ([]byte, error) {
	return nil, ErrStripperUnavailable
}
