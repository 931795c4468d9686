package jsruntime

import (
	"context"
)

// Runtime is the host-provided channel for calling a named browser-side
// function. Implementations honor ctx for both queueing and the wait for
// the browser's answer.
type Runtime interface {
	// InvokeVoid calls the named function with the given arguments and
	// discards any return value. The error, if non-nil, is always a
	// *FuncError carrying a normalized code.
	InvokeVoid(ctx context.Context, name string, args ...any) error
}

// RuntimeFunc adapts a plain function to the Runtime interface.
type RuntimeFunc func(ctx context.Context, name string, args ...any) error

// InvokeVoid implements Runtime.
func (f RuntimeFunc) InvokeVoid(ctx context.Context, name string, args ...any) error {
	return f(ctx, name, args...)
}
