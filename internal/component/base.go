package component

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/map-console/mcc/internal/config"
	"github.com/map-console/mcc/internal/diag"
	"github.com/map-console/mcc/internal/jsruntime"
)

// Base performs best-effort invocations of a single named browser function.
// All fields are read-only after construction; overlapping Invoke calls are
// not serialized. That is acceptable because every bound function is an
// idempotent rendering update.
type Base struct {
	runtime    jsruntime.Runtime
	funcName   string
	ctx        context.Context
	diag       *diag.Logger
	attempts   int
	retryDelay time.Duration
}

// NewBase creates an invoker bound to funcName. ctx is the owning view's
// lifetime: once it is cancelled, pending and future invocations unwind
// silently. Retry budget and delay come from timing.
func NewBase(ctx context.Context, runtime jsruntime.Runtime, sinks *diag.Factory, funcName string, timing *config.TimingConfig) *Base {
	return &Base{
		runtime:    runtime,
		funcName:   funcName,
		ctx:        ctx,
		diag:       sinks.For(funcName),
		attempts:   timing.InvokeRetryBudget,
		retryDelay: timing.InvokeRetryDelay,
	}
}

// FuncName returns the bound target function name.
func (b *Base) FuncName() string {
	return b.funcName
}

// Invoke calls the bound function with args. It never returns an error and
// emits at most one diagnostic per call. Callers that must not block on the
// retry loop run it on its own goroutine.
func (b *Base) Invoke(args ...any) {
	remaining := b.attempts
	tryAgain := true

	for remaining > 0 && tryAgain && b.ctx.Err() == nil {
		remaining--

		err := b.runtime.InvokeVoid(b.ctx, b.funcName, args...)
		switch {
		case err == nil:
			tryAgain = false

		case isCancellation(err):
			// Owning view torn down mid-call. Expected, not an error.
			tryAgain = false

		case errors.Is(err, jsruntime.ErrFuncNotFound):
			// Script layer not done registering. Wait and retry until the
			// budget runs out; exhaustion abandons the call without
			// escalation.
			sleep(b.ctx, b.retryDelay)

		default:
			tryAgain = false
			b.diag.Error(err, fmt.Sprintf("invoke %s(%s) failed", b.funcName, joinArgs(args)))
		}
	}
}

// isCancellation reports whether err means the call was aborted rather than
// failed.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, jsruntime.ErrCancelled)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// joinArgs renders an argument list for diagnostics.
func joinArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, ", ")
}
