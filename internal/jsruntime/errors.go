package jsruntime

// The script layer reports failures as free-form strings; structured result
// codes were added to the bridge protocol later. Both are mapped here with
// deterministic tables so callers can branch on errors.Is instead of
// message text.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Normalized invocation error classes.
var (
	// ErrFuncNotFound indicates the target function is not (yet) registered
	// in the browser's global scope. Callers may retry after a delay.
	ErrFuncNotFound = errors.New("FUNC_NOT_FOUND")

	// ErrCancelled indicates the call was aborted by the caller's context
	// or by session teardown.
	ErrCancelled = errors.New("CANCELLED")

	// ErrDisconnected indicates the bridge session is gone.
	ErrDisconnected = errors.New("DISCONNECTED")

	// ErrTimeout indicates the browser did not answer within the call
	// timeout.
	ErrTimeout = errors.New("TIMEOUT")

	// ErrInternal covers every failure that matches no known shape.
	ErrInternal = errors.New("INTERNAL")
)

// FuncError wraps a raw invocation failure with its normalized code and the
// target function name.
type FuncError struct {
	Code     error  // Normalized class
	Name     string // Target function name
	Original error  // Raw failure as reported by the transport or script layer
}

func (e *FuncError) Error() string {
	if e.Original == nil {
		return fmt.Sprintf("%v: %s", e.Code, e.Name)
	}
	return fmt.Sprintf("%v: %s: %v", e.Code, e.Name, e.Original)
}

func (e *FuncError) Unwrap() error {
	return e.Code
}

// Structured result codes carried by bridge result frames. Ordered so that
// classification is deterministic when a message matches several tokens.
var resultCodeTokens = []struct {
	token string
	code  error
}{
	{"FUNC_NOT_FOUND", ErrFuncNotFound},
	{"CANCELLED", ErrCancelled},
	{"DISCONNECTED", ErrDisconnected},
	{"TIMEOUT", ErrTimeout},
}

// notFoundPatterns returns the legacy script-layer message shapes that
// signal "function not yet registered" for the given target name. These
// literals are load-bearing: older console bundles emit exactly these
// strings and nothing structured. A "could not find" with any other suffix
// is not this failure and must classify as INTERNAL.
func notFoundPatterns(name string) []string {
	lower := strings.ToLower(name)
	return []string{
		fmt.Sprintf("could not find '%s' in the global scope", lower),
		fmt.Sprintf("could not find '%s' in 'window'", lower),
		fmt.Sprintf("'%s' was undefined", lower),
	}
}

// Classify maps a raw invocation failure to a *FuncError with a normalized
// code. A nil raw error maps to nil. Already-classified errors pass through
// unchanged.
func Classify(name string, raw error) error {
	if raw == nil {
		return nil
	}

	var fe *FuncError
	if errors.As(raw, &fe) {
		return raw
	}

	return &FuncError{
		Code:     classifyCode(name, raw),
		Name:     name,
		Original: raw,
	}
}

// NotFound builds the canonical not-yet-registered failure for name. The
// bridge uses it when the client registry has no entry for the target, so
// the synthesized error matches what an old script bundle would report.
func NotFound(name string) error {
	return &FuncError{
		Code:     ErrFuncNotFound,
		Name:     name,
		Original: fmt.Errorf("could not find '%s' in the global scope", name),
	}
}

// classifyCode resolves the normalized class for a raw failure.
func classifyCode(name string, raw error) error {
	if errors.Is(raw, context.Canceled) || errors.Is(raw, context.DeadlineExceeded) {
		return ErrCancelled
	}

	msg := raw.Error()
	upper := strings.ToUpper(msg)

	for _, entry := range resultCodeTokens {
		if strings.Contains(upper, entry.token) {
			return entry.code
		}
	}

	lower := strings.ToLower(msg)
	for _, pattern := range notFoundPatterns(name) {
		if strings.Contains(lower, pattern) {
			return ErrFuncNotFound
		}
	}

	return ErrInternal
}
