// Package component implements the base invoker shared by server-side
// console components.
//
// A component holds a browser runtime, one target function name, and the
// owning view's context. Invoke performs a best-effort call into the
// browser: the "function not yet registered" race that follows page load is
// masked behind a bounded, delayed retry, cancellation ends the call
// silently, and every other failure is recorded once on the diagnostic sink
// and swallowed. Nothing escapes to the caller; a rendering update that
// cannot be delivered simply does not happen.
//
// References:
//   - Console Timing §2: Retry budget and delay
package component
