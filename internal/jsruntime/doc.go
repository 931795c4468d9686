// Package jsruntime defines the contract for invoking named browser-side
// JavaScript functions from server-side console components.
//
// The Runtime interface is implemented by the bridge session; callers never
// see raw transport errors. Failures are normalized to typed classes
// (FUNC_NOT_FOUND, CANCELLED, DISCONNECTED, TIMEOUT, INTERNAL) at this
// boundary so that retry decisions upstream do not depend on message text.
//
// Bridge Protocol References:
//   - Bridge Protocol §4: Result frames and error strings
//   - Bridge Protocol §4.2: Script-layer "function not found" message shapes
package jsruntime
