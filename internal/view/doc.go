// Package view implements the server-side UI components of the Map Console
// Container.
//
// Each attached browser session gets its own Set of views. A view owns one
// component invoker per bound script function and forwards rendering
// updates through it; delivery is best effort and failures never propagate
// to the dispatcher.
package view
