// Package config implements the configuration store for the Map Console
// Container.
//
// Configuration is resolved in three layers: baseline defaults, an
// optional config.yaml, then MCC_* environment overrides. Timing values govern
// the bridge heartbeat, the per-attempt call timeout, and the invocation
// retry policy used by console components.
//
// References:
//   - Console Timing §2: Invocation retry budget and delay
//   - Console Timing §3: Bridge heartbeat and call timeout
package config
