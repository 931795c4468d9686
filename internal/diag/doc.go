// Package diag implements the diagnostic sink for the Map Console
// Container.
//
// Sinks write JSONL records to a rotated log file. Console components use a
// per-component sink to report unexpected invocation failures; the
// dispatcher uses one to audit northbound intents. Sink writes never fail
// the caller: a record that cannot be written is reported on stderr and
// dropped.
package diag
