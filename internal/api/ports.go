package api

// Ports (interfaces) for API server dependencies.

import (
	"github.com/map-console/mcc/internal/console"
)

// DispatcherPort is the minimal interface the API needs from the
// dispatcher.
type DispatcherPort = console.DispatcherPort

// Compile-time assertion for port conformance.
var _ DispatcherPort = (*console.Dispatcher)(nil)
