package config

import "time"

// TimingConfig maps the Console Timing baseline structure.
type TimingConfig struct {
	// Console Timing §2: Invocation retry policy.
	// A component invocation that fails because the target function is not
	// yet registered is retried up to InvokeRetryBudget times, sleeping
	// InvokeRetryDelay between attempts.
	InvokeRetryBudget int
	InvokeRetryDelay  time.Duration

	// Console Timing §3.1: Per-attempt deadline for the browser's answer.
	InvokeCallTimeout time.Duration

	// Console Timing §3.2: Bridge heartbeat. A session that misses pongs
	// for HeartbeatTimeout is reaped.
	HeartbeatInterval time.Duration
	HeartbeatTimeout  time.Duration

	// Console Timing §4: Session limits.
	SessionSendBuffer int
	MaxSessions       int
}

// Config holds the full service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// AuthSecret enables bearer-token auth when non-empty.
	AuthSecret string

	// LogDir is where diagnostic and audit logs are written.
	LogDir string

	Timing *TimingConfig
}

// LoadTimingBaseline returns the Console Timing baseline values.
func LoadTimingBaseline() *TimingConfig {
	return &TimingConfig{
		// Console Timing §2: budget 10 attempts, 500ms between attempts
		InvokeRetryBudget: 10,
		InvokeRetryDelay:  500 * time.Millisecond,

		// Console Timing §3.1: browser answer within 5s
		InvokeCallTimeout: 5 * time.Second,

		// Console Timing §3.2: ping every 15s, reap after 45s
		HeartbeatInterval: 15 * time.Second,
		HeartbeatTimeout:  45 * time.Second,

		// Console Timing §4: 64 queued frames, 32 concurrent consoles
		SessionSendBuffer: 64,
		MaxSessions:       32,
	}
}
