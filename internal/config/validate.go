package config

import "fmt"

// Validate rejects configurations that would stall or spin the bridge.
func Validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}

	t := cfg.Timing
	if t == nil {
		return fmt.Errorf("timing configuration is required")
	}

	if t.InvokeRetryBudget <= 0 {
		return fmt.Errorf("invoke retry budget must be positive, got %d", t.InvokeRetryBudget)
	}
	if t.InvokeRetryDelay <= 0 {
		return fmt.Errorf("invoke retry delay must be positive, got %v", t.InvokeRetryDelay)
	}
	if t.InvokeCallTimeout <= 0 {
		return fmt.Errorf("invoke call timeout must be positive, got %v", t.InvokeCallTimeout)
	}
	if t.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat interval must be positive, got %v", t.HeartbeatInterval)
	}
	if t.HeartbeatTimeout <= t.HeartbeatInterval {
		return fmt.Errorf("heartbeat timeout %v must exceed interval %v", t.HeartbeatTimeout, t.HeartbeatInterval)
	}
	if t.SessionSendBuffer <= 0 {
		return fmt.Errorf("session send buffer must be positive, got %d", t.SessionSendBuffer)
	}
	if t.MaxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive, got %d", t.MaxSessions)
	}

	return nil
}
