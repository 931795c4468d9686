package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBaselineValues(t *testing.T) {
	timing := LoadTimingBaseline()

	if timing.InvokeRetryBudget != 10 {
		t.Errorf("InvokeRetryBudget = %d, want 10", timing.InvokeRetryBudget)
	}
	if timing.InvokeRetryDelay != 500*time.Millisecond {
		t.Errorf("InvokeRetryDelay = %v, want 500ms", timing.InvokeRetryDelay)
	}
	if timing.InvokeCallTimeout != 5*time.Second {
		t.Errorf("InvokeCallTimeout = %v, want 5s", timing.InvokeCallTimeout)
	}
	if timing.HeartbeatInterval != 15*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 15s", timing.HeartbeatInterval)
	}
	if timing.HeartbeatTimeout != 45*time.Second {
		t.Errorf("HeartbeatTimeout = %v, want 45s", timing.HeartbeatTimeout)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.AuthSecret != "" {
		t.Errorf("AuthSecret = %q, want empty", cfg.AuthSecret)
	}
	if cfg.Timing.InvokeRetryBudget != 10 {
		t.Errorf("InvokeRetryBudget = %d, want baseline 10", cfg.Timing.InvokeRetryBudget)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MCC_ADDR", ":9999")
	t.Setenv("MCC_TIMING_INVOKE_RETRY_BUDGET", "3")
	t.Setenv("MCC_TIMING_INVOKE_RETRY_DELAY", "50ms")

	cfg, err := LoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want env override", cfg.Addr)
	}
	if cfg.Timing.InvokeRetryBudget != 3 {
		t.Errorf("InvokeRetryBudget = %d, want 3", cfg.Timing.InvokeRetryBudget)
	}
	if cfg.Timing.InvokeRetryDelay != 50*time.Millisecond {
		t.Errorf("InvokeRetryDelay = %v, want 50ms", cfg.Timing.InvokeRetryDelay)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
addr: ":8085"
logDir: "/tmp/mcc-logs"
auth:
  secret: "test-secret"
timing:
  invokeRetryBudget: 5
  invokeRetryDelay: 100ms
  heartbeatInterval: 2s
  heartbeatTimeout: 6s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}

	if cfg.Addr != ":8085" {
		t.Errorf("Addr = %q, want file value", cfg.Addr)
	}
	if cfg.AuthSecret != "test-secret" {
		t.Errorf("AuthSecret = %q, want file value", cfg.AuthSecret)
	}
	if cfg.Timing.InvokeRetryBudget != 5 {
		t.Errorf("InvokeRetryBudget = %d, want 5", cfg.Timing.InvokeRetryBudget)
	}
	if cfg.Timing.InvokeRetryDelay != 100*time.Millisecond {
		t.Errorf("InvokeRetryDelay = %v, want 100ms", cfg.Timing.InvokeRetryDelay)
	}
	if cfg.Timing.HeartbeatTimeout != 6*time.Second {
		t.Errorf("HeartbeatTimeout = %v, want 6s", cfg.Timing.HeartbeatTimeout)
	}
	// Unset file fields keep baseline values.
	if cfg.Timing.InvokeCallTimeout != 5*time.Second {
		t.Errorf("InvokeCallTimeout = %v, want baseline 5s", cfg.Timing.InvokeCallTimeout)
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":8085\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("MCC_ADDR", ":7777")

	cfg, err := LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}
	if cfg.Addr != ":7777" {
		t.Errorf("Addr = %q, want env to win over file", cfg.Addr)
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  invokeRetryDelay: \"oops\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := LoadPath(path); err == nil {
		t.Error("LoadPath accepted an invalid duration")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Addr: DefaultAddr, Timing: LoadTimingBaseline()}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"nil timing", func(c *Config) { c.Timing = nil }},
		{"zero budget", func(c *Config) { c.Timing.InvokeRetryBudget = 0 }},
		{"negative delay", func(c *Config) { c.Timing.InvokeRetryDelay = -time.Second }},
		{"zero call timeout", func(c *Config) { c.Timing.InvokeCallTimeout = 0 }},
		{"heartbeat timeout below interval", func(c *Config) { c.Timing.HeartbeatTimeout = c.Timing.HeartbeatInterval }},
		{"zero send buffer", func(c *Config) { c.Timing.SessionSendBuffer = 0 }},
		{"zero max sessions", func(c *Config) { c.Timing.MaxSessions = 0 }},
	}

	if err := Validate(valid()); err != nil {
		t.Fatalf("baseline config rejected: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}
