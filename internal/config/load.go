package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultAddr is the default HTTP listen address.
const DefaultAddr = ":8090"

// fileConfig mirrors the optional config.yaml layout.
type fileConfig struct {
	Addr    string `yaml:"addr"`
	LogDir  string `yaml:"logDir"`
	Auth    struct {
		Secret string `yaml:"secret"`
	} `yaml:"auth"`
	Timing struct {
		InvokeRetryBudget int    `yaml:"invokeRetryBudget"`
		InvokeRetryDelay  string `yaml:"invokeRetryDelay"`
		InvokeCallTimeout string `yaml:"invokeCallTimeout"`
		HeartbeatInterval string `yaml:"heartbeatInterval"`
		HeartbeatTimeout  string `yaml:"heartbeatTimeout"`
		SessionSendBuffer int    `yaml:"sessionSendBuffer"`
		MaxSessions       int    `yaml:"maxSessions"`
	} `yaml:"timing"`
}

// Load merges baseline defaults, the optional config.yaml, and MCC_* env
// overrides, in that order.
func Load() (*Config, error) {
	return LoadPath("config.yaml")
}

// LoadPath is Load with an explicit config file path.
func LoadPath(path string) (*Config, error) {
	cfg := &Config{
		Addr:   DefaultAddr,
		LogDir: "logs",
		Timing: LoadTimingBaseline(),
	}

	if _, err := os.Stat(path); err == nil {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyFile overlays values from a YAML config file.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.LogDir != "" {
		cfg.LogDir = fc.LogDir
	}
	if fc.Auth.Secret != "" {
		cfg.AuthSecret = fc.Auth.Secret
	}

	t := cfg.Timing
	if fc.Timing.InvokeRetryBudget > 0 {
		t.InvokeRetryBudget = fc.Timing.InvokeRetryBudget
	}
	if fc.Timing.SessionSendBuffer > 0 {
		t.SessionSendBuffer = fc.Timing.SessionSendBuffer
	}
	if fc.Timing.MaxSessions > 0 {
		t.MaxSessions = fc.Timing.MaxSessions
	}

	durations := []struct {
		raw string
		dst *time.Duration
	}{
		{fc.Timing.InvokeRetryDelay, &t.InvokeRetryDelay},
		{fc.Timing.InvokeCallTimeout, &t.InvokeCallTimeout},
		{fc.Timing.HeartbeatInterval, &t.HeartbeatInterval},
		{fc.Timing.HeartbeatTimeout, &t.HeartbeatTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		dur, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", d.raw, err)
		}
		*d.dst = dur
	}

	return nil
}

// applyEnvOverrides applies MCC_* environment variables to the config.
// Env wins over the config file so deployments can pin single values.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("MCC_ADDR"); val != "" {
		cfg.Addr = val
	}
	if val := os.Getenv("MCC_LOG_DIR"); val != "" {
		cfg.LogDir = val
	}
	if val := os.Getenv("MCC_AUTH_SECRET"); val != "" {
		cfg.AuthSecret = val
	}

	t := cfg.Timing
	if val := os.Getenv("MCC_TIMING_INVOKE_RETRY_BUDGET"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			t.InvokeRetryBudget = n
		}
	}
	if val := os.Getenv("MCC_TIMING_INVOKE_RETRY_DELAY"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			t.InvokeRetryDelay = duration
		}
	}
	if val := os.Getenv("MCC_TIMING_INVOKE_CALL_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			t.InvokeCallTimeout = duration
		}
	}
	if val := os.Getenv("MCC_TIMING_HEARTBEAT_INTERVAL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			t.HeartbeatInterval = duration
		}
	}
	if val := os.Getenv("MCC_TIMING_HEARTBEAT_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			t.HeartbeatTimeout = duration
		}
	}
	if val := os.Getenv("MCC_TIMING_SESSION_SEND_BUFFER"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			t.SessionSendBuffer = n
		}
	}
	if val := os.Getenv("MCC_TIMING_MAX_SESSIONS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			t.MaxSessions = n
		}
	}
}
