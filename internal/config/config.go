// Package config provides centralized runtime configuration for LearnTime.
package config

import (
	"os"
	"time"
)

// Config holds runtime configuration. Values come from defaults with
// environment overrides; nothing here is persisted.
type Config struct {
	// HTTP configures the outbound webhook/analytics client.
	HTTP HTTPConfig

	// Daemon configures the delivery daemon.
	Daemon DaemonConfig

	// Analytics configures the event-tracking sink.
	Analytics AnalyticsConfig
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	// Default: 30s
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts.
	// Default: 3
	MaxRetries int

	// RetryDelays are the delays between retry attempts.
	// Default: [0s, 5s, 30s]
	RetryDelays []time.Duration
}

// DaemonConfig holds delivery daemon configuration.
type DaemonConfig struct {
	// CheckSpec is the cron expression (with seconds) for the due-trigger
	// sweep. Default: top of every minute.
	CheckSpec string

	// SleepThreshold is the gap between sweeps that indicates the host was
	// suspended; a sweep after a longer gap is skipped as stale.
	// Default: 1h
	SleepThreshold time.Duration
}

// AnalyticsConfig holds analytics sink configuration. An empty endpoint
// disables tracking.
type AnalyticsConfig struct {
	Endpoint string
	Token    string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:     30 * time.Second,
			MaxRetries:  3,
			RetryDelays: []time.Duration{0, 5 * time.Second, 30 * time.Second},
		},
		Daemon: DaemonConfig{
			CheckSpec:      "0 * * * * *",
			SleepThreshold: time.Hour,
		},
		Analytics: AnalyticsConfig{},
	}
}

// FromEnv returns the default configuration with environment overrides
// applied.
func FromEnv() *Config {
	cfg := Default()

	if v := os.Getenv("LEARNTIME_ANALYTICS_ENDPOINT"); v != "" {
		cfg.Analytics.Endpoint = v
	}
	if v := os.Getenv("LEARNTIME_ANALYTICS_TOKEN"); v != "" {
		cfg.Analytics.Token = v
	}
	if v := os.Getenv("LEARNTIME_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("LEARNTIME_DAEMON_CHECK_SPEC"); v != "" {
		cfg.Daemon.CheckSpec = v
	}

	return cfg
}
