package config

import "time"

// MonitorConfig defines configuration for the change detection run
type MonitorConfig struct {
	TargetURLs           []string `json:"target_urls,omitempty" yaml:"target_urls,omitempty" validate:"omitempty,dive,url"`
	HTTPTimeoutSeconds   int      `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	MaxConcurrentChecks  int      `json:"max_concurrent_checks,omitempty" yaml:"max_concurrent_checks,omitempty" validate:"omitempty,min=1"`
	MaxContentSize       int      `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"` // Max fetched body size in bytes
	CheckIntervalSeconds int      `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"omitempty,min=1"`
	RunTimeoutSeconds    int      `json:"run_timeout_seconds,omitempty" yaml:"run_timeout_seconds,omitempty" validate:"omitempty,min=1"` // 0 disables the run deadline
	MaxCycles            int      `json:"max_cycles,omitempty" yaml:"max_cycles,omitempty" validate:"omitempty,min=0"`
	UserAgent            string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		TargetURLs:           []string{},
		HTTPTimeoutSeconds:   15,
		MaxConcurrentChecks:  5,
		MaxContentSize:       1048576, // 1MB
		CheckIntervalSeconds: 3600,    // 1 hour
		RunTimeoutSeconds:    0,
		MaxCycles:            0,       // 0 means run indefinitely
		UserAgent:            "Mozilla/5.0 (compatible; SiteMonitorBot/1.0)",
	}
}

// HTTPTimeout returns the fetch timeout as a duration.
func (c MonitorConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// CheckInterval returns the automated-mode cycle interval as a duration.
func (c MonitorConfig) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}

// RunTimeout returns the per-run deadline, zero when disabled.
func (c MonitorConfig) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}
