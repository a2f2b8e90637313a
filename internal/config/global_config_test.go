package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, "onetime", cfg.Mode)
	assert.Equal(t, 15, cfg.MonitorConfig.HTTPTimeoutSeconds)
	assert.Equal(t, 5, cfg.MonitorConfig.MaxConcurrentChecks)
	assert.Equal(t, 20, cfg.DiffConfig.TruncationLimit)
	assert.NotEmpty(t, cfg.NormalizerConfig.RedactionRules)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
mode: automated
monitor_config:
  target_urls:
    - https://example.com
  http_timeout_seconds: 5
  max_concurrent_checks: 2
diff_config:
  truncation_limit: 7
notification_config:
  teams_webhook_url: https://outlook.office.com/webhook/abc
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "automated", cfg.Mode)
	assert.Equal(t, []string{"https://example.com"}, cfg.MonitorConfig.TargetURLs)
	assert.Equal(t, 5, cfg.MonitorConfig.HTTPTimeoutSeconds)
	assert.Equal(t, 2, cfg.MonitorConfig.MaxConcurrentChecks)
	assert.Equal(t, 7, cfg.DiffConfig.TruncationLimit)
	assert.Equal(t, "https://outlook.office.com/webhook/abc", cfg.NotificationConfig.TeamsWebhookURL)

	// Untouched sections keep defaults.
	assert.Equal(t, 16, cfg.StorageConfig.URLHashLength)
}

func TestLoadGlobalConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"monitor_config": {"user_agent": "TestBot/1.0"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "TestBot/1.0", cfg.MonitorConfig.UserAgent)
}

func TestLoadGlobalConfig_MissingExplicitPath(t *testing.T) {
	_, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_RejectsBadValues(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.Mode = "sometimes"
	assert.Error(t, ValidateConfig(cfg))

	cfg = NewDefaultGlobalConfig()
	cfg.MonitorConfig.MaxConcurrentChecks = -1
	assert.Error(t, ValidateConfig(cfg))

	cfg = NewDefaultGlobalConfig()
	cfg.NormalizerConfig.RedactionRules = []RedactionRule{{Name: "broken", Pattern: "[unclosed"}}
	assert.Error(t, ValidateConfig(cfg))

	cfg = NewDefaultGlobalConfig()
	cfg.NotificationConfig.TeamsWebhookURL = "not a url"
	assert.Error(t, ValidateConfig(cfg))
}
