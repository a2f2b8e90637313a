package config

// NotificationConfig defines configuration for change notifications
type NotificationConfig struct {
	TeamsWebhookURL      string `json:"teams_webhook_url,omitempty" yaml:"teams_webhook_url,omitempty" validate:"omitempty,url"`
	NotifyTimeoutSeconds int    `json:"notify_timeout_seconds,omitempty" yaml:"notify_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	// MaxSummaryLength caps the rendered diff summary embedded per URL in
	// the webhook payload, in characters.
	MaxSummaryLength int `json:"max_summary_length,omitempty" yaml:"max_summary_length,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		TeamsWebhookURL:      "",
		NotifyTimeoutSeconds: 10,
		MaxSummaryLength:     1500,
	}
}
