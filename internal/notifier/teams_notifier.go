package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/akonuma/competitor-monitor/internal/config"
	"github.com/akonuma/competitor-monitor/internal/models"
	"github.com/rs/zerolog"
)

// TeamsNotifier delivers change reports to a Microsoft Teams incoming
// webhook. An empty webhook URL disables delivery without being an error.
type TeamsNotifier struct {
	logger           zerolog.Logger
	httpClient       *http.Client
	webhookURL       string
	maxSummaryLength int
}

// NewTeamsNotifier creates a new TeamsNotifier. A nil httpClient gets a
// default client with the configured notify timeout.
func NewTeamsNotifier(cfg config.NotificationConfig, logger zerolog.Logger, httpClient *http.Client) (*TeamsNotifier, error) {
	componentLogger := logger.With().Str("component", "TeamsNotifier").Logger()

	if cfg.TeamsWebhookURL != "" {
		if _, err := url.ParseRequestURI(cfg.TeamsWebhookURL); err != nil {
			return nil, common.NewValidationError("teams_webhook_url", cfg.TeamsWebhookURL, "invalid webhook URL")
		}
	}

	if httpClient == nil {
		timeout := time.Duration(cfg.NotifyTimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &TeamsNotifier{
		logger:           componentLogger,
		httpClient:       httpClient,
		webhookURL:       cfg.TeamsWebhookURL,
		maxSummaryLength: cfg.MaxSummaryLength,
	}, nil
}

// Notify posts one MessageCard covering all reports of the run.
func (tn *TeamsNotifier) Notify(ctx context.Context, reports []models.ChangeReport) error {
	if len(reports) == 0 {
		return nil
	}
	if tn.webhookURL == "" {
		tn.logger.Info().Int("report_count", len(reports)).Msg("Webhook URL is empty, skipping notification")
		return nil
	}

	card := FormatChangeReportCard(reports, tn.maxSummaryLength, time.Now())
	payload, err := json.Marshal(card)
	if err != nil {
		return common.WrapError(err, "marshaling Teams payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tn.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return common.WrapError(err, "creating Teams webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tn.httpClient.Do(req)
	if err != nil {
		return common.NewNetworkError(tn.webhookURL, "Teams webhook request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return common.NewHTTPErrorWithURL(resp.StatusCode, string(snippet), tn.webhookURL)
	}

	tn.logger.Info().Int("report_count", len(reports)).Msg("Teams notification sent")
	return nil
}
