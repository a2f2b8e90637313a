package monitor

import (
	"context"
	"io"
	"net/http"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/akonuma/competitor-monitor/internal/config"
	"github.com/rs/zerolog"
)

// ContentFetcher retrieves the raw content of a monitored URL. Fetch errors
// are non-fatal to a run; the affected URL is skipped and its prior state
// stays authoritative.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches page content over HTTP with a per-request timeout and
// a bounded response body size.
type HTTPFetcher struct {
	httpClient     *http.Client
	logger         zerolog.Logger
	userAgent      string
	maxContentSize int
}

// NewHTTPFetcher creates a new HTTPFetcher from monitor configuration.
func NewHTTPFetcher(cfg config.MonitorConfig, logger zerolog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout(),
		},
		logger:         logger.With().Str("component", "HTTPFetcher").Logger(),
		userAgent:      cfg.UserAgent,
		maxContentSize: cfg.MaxContentSize,
	}
}

// Fetch retrieves the body of url. Non-2xx statuses are errors.
func (hf *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, common.WrapErrorf(err, "creating request for %s", url)
	}
	if hf.userAgent != "" {
		req.Header.Set("User-Agent", hf.userAgent)
	}

	resp, err := hf.httpClient.Do(req)
	if err != nil {
		return nil, common.NewNetworkError(url, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a little of the body for error context, then discard.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		hf.logger.Warn().Str("url", url).Int("status_code", resp.StatusCode).Msg("Received non-2xx HTTP status")
		return nil, common.NewHTTPErrorWithURL(resp.StatusCode, string(snippet), url)
	}

	limit := int64(hf.maxContentSize)
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, common.NewNetworkError(url, "reading response body", err)
	}
	if int64(len(body)) > limit {
		return nil, common.NewError("content too large for %s: exceeds %d bytes", url, hf.maxContentSize)
	}

	return body, nil
}
