package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/akonuma/competitor-monitor/internal/datastore"
	"github.com/akonuma/competitor-monitor/internal/differ"
	"github.com/akonuma/competitor-monitor/internal/models"
	"github.com/akonuma/competitor-monitor/internal/normalizer"
	"github.com/rs/zerolog"
)

// MissingCacheSummary is the report body used when a fingerprint mismatch
// cannot be explained because the prior snapshot is gone from the cache.
const MissingCacheSummary = "prior content unavailable (no cached snapshot to diff against)"

// CheckResult represents the outcome of checking one URL in one run.
type CheckResult struct {
	URL       string
	Status    models.URLStatus
	Snapshot  *models.PageSnapshot
	Report    *models.ChangeReport
	Err       error
	CheckedAt time.Time
}

// URLChecker classifies a single URL as new, unchanged or changed against
// the stored fingerprint, producing a change report where warranted. It
// reads shared state but never mutates it; state updates are applied by the
// detector's single consumer.
type URLChecker struct {
	logger       zerolog.Logger
	fetcher      ContentFetcher
	normalizer   *normalizer.Normalizer
	hasher       *datastore.ContentHasher
	summarizer   *differ.DiffSummarizer
	fingerprints *datastore.FingerprintStore
	cache        *datastore.ContentCache
	diffLimit    int
}

// NewURLChecker creates a new URLChecker.
func NewURLChecker(
	logger zerolog.Logger,
	fetcher ContentFetcher,
	contentNormalizer *normalizer.Normalizer,
	hasher *datastore.ContentHasher,
	summarizer *differ.DiffSummarizer,
	fingerprints *datastore.FingerprintStore,
	cache *datastore.ContentCache,
	diffLimit int,
) *URLChecker {
	return &URLChecker{
		logger:       logger.With().Str("component", "URLChecker").Logger(),
		fetcher:      fetcher,
		normalizer:   contentNormalizer,
		hasher:       hasher,
		summarizer:   summarizer,
		fingerprints: fingerprints,
		cache:        cache,
		diffLimit:    diffLimit,
	}
}

// Check runs the per-URL pipeline: fetch, normalize, fingerprint, compare.
func (uc *URLChecker) Check(ctx context.Context, url string) CheckResult {
	result := CheckResult{
		URL:       url,
		CheckedAt: time.Now(),
	}

	rawContent, err := uc.fetcher.Fetch(ctx, url)
	if err != nil {
		uc.logger.Warn().Err(err).Str("url", url).Msg("Fetch failed, skipping URL for this run")
		result.Status = models.StatusFetchFailed
		result.Err = err
		return result
	}

	normalizedText := uc.normalizer.Normalize(string(rawContent))
	snapshot := &models.PageSnapshot{
		URL:            url,
		RawContent:     rawContent,
		NormalizedText: normalizedText,
		Fingerprint:    uc.hasher.Fingerprint(normalizedText),
	}
	result.Snapshot = snapshot

	previous, known := uc.fingerprints.Get(url)
	if !known {
		uc.logger.Info().Str("url", url).Msg("First observation of URL")
		result.Status = models.StatusNew
		return result
	}

	if previous == snapshot.Fingerprint {
		result.Status = models.StatusUnchanged
		return result
	}

	return uc.classifyChange(result, snapshot)
}

// classifyChange resolves a fingerprint mismatch into a report, or demotes
// it to unchanged when the diff turns out to be empty.
func (uc *URLChecker) classifyChange(result CheckResult, snapshot *models.PageSnapshot) CheckResult {
	cachedLines, err := uc.cache.LoadSnapshot(snapshot.URL)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			uc.logger.Warn().Err(err).Str("url", snapshot.URL).Msg("Reading cached snapshot failed, reporting without diff")
		}
		result.Status = models.StatusChanged
		result.Report = &models.ChangeReport{
			URL:        snapshot.URL,
			Summary:    MissingCacheSummary,
			DetectedAt: result.CheckedAt,
		}
		return result
	}

	summary, err := uc.summarizer.Summarize(cachedLines, snapshot.NormalizedText, uc.diffLimit)
	if err != nil {
		result.Status = models.StatusChanged
		result.Err = common.WrapErrorf(err, "summarizing diff for %s", snapshot.URL)
		return result
	}

	if summary.Identical {
		// Fingerprint disagreed but the visible lines did not; the stored
		// fingerprint still gets refreshed so the disagreement does not
		// repeat next run.
		uc.logger.Debug().Str("url", snapshot.URL).Msg("Fingerprint mismatch with identical normalized text")
		result.Status = models.StatusUnchanged
		return result
	}

	uc.logger.Info().Str("url", snapshot.URL).Msg("Content change detected")
	result.Status = models.StatusChanged
	result.Report = &models.ChangeReport{
		URL:        snapshot.URL,
		Summary:    summary.Render(),
		DetectedAt: result.CheckedAt,
	}
	return result
}
