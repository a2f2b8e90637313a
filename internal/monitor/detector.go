package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/akonuma/competitor-monitor/internal/config"
	"github.com/akonuma/competitor-monitor/internal/datastore"
	"github.com/akonuma/competitor-monitor/internal/models"
	"github.com/rs/zerolog"
)

// NotificationSender delivers a run's change reports to an external channel.
// A delivery failure is logged, never retried, and never rolls back state.
type NotificationSender interface {
	Notify(ctx context.Context, reports []models.ChangeReport) error
}

// RunSummary aggregates the per-status counts of one detection run.
type RunSummary struct {
	Total     int
	New       int
	Unchanged int
	Changed   int
	Failed    int
	Reports   []models.ChangeReport
	StartedAt time.Time
	Duration  time.Duration
}

// Detector orchestrates one detection run over the configured URL set:
// fan-out across a bounded worker pool, fan-in through a single consumer
// that applies state updates, one persistence pass at the end, and at most
// one notification per run.
type Detector struct {
	logger       zerolog.Logger
	cfg          config.MonitorConfig
	checker      *URLChecker
	fingerprints *datastore.FingerprintStore
	cache        *datastore.ContentCache
	notifier     NotificationSender
	targetURLs   []string
}

// DetectorBuilder provides a fluent interface for creating Detector
type DetectorBuilder struct {
	logger       zerolog.Logger
	cfg          config.MonitorConfig
	checker      *URLChecker
	fingerprints *datastore.FingerprintStore
	cache        *datastore.ContentCache
	notifier     NotificationSender
	targetURLs   []string
}

// NewDetectorBuilder creates a new builder
func NewDetectorBuilder() *DetectorBuilder {
	return &DetectorBuilder{
		logger: zerolog.Nop(),
		cfg:    config.NewDefaultMonitorConfig(),
	}
}

// WithLogger sets the logger
func (b *DetectorBuilder) WithLogger(logger zerolog.Logger) *DetectorBuilder {
	b.logger = logger
	return b
}

// WithMonitorConfig sets the monitor configuration
func (b *DetectorBuilder) WithMonitorConfig(cfg config.MonitorConfig) *DetectorBuilder {
	b.cfg = cfg
	return b
}

// WithURLChecker sets the per-URL checker
func (b *DetectorBuilder) WithURLChecker(checker *URLChecker) *DetectorBuilder {
	b.checker = checker
	return b
}

// WithStores sets the fingerprint store and content cache
func (b *DetectorBuilder) WithStores(fingerprints *datastore.FingerprintStore, cache *datastore.ContentCache) *DetectorBuilder {
	b.fingerprints = fingerprints
	b.cache = cache
	return b
}

// WithNotifier sets the notification sender
func (b *DetectorBuilder) WithNotifier(notifier NotificationSender) *DetectorBuilder {
	b.notifier = notifier
	return b
}

// WithTargetURLs sets the URL list for the run
func (b *DetectorBuilder) WithTargetURLs(urls []string) *DetectorBuilder {
	b.targetURLs = urls
	return b
}

// Build creates a new Detector instance
func (b *DetectorBuilder) Build() (*Detector, error) {
	if b.checker == nil {
		return nil, common.NewValidationError("url_checker", nil, "URL checker cannot be nil")
	}
	if b.fingerprints == nil || b.cache == nil {
		return nil, common.NewValidationError("stores", nil, "fingerprint store and content cache are required")
	}
	if len(b.targetURLs) == 0 {
		return nil, common.NewValidationError("target_urls", b.targetURLs, "at least one target URL is required")
	}

	return &Detector{
		logger:       b.logger.With().Str("component", "Detector").Logger(),
		cfg:          b.cfg,
		checker:      b.checker,
		fingerprints: b.fingerprints,
		cache:        b.cache,
		notifier:     b.notifier,
		targetURLs:   b.targetURLs,
	}, nil
}

// Run executes one finite detection pass over the target URLs. Workers check
// URLs concurrently up to the configured limit; a single consumer applies
// state updates so each URL's fingerprint and snapshot are written exactly
// once. The fingerprint store is persisted once, after all URLs are done.
// Cancellation stops launching new checks; completed work is still persisted.
func (d *Detector) Run(ctx context.Context) (*RunSummary, error) {
	startedAt := time.Now()
	d.logger.Info().Int("url_count", len(d.targetURLs)).Msg("Detection run started")

	if timeout := d.cfg.RunTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := d.fingerprints.Load(); err != nil {
		return nil, common.WrapError(err, "loading fingerprint store")
	}

	summary := &RunSummary{
		Total:     len(d.targetURLs),
		StartedAt: startedAt,
	}

	results := make(chan CheckResult, len(d.targetURLs))
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for result := range results {
			d.applyResult(summary, result)
		}
	}()

	// Skipped URLs are counted outside the consumer to keep summary
	// mutation single-writer while workers are in flight.
	skipped := 0
	semaphore := make(chan struct{}, d.maxConcurrentChecks())
	var wg sync.WaitGroup
	for _, url := range d.targetURLs {
		select {
		case <-ctx.Done():
			d.logger.Warn().Err(ctx.Err()).Str("url", url).Msg("Run cancelled, remaining URLs skipped")
			skipped++
			continue
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results <- d.checker.Check(ctx, u)
		}(url)
	}

	wg.Wait()
	close(results)
	<-consumerDone
	summary.Failed += skipped

	// One wholesale write per run. Failure is fatal: rerunning against a
	// stale store would re-notify everything this run already reported.
	if err := d.fingerprints.Save(); err != nil {
		return nil, common.WrapError(err, "persisting fingerprint store")
	}

	// Delivery is decoupled from the run deadline: an expired run still
	// reports whatever it completed.
	d.notify(context.WithoutCancel(ctx), summary)

	summary.Duration = time.Since(startedAt)
	d.logger.Info().
		Int("new", summary.New).
		Int("unchanged", summary.Unchanged).
		Int("changed", summary.Changed).
		Int("failed", summary.Failed).
		Dur("duration", summary.Duration).
		Msg("Detection run finished")

	return summary, nil
}

// applyResult folds one check result into the run summary and applies its
// state update. Runs on the single consumer goroutine.
func (d *Detector) applyResult(summary *RunSummary, result CheckResult) {
	switch result.Status {
	case models.StatusNew:
		summary.New++
	case models.StatusUnchanged:
		summary.Unchanged++
	case models.StatusChanged:
		summary.Changed++
	case models.StatusFetchFailed:
		summary.Failed++
		return
	}

	if result.Snapshot == nil {
		return
	}

	stored, known := d.fingerprints.Get(result.URL)
	if known && stored == result.Snapshot.Fingerprint {
		return
	}

	// Snapshot first, fingerprint second: if the snapshot write fails the
	// stored fingerprint stays untouched, so the URL is re-examined next run
	// instead of producing a diff against a stale snapshot.
	if err := d.cache.SaveSnapshot(result.URL, result.Snapshot.NormalizedText); err != nil {
		d.logger.Error().Err(err).Str("url", result.URL).Msg("Saving content snapshot failed, fingerprint not updated")
		return
	}
	d.fingerprints.Set(result.URL, result.Snapshot.Fingerprint)

	if result.Report != nil {
		summary.Reports = append(summary.Reports, *result.Report)
	}
}

// notify hands the run's reports to the notifier, at most once and only when
// there is something to report.
func (d *Detector) notify(ctx context.Context, summary *RunSummary) {
	if len(summary.Reports) == 0 {
		d.logger.Info().Msg("No changes detected, skipping notification")
		return
	}
	if d.notifier == nil {
		d.logger.Warn().Int("report_count", len(summary.Reports)).Msg("No notifier configured, dropping reports")
		return
	}

	if err := d.notifier.Notify(ctx, summary.Reports); err != nil {
		d.logger.Error().Err(err).Int("report_count", len(summary.Reports)).Msg("Notification delivery failed")
	}
}

// maxConcurrentChecks returns the worker pool bound, defaulting to 1.
func (d *Detector) maxConcurrentChecks() int {
	if d.cfg.MaxConcurrentChecks <= 0 {
		return 1
	}
	return d.cfg.MaxConcurrentChecks
}
