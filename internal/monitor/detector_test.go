package monitor

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/akonuma/competitor-monitor/internal/config"
	"github.com/akonuma/competitor-monitor/internal/datastore"
	"github.com/akonuma/competitor-monitor/internal/differ"
	"github.com/akonuma/competitor-monitor/internal/models"
	"github.com/akonuma/competitor-monitor/internal/normalizer"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned content per URL, or an error.
type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[string]string
	errors  map[string]error
	fetched []string
}

func (ff *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.fetched = append(ff.fetched, url)
	if err, ok := ff.errors[url]; ok {
		return nil, err
	}
	content, ok := ff.pages[url]
	if !ok {
		return nil, common.NewNetworkError(url, "no canned content", nil)
	}
	return []byte(content), nil
}

// recordingNotifier captures the reports it is handed.
type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]models.ChangeReport
	err   error
}

func (rn *recordingNotifier) Notify(_ context.Context, reports []models.ChangeReport) error {
	rn.mu.Lock()
	defer rn.mu.Unlock()
	rn.calls = append(rn.calls, reports)
	return rn.err
}

type detectorFixture struct {
	fetcher      *fakeFetcher
	notifier     *recordingNotifier
	fingerprints *datastore.FingerprintStore
	cache        *datastore.ContentCache
	detector     *Detector
}

func newDetectorFixture(t *testing.T, urls []string) *detectorFixture {
	t.Helper()

	dir := t.TempDir()
	fetcher := &fakeFetcher{pages: map[string]string{}, errors: map[string]error{}}
	sink := &recordingNotifier{}

	fingerprints := datastore.NewFingerprintStore(filepath.Join(dir, "hashes.json"), zerolog.Nop())
	cache := datastore.NewContentCache(filepath.Join(dir, "cache"), datastore.NewURLHashGenerator(16), zerolog.Nop())

	contentNormalizer, err := normalizer.NewNormalizer(config.NewDefaultNormalizerConfig())
	require.NoError(t, err)

	checker := NewURLChecker(
		zerolog.Nop(),
		fetcher,
		contentNormalizer,
		datastore.NewContentHasher(),
		differ.NewDiffSummarizer(),
		fingerprints,
		cache,
		10,
	)

	monitorCfg := config.NewDefaultMonitorConfig()
	monitorCfg.MaxConcurrentChecks = 3

	detector, err := NewDetectorBuilder().
		WithMonitorConfig(monitorCfg).
		WithURLChecker(checker).
		WithStores(fingerprints, cache).
		WithNotifier(sink).
		WithTargetURLs(urls).
		Build()
	require.NoError(t, err)

	return &detectorFixture{
		fetcher:      fetcher,
		notifier:     sink,
		fingerprints: fingerprints,
		cache:        cache,
		detector:     detector,
	}
}

func TestDetectorBuilder_RequiresChecker(t *testing.T) {
	_, err := NewDetectorBuilder().WithTargetURLs([]string{"https://example.com"}).Build()
	assert.Error(t, err)
}

func TestRun_FirstObservationIsNewWithoutReport(t *testing.T) {
	url := "https://example.com"
	fx := newDetectorFixture(t, []string{url})
	fx.fetcher.pages[url] = "<p>Price: $10</p>"

	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.New)
	assert.Zero(t, summary.Changed)
	assert.Empty(t, summary.Reports)
	assert.Empty(t, fx.notifier.calls)

	_, known := fx.fingerprints.Get(url)
	assert.True(t, known)
}

func TestRun_IdempotentWhenContentStable(t *testing.T) {
	url := "https://example.com"
	fx := newDetectorFixture(t, []string{url})
	fx.fetcher.pages[url] = "<p>Stable content</p>"

	_, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Unchanged)
	assert.Empty(t, summary.Reports)
	assert.Empty(t, fx.notifier.calls)
}

func TestRun_ChangeProducesReportAndNotification(t *testing.T) {
	url := "https://example.com"
	fx := newDetectorFixture(t, []string{url})
	fx.fetcher.pages[url] = "<p>Price: $10</p><p>In stock</p>"

	_, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	fx.fetcher.pages[url] = "<p>Price: $12</p><p>In stock</p>"
	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Changed)
	require.Len(t, summary.Reports, 1)
	assert.Equal(t, url, summary.Reports[0].URL)
	assert.Contains(t, summary.Reports[0].Summary, "removed content:\n- Price: $10")
	assert.Contains(t, summary.Reports[0].Summary, "added content:\n- Price: $12")

	require.Len(t, fx.notifier.calls, 1)
	require.Len(t, fx.notifier.calls[0], 1)
}

func TestRun_VolatileTokenChangeIsNotReported(t *testing.T) {
	url := "https://example.com"
	fx := newDetectorFixture(t, []string{url})
	fx.fetcher.pages[url] = `<div data-timestamp="1699999999"><p>Body</p></div>`

	_, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	fx.fetcher.pages[url] = `<div data-timestamp="1700000001"><p>Body</p></div>`
	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Unchanged)
	assert.Empty(t, summary.Reports)
	assert.Empty(t, fx.notifier.calls)
}

func TestRun_FetchFailureLeavesStateUntouched(t *testing.T) {
	url := "https://example.com"
	fx := newDetectorFixture(t, []string{url})
	fx.fetcher.pages[url] = "<p>original</p>"

	_, err := fx.detector.Run(context.Background())
	require.NoError(t, err)
	original, _ := fx.fingerprints.Get(url)

	fx.fetcher.errors[url] = common.NewHTTPErrorWithURL(503, "unavailable", url)
	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Empty(t, summary.Reports)

	current, known := fx.fingerprints.Get(url)
	require.True(t, known)
	assert.Equal(t, original, current)
}

func TestRun_FailureOnOneURLDoesNotAbortOthers(t *testing.T) {
	good := "https://good.example.com"
	bad := "https://bad.example.com"
	fx := newDetectorFixture(t, []string{bad, good})
	fx.fetcher.pages[good] = "<p>content</p>"
	fx.fetcher.errors[bad] = common.NewNetworkError(bad, "connection refused", nil)

	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.New)
	assert.Equal(t, 1, summary.Failed)
}

func TestRun_MissingCacheYieldsSentinelReport(t *testing.T) {
	url := "https://example.com"
	fx := newDetectorFixture(t, []string{url})
	fx.fetcher.pages[url] = "<p>current</p>"

	// A prior fingerprint exists but the cache was never written.
	require.NoError(t, fx.fingerprints.Load())
	fx.fingerprints.Set(url, "stale-fingerprint")
	require.NoError(t, fx.fingerprints.Save())

	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Changed)
	require.Len(t, summary.Reports, 1)
	assert.Equal(t, MissingCacheSummary, summary.Reports[0].Summary)
}

func TestRun_NotifierFailureDoesNotFailRun(t *testing.T) {
	url := "https://example.com"
	fx := newDetectorFixture(t, []string{url})
	fx.fetcher.pages[url] = "<p>v1</p>"

	_, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	fx.notifier.err = common.NewNetworkError("webhook", "delivery failed", nil)
	fx.fetcher.pages[url] = "<p>v2</p>"

	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Changed)

	// State committed despite the notification failure: the next run sees
	// no change.
	fx.notifier.err = nil
	summary, err = fx.detector.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Unchanged)
}

func TestRun_ManyURLsWithBoundedWorkers(t *testing.T) {
	urls := []string{
		"https://a.example.com",
		"https://b.example.com",
		"https://c.example.com",
		"https://d.example.com",
		"https://e.example.com",
		"https://f.example.com",
	}
	fx := newDetectorFixture(t, urls)
	for _, u := range urls {
		fx.fetcher.pages[u] = "<p>content for " + u + "</p>"
	}

	summary, err := fx.detector.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(urls), summary.New)
	assert.Len(t, fx.fetcher.fetched, len(urls))
}

func TestRun_CancelledContextSkipsRemainingURLs(t *testing.T) {
	urls := []string{"https://a.example.com", "https://b.example.com"}
	fx := newDetectorFixture(t, urls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := fx.detector.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(urls), summary.Failed+summary.New+summary.Unchanged+summary.Changed)
}
