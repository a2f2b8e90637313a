package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/akonuma/competitor-monitor/internal/config"
	"github.com/akonuma/competitor-monitor/internal/datastore"
	"github.com/akonuma/competitor-monitor/internal/differ"
	"github.com/akonuma/competitor-monitor/internal/logger"
	"github.com/akonuma/competitor-monitor/internal/monitor"
	"github.com/akonuma/competitor-monitor/internal/normalizer"
	"github.com/akonuma/competitor-monitor/internal/notifier"
	"github.com/akonuma/competitor-monitor/internal/urlhandler"
	"github.com/rs/zerolog"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config: %v", err)
	}

	if flags.Mode != "" {
		gCfg.Mode = flags.Mode
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Invalid configuration: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Str("mode", gCfg.Mode).Msg("competitor-monitor starting")

	targetURLs, err := collectTargetURLs(gCfg, flags, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not build target URL list")
	}
	if len(targetURLs) == 0 {
		zLogger.Fatal().Msg("No target URLs configured; set monitor_config.target_urls or pass -file")
	}

	detector, err := buildDetector(gCfg, targetURLs, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not assemble change detector")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch gCfg.Mode {
	case "automated":
		scheduler := monitor.NewScheduler(zLogger, gCfg.MonitorConfig, detector)
		if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zLogger.Error().Err(err).Msg("Scheduler exited with error")
			os.Exit(1)
		}
	default:
		if _, err := detector.Run(ctx); err != nil {
			zLogger.Error().Err(err).Msg("Detection run failed")
			os.Exit(1)
		}
	}

	zLogger.Info().Msg("competitor-monitor finished")
}

// collectTargetURLs merges the config URL list with the optional targets
// file, normalized and deduplicated.
func collectTargetURLs(gCfg *config.GlobalConfig, flags AppFlags, zLogger zerolog.Logger) ([]string, error) {
	urls := append([]string{}, gCfg.MonitorConfig.TargetURLs...)

	if flags.TargetsFile != "" {
		fileURLs, err := urlhandler.ReadURLsFromFile(flags.TargetsFile, zLogger)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fileURLs...)
	}

	return urlhandler.NormalizeURLSlice(urls), nil
}

// buildDetector wires the normalizer, stores, differ, fetcher and notifier
// into a Detector.
func buildDetector(gCfg *config.GlobalConfig, targetURLs []string, zLogger zerolog.Logger) (*monitor.Detector, error) {
	contentNormalizer, err := normalizer.NewNormalizer(gCfg.NormalizerConfig)
	if err != nil {
		return nil, err
	}

	hashGenerator := datastore.NewURLHashGenerator(gCfg.StorageConfig.URLHashLength)
	fingerprints := datastore.NewFingerprintStore(gCfg.StorageConfig.FingerprintFilePath, zLogger)
	cache := datastore.NewContentCache(gCfg.StorageConfig.ContentCacheDir, hashGenerator, zLogger)

	teamsNotifier, err := notifier.NewTeamsNotifier(gCfg.NotificationConfig, zLogger, nil)
	if err != nil {
		return nil, err
	}

	checker := monitor.NewURLChecker(
		zLogger,
		monitor.NewHTTPFetcher(gCfg.MonitorConfig, zLogger),
		contentNormalizer,
		datastore.NewContentHasher(),
		differ.NewDiffSummarizer(),
		fingerprints,
		cache,
		gCfg.DiffConfig.TruncationLimit,
	)

	return monitor.NewDetectorBuilder().
		WithLogger(zLogger).
		WithMonitorConfig(gCfg.MonitorConfig).
		WithURLChecker(checker).
		WithStores(fingerprints, cache).
		WithNotifier(teamsNotifier).
		WithTargetURLs(targetURLs).
		Build()
}
