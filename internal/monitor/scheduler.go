package monitor

import (
	"context"
	"time"

	"github.com/akonuma/competitor-monitor/internal/config"
	"github.com/rs/zerolog"
)

// Scheduler repeats detection runs on a fixed interval until the context is
// cancelled or the configured cycle limit is reached.
type Scheduler struct {
	logger   zerolog.Logger
	cfg      config.MonitorConfig
	detector *Detector
}

// NewScheduler creates a new Scheduler.
func NewScheduler(logger zerolog.Logger, cfg config.MonitorConfig, detector *Detector) *Scheduler {
	return &Scheduler{
		logger:   logger.With().Str("component", "Scheduler").Logger(),
		cfg:      cfg,
		detector: detector,
	}
}

// Run executes detection cycles until cancellation. A failed cycle ends the
// loop: persistence failures must not repeat silently on an interval.
func (s *Scheduler) Run(ctx context.Context) error {
	interval := s.cfg.CheckInterval()
	if interval <= 0 {
		interval = time.Hour
	}

	cycle := 0
	for {
		cycle++
		s.logger.Info().Int("cycle", cycle).Msg("Starting detection cycle")

		if _, err := s.detector.Run(ctx); err != nil {
			s.logger.Error().Err(err).Int("cycle", cycle).Msg("Detection cycle failed")
			return err
		}

		if s.cfg.MaxCycles > 0 && cycle >= s.cfg.MaxCycles {
			s.logger.Info().Int("cycle", cycle).Msg("Reached configured cycle limit")
			return nil
		}

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Scheduler stopped")
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
