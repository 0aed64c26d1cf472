package exporter

import (
	"context"
	"time"

	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/logger"
)

// Fetcher returns the current counters of the scraped service.
type Fetcher interface {
	Fetch(ctx context.Context) (models.Snapshot, error)
}

// Scraper periodically copies fetched snapshots into a Recorder.
type Scraper struct {
	fetcher  Fetcher
	recorder *Recorder
	interval time.Duration
	log      logger.Logger
}

// NewScraper creates a new Scraper.
func NewScraper(fetcher Fetcher, recorder *Recorder, interval time.Duration, log logger.Logger) *Scraper {
	if interval <= 0 {
		interval = constants.DefaultScrapeInterval
	}
	return &Scraper{
		fetcher:  fetcher,
		recorder: recorder,
		interval: interval,
		log:      log.WithFields(logger.Fields{"component": "scraper"}),
	}
}

// ScrapeOnce performs a single poll.
func (s *Scraper) ScrapeOnce(ctx context.Context) error {
	snap, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.recorder.ObserveFailure()
		return err
	}
	s.recorder.Observe(snap)
	return nil
}

// Run polls immediately and then on every tick until ctx is cancelled.
// Failures are logged and retried on the next tick.
func (s *Scraper) Run(ctx context.Context) error {
	s.log.Info(ctx, "Scraper started", logger.Fields{"interval": s.interval.String()})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.ScrapeOnce(ctx); err != nil && ctx.Err() == nil {
			s.log.Error(ctx, "Scrape failed", err)
		}

		select {
		case <-ctx.Done():
			s.log.Info(context.Background(), "Scraper stopped")
			return nil
		case <-ticker.C:
		}
	}
}
