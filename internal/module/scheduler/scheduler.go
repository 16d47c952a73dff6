package scheduler

import (
	"context"
	"time"

	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Scheduler runs the periodic maintenance jobs
type Scheduler struct {
	Database       *database.Database
	Metrics        *shared.Metrics
	Logger         zerolog.Logger
	poolStatsEvery time.Duration
	quit           chan struct{}
	done           chan struct{}
}

// NewScheduler creates a new Scheduler
func NewScheduler(cfg *koanf.Koanf, db *database.Database, metrics *shared.Metrics, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Database:       db,
		Metrics:        metrics,
		Logger:         logger,
		poolStatsEvery: cfg.Duration("scheduler.pool-stats-interval"),
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// StartPoolMonitor samples the connection pool until Stop is called
func (s *Scheduler) StartPoolMonitor() {
	defer close(s.done)
	if s.poolStatsEvery <= 0 {
		return
	}

	ticker := time.NewTicker(s.poolStatsEvery)
	defer ticker.Stop()

	s.CollectPoolStats()
	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.CollectPoolStats()
		}
	}
}

// CollectPoolStats pings the database once and publishes the pool counters
func (s *Scheduler) CollectPoolStats() {
	if s.Database.DB == nil {
		return
	}
	sqlDB, err := s.Database.DB.DB()
	if err != nil {
		s.Logger.Error().Err(err).Msg("Failed to read the database pool")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pingErr := sqlDB.PingContext(ctx)
	if pingErr != nil {
		s.Logger.Error().Err(pingErr).Msg("Database ping failed")
	}

	stats := sqlDB.Stats()
	s.Metrics.ObserveDBStats(stats, pingErr == nil)
	s.Logger.Debug().
		Int("open", stats.OpenConnections).
		Int("in_use", stats.InUse).
		Int("idle", stats.Idle).
		Int64("wait_count", stats.WaitCount).
		Msg("Database pool stats")
}

func (s *Scheduler) Stop() {
	close(s.quit)
	<-s.done
}
