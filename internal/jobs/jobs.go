package jobs

import (
	"time"

	"lingolens/internal/cache"
	"lingolens/internal/service"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler runs the periodic background refresh tasks
type Scheduler struct {
	scheduler   *gocron.Scheduler
	cache       *cache.Cache
	leaderboard *service.LeaderboardService
	logger      *zap.Logger
}

// New creates a new scheduler instance
func New(c *cache.Cache, leaderboard *service.LeaderboardService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		cache:       c,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Start schedules the jobs and runs them asynchronously
func (s *Scheduler) Start(sweepInterval, leaderboardInterval time.Duration) {
	s.scheduler.Every(sweepInterval).Do(s.sweepCache)
	s.scheduler.Every(leaderboardInterval).Do(s.leaderboard.Warm)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweepCache() {
	removed := s.cache.Sweep()
	if removed > 0 {
		s.logger.Info("cache sweep", zap.Int("removed", removed))
	}
}
