package service

import (
	"fmt"

	"lingolens/internal/cache"
	"lingolens/internal/domain"
	"lingolens/internal/repository"

	"go.uber.org/zap"
)

// DefaultLeaderboardSize caps how many entries a leaderboard request returns.
const DefaultLeaderboardSize = 50

// LeaderboardService serves the global XP ranking
type LeaderboardService struct {
	profileRepo repository.ProfileRepository
	cache       *cache.Cache
	logger      *zap.Logger
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(profileRepo repository.ProfileRepository, c *cache.Cache, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{
		profileRepo: profileRepo,
		cache:       c,
		logger:      logger,
	}
}

// Top returns the highest-XP users, served from the cache unless forceRefresh
// is set.
func (s *LeaderboardService) Top(limit int, forceRefresh bool) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > DefaultLeaderboardSize {
		limit = DefaultLeaderboardSize
	}

	if s.cache == nil {
		return s.profileRepo.TopByXP(limit)
	}

	key := fmt.Sprintf("leaderboard:top:%d", limit)
	value, err := s.cache.GetOrFetch(key, cache.CategoryLeaderboard, forceRefresh, func() (any, error) {
		return s.profileRepo.TopByXP(limit)
	})
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return value.([]domain.LeaderboardEntry), nil
}

// Warm refreshes the cached default leaderboard; called by the background job.
func (s *LeaderboardService) Warm() {
	if _, err := s.Top(DefaultLeaderboardSize, true); err != nil {
		s.logger.Warn("leaderboard warm-up failed", zap.Error(err))
	}
}
