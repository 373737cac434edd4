package service

import (
	"errors"
	"fmt"

	"lingolens/internal/cache"
	"lingolens/internal/domain"
	"lingolens/internal/repository"

	"go.uber.org/zap"
)

// StreakProvider supplies the effective streak for the stats snapshot.
type StreakProvider interface {
	Current(userID int64) (int, error)
}

// StatsService composes word, quiz and profile records into the statistics
// snapshot the achievement evaluator consumes
type StatsService struct {
	wordRepo    repository.WordRepository
	quizRepo    repository.QuizRepository
	profileRepo repository.ProfileRepository
	streaks     StreakProvider
	cache       *cache.Cache
	logger      *zap.Logger
}

// NewStatsService creates a new stats service. The cache may be nil, in which
// case every call recomputes the snapshot.
func NewStatsService(
	wordRepo repository.WordRepository,
	quizRepo repository.QuizRepository,
	profileRepo repository.ProfileRepository,
	streaks StreakProvider,
	c *cache.Cache,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		wordRepo:    wordRepo,
		quizRepo:    quizRepo,
		profileRepo: profileRepo,
		streaks:     streaks,
		cache:       c,
		logger:      logger,
	}
}

// tolerateMissing turns a missing-table error into an empty count. Word and
// quiz tables may not exist yet on a fresh deployment.
func tolerateMissing(count int, err error) (int, error) {
	if err != nil && errors.Is(err, repository.ErrRelationMissing) {
		return 0, nil
	}
	return count, err
}

// GetUserStats returns the user's statistics snapshot, served from the TTL
// cache unless forceRefresh is set.
func (s *StatsService) GetUserStats(userID int64, forceRefresh bool) (*domain.UserStats, error) {
	if s.cache == nil {
		return s.buildStats(userID)
	}

	key := fmt.Sprintf("stats:user:%d", userID)
	value, err := s.cache.GetOrFetch(key, cache.CategoryStats, forceRefresh, func() (any, error) {
		return s.buildStats(userID)
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.UserStats), nil
}

func (s *StatsService) buildStats(userID int64) (*domain.UserStats, error) {
	stats := &domain.UserStats{Level: 1}

	uniqueWords, err := tolerateMissing(s.wordRepo.CountUniqueWords(userID))
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	stats.UniqueWords = uniqueWords

	translations, err := tolerateMissing(s.wordRepo.CountTranslations(userID))
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	stats.TotalTranslations = translations

	mastered, err := tolerateMissing(s.wordRepo.CountMastered(userID, domain.MasteryThreshold))
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	stats.MasteredWords = mastered

	// Average proficiency only means something when words exist.
	if uniqueWords > 0 {
		avg, err := s.wordRepo.AverageProficiency(userID)
		if err != nil && !errors.Is(err, repository.ErrRelationMissing) {
			return nil, fmt.Errorf("user stats: %w", err)
		}
		stats.AverageProficiency = avg
	}

	quizzes, err := tolerateMissing(s.quizRepo.CountSessions(userID))
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	stats.QuizCount = quizzes

	perfect, err := tolerateMissing(s.quizRepo.CountPerfect(userID))
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	stats.PerfectQuizCount = perfect

	streak, err := s.streaks.Current(userID)
	if err != nil {
		// A missing profile just means a brand-new user; anything else is
		// logged and degrades to 0.
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("failed to resolve current streak",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		streak = 0
	}
	stats.CurrentStreak = streak

	profile, err := s.profileRepo.GetProfile(userID)
	switch {
	case err == nil:
		stats.TotalXP = profile.TotalXP
		stats.Level = LevelFromXP(profile.TotalXP)
	case errors.Is(err, repository.ErrNotFound):
		// New user: level 1, zero XP.
	default:
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return stats, nil
}
