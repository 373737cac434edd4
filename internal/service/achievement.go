package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lingolens/internal/cache"
	"lingolens/internal/domain"
	"lingolens/internal/metrics"
	"lingolens/internal/repository"

	"go.uber.org/zap"
)

// DefaultCheckInterval is the minimum spacing between evaluator runs for one
// user; rapid UI refresh must not trigger a storm of identical checks.
const DefaultCheckInterval = 30 * time.Second

// StatsProvider supplies the statistics snapshot the evaluator checks
// definitions against.
type StatsProvider interface {
	GetUserStats(userID int64, forceRefresh bool) (*domain.UserStats, error)
}

// XPAwarder grants XP rewards for newly earned achievements.
type XPAwarder interface {
	AwardXP(userID int64, amount int, source domain.XPSource, sessionID *string) (*domain.LevelInfo, error)
}

// statValue resolves the statistic an achievement is measured against.
func statValue(def domain.AchievementDef, stats *domain.UserStats) int {
	metric := def.Metric
	if metric == domain.MetricNone {
		metric = def.Type.DefaultMetric()
	}

	switch metric {
	case domain.MetricUniqueWords:
		return stats.UniqueWords
	case domain.MetricMasteredWords:
		return stats.MasteredWords
	case domain.MetricTranslations:
		return stats.TotalTranslations
	case domain.MetricQuizzes:
		return stats.QuizCount
	case domain.MetricPerfectQuizzes:
		return stats.PerfectQuizCount
	case domain.MetricLevel:
		return stats.Level
	case domain.MetricStreak:
		return stats.CurrentStreak
	case domain.MetricTotalXP:
		return stats.TotalXP
	default:
		return 0
	}
}

// MeetsRequirement reports whether the stats snapshot satisfies the
// definition. Special achievements are always satisfied; they are one-time
// unlocks gated only by the earned-once constraint.
func MeetsRequirement(def domain.AchievementDef, stats *domain.UserStats) bool {
	if def.Type == domain.RequirementSpecial {
		return true
	}
	return statValue(def, stats) >= def.Requirement
}

// CalculateProgress returns 0-100 progress toward a definition. It reaches
// exactly 100 at the same boundary where MeetsRequirement becomes true.
func CalculateProgress(def domain.AchievementDef, stats *domain.UserStats) int {
	if MeetsRequirement(def, stats) {
		return 100
	}
	if def.Requirement <= 0 {
		return 100
	}
	return statValue(def, stats) * 100 / def.Requirement
}

// AchievementService evaluates and awards achievements
type AchievementService struct {
	achievementRepo repository.AchievementRepository
	stats           StatsProvider
	awarder         XPAwarder
	cache           *cache.Cache
	metrics         *metrics.Metrics
	logger          *zap.Logger

	// Best-effort process-local guards against redundant work. Correctness
	// rests on the storage-level UNIQUE(user_id, slug) constraint.
	mu         sync.Mutex
	processing map[int64]bool
	lastCheck  map[int64]time.Time
	interval   time.Duration
	now        func() time.Time
}

// NewAchievementService creates a new achievement evaluator. The cache and
// metrics arguments may be nil.
func NewAchievementService(
	achievementRepo repository.AchievementRepository,
	stats StatsProvider,
	awarder XPAwarder,
	c *cache.Cache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		stats:           stats,
		awarder:         awarder,
		cache:           c,
		metrics:         m,
		logger:          logger,
		processing:      make(map[int64]bool),
		lastCheck:       make(map[int64]time.Time),
		interval:        DefaultCheckInterval,
		now:             time.Now,
	}
}

// SetCheckInterval overrides the minimum spacing between evaluator runs for
// one user. A non-positive interval disables the throttle.
func (s *AchievementService) SetCheckInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
}

// tryAcquire claims the per-user processing slot. It fails when a check is
// already running for the user or one finished within the throttle interval.
func (s *AchievementService) tryAcquire(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processing[userID] {
		return false
	}
	if last, ok := s.lastCheck[userID]; ok && s.now().Sub(last) < s.interval {
		return false
	}
	s.processing[userID] = true
	return true
}

func (s *AchievementService) release(userID int64, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.processing, userID)
	if checked {
		s.lastCheck[userID] = s.now()
	}
}

// CheckAndAward evaluates all unearned definitions against the user's
// current statistics and records the newly satisfied ones exactly once.
// Returns the list of newly earned definitions; a suppressed (re-entrant or
// throttled) call returns an empty list.
func (s *AchievementService) CheckAndAward(userID int64) ([]domain.AchievementDef, error) {
	if !s.tryAcquire(userID) {
		return nil, nil
	}

	checked := false
	defer func() { s.release(userID, checked) }()

	defs, err := s.achievementRepo.ListDefinitions()
	if err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}

	earned, err := s.achievementRepo.ListEarned(userID)
	if err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}
	earnedSet := make(map[string]bool, len(earned))
	for _, e := range earned {
		earnedSet[e.Slug] = true
	}

	stats, err := s.stats.GetUserStats(userID, false)
	if err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}

	var newlyEarned []domain.AchievementDef
	for _, def := range defs {
		if earnedSet[def.Slug] {
			continue
		}
		if !MeetsRequirement(def, stats) {
			continue
		}

		inserted, err := s.achievementRepo.RecordEarned(userID, def.Slug)
		if err != nil {
			// A lost race on the uniqueness constraint is a no-op, not
			// a failure of the whole check.
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return newlyEarned, fmt.Errorf("check achievements: %w", err)
		}
		if !inserted {
			continue
		}

		s.logger.Info("achievement earned",
			zap.Int64("user_id", userID),
			zap.String("slug", def.Slug),
			zap.Int("reward_xp", def.RewardXP),
		)
		if s.metrics != nil {
			s.metrics.AchievementAwards.Inc()
		}

		if def.RewardXP > 0 {
			if _, err := s.awarder.AwardXP(userID, def.RewardXP, domain.XPSourceAchievement, nil); err != nil {
				// The achievement row is already committed; losing the
				// reward is logged and the check continues.
				s.logger.Error("failed to award achievement XP",
					zap.Int64("user_id", userID),
					zap.String("slug", def.Slug),
					zap.Error(err),
				)
			} else if s.metrics != nil {
				s.metrics.XPAwarded.Add(float64(def.RewardXP))
			}
		}

		newlyEarned = append(newlyEarned, def)
	}

	checked = true

	if len(newlyEarned) > 0 && s.cache != nil {
		s.cache.Invalidate(fmt.Sprintf("user:%d", userID))
	}

	return newlyEarned, nil
}

// ListWithProgress returns the full catalog annotated with the user's earned
// state and progress toward unearned definitions.
func (s *AchievementService) ListWithProgress(userID int64) ([]domain.AchievementStatus, error) {
	defs, err := s.achievementRepo.ListDefinitions()
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	earned, err := s.achievementRepo.ListEarned(userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	earnedAt := make(map[string]time.Time, len(earned))
	for _, e := range earned {
		earnedAt[e.Slug] = e.AchievedAt
	}

	stats, err := s.stats.GetUserStats(userID, false)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	statuses := make([]domain.AchievementStatus, 0, len(defs))
	for _, def := range defs {
		status := domain.AchievementStatus{AchievementDef: def}
		if at, ok := earnedAt[def.Slug]; ok {
			status.Earned = true
			at := at
			status.AchievedAt = &at
			status.Progress = 100
		} else {
			status.Progress = CalculateProgress(def, stats)
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
