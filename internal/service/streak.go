package service

import (
	"fmt"
	"time"

	"lingolens/internal/domain"
	"lingolens/internal/repository"

	"go.uber.org/zap"
)

// StreakService tracks consecutive-day activity streaks
type StreakService struct {
	profileRepo repository.ProfileRepository
	location    *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

// NewStreakService creates a new streak service. Calendar days are evaluated
// in the given location.
func NewStreakService(profileRepo repository.ProfileRepository, location *time.Location, logger *zap.Logger) *StreakService {
	if location == nil {
		location = time.UTC
	}
	return &StreakService{
		profileRepo: profileRepo,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

// dayNumber collapses a timestamp to a calendar-day ordinal in the service's
// location, so day arithmetic survives DST transitions.
func (s *StreakService) dayNumber(t time.Time) int {
	local := t.In(s.location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / 86400)
}

// UpdateStreak records activity for today. Yesterday's activity extends the
// streak, today's is a no-op (idempotent per calendar day), and anything
// older resets the streak to 1.
func (s *StreakService) UpdateStreak(userID int64) (*domain.StreakResult, error) {
	if err := s.profileRepo.EnsureProfile(userID); err != nil {
		return nil, fmt.Errorf("update streak: %w", err)
	}

	profile, err := s.profileRepo.GetProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("update streak: %w", err)
	}

	now := s.now()

	// First ever activity
	if profile.LastActivityAt == nil {
		if err := s.profileRepo.UpdateStreak(userID, 1, now); err != nil {
			return nil, fmt.Errorf("update streak: %w", err)
		}
		return &domain.StreakResult{NewStreak: 1, StreakIncreased: true}, nil
	}

	gap := s.dayNumber(now) - s.dayNumber(*profile.LastActivityAt)

	switch {
	case gap == 0:
		// Already counted today; a zero streak still means the user has
		// activity today, so normalize it to 1 without flagging an increase.
		streak := profile.Streak
		if streak < 1 {
			streak = 1
			if err := s.profileRepo.UpdateStreak(userID, streak, now); err != nil {
				return nil, fmt.Errorf("update streak: %w", err)
			}
		}
		return &domain.StreakResult{NewStreak: streak, StreakIncreased: false}, nil

	case gap == 1:
		streak := profile.Streak + 1
		if err := s.profileRepo.UpdateStreak(userID, streak, now); err != nil {
			return nil, fmt.Errorf("update streak: %w", err)
		}
		s.logger.Info("streak extended",
			zap.Int64("user_id", userID),
			zap.Int("streak", streak),
		)
		return &domain.StreakResult{NewStreak: streak, StreakIncreased: true}, nil

	default:
		if err := s.profileRepo.UpdateStreak(userID, 1, now); err != nil {
			return nil, fmt.Errorf("update streak: %w", err)
		}
		s.logger.Info("streak reset",
			zap.Int64("user_id", userID),
			zap.Int("previous", profile.Streak),
			zap.Int("gap_days", gap),
		)
		return &domain.StreakResult{NewStreak: 1, StreakIncreased: true}, nil
	}
}

// Current returns the effective streak for display without recording
// activity: the stored value when the user was active today or yesterday,
// otherwise 0 because the streak has lapsed.
func (s *StreakService) Current(userID int64) (int, error) {
	profile, err := s.profileRepo.GetProfile(userID)
	if err != nil {
		return 0, fmt.Errorf("current streak: %w", err)
	}

	if profile.LastActivityAt == nil {
		return 0, nil
	}

	gap := s.dayNumber(s.now()) - s.dayNumber(*profile.LastActivityAt)
	if gap > 1 {
		return 0, nil
	}
	return profile.Streak, nil
}
