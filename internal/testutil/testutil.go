package testutil

import (
	"time"

	"lingolens/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestProfile creates a test profile
func NewTestProfile(userID int64, totalXP, streak int, lastActivity *time.Time) *domain.Profile {
	return &domain.Profile{
		UserID:         userID,
		Level:          1,
		TotalXP:        totalXP,
		Streak:         streak,
		LastActivityAt: lastActivity,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// NewTestDef creates an achievement definition for tests
func NewTestDef(slug string, reqType domain.RequirementType, metric domain.StatMetric, requirement, reward int) domain.AchievementDef {
	return domain.AchievementDef{
		Slug:        slug,
		Title:       slug,
		Type:        reqType,
		Metric:      metric,
		Requirement: requirement,
		RewardXP:    reward,
	}
}
