package testutil

import (
	"time"

	"lingolens/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock for ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfile(userID int64) (*domain.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) EnsureProfile(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockProfileRepository) AddXP(userID int64, amount int) (int, error) {
	args := m.Called(userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) SetLevel(userID int64, level int) error {
	args := m.Called(userID, level)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateStreak(userID int64, streak int, lastActivity time.Time) error {
	args := m.Called(userID, streak, lastActivity)
	return args.Error(0)
}

func (m *MockProfileRepository) TopByXP(limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

// MockAchievementRepository is a mock for AchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) ListDefinitions() ([]domain.AchievementDef, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementDef), args.Error(1)
}

func (m *MockAchievementRepository) ListEarned(userID int64) ([]domain.EarnedAchievement, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EarnedAchievement), args.Error(1)
}

func (m *MockAchievementRepository) RecordEarned(userID int64, slug string) (bool, error) {
	args := m.Called(userID, slug)
	return args.Bool(0), args.Error(1)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) CountUniqueWords(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) CountTranslations(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) CountMastered(userID int64, threshold int) (int, error) {
	args := m.Called(userID, threshold)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) AverageProficiency(userID int64) (float64, error) {
	args := m.Called(userID)
	return args.Get(0).(float64), args.Error(1)
}

// MockQuizRepository is a mock for QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CountSessions(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuizRepository) CountPerfect(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockXPRepository is a mock for XPRepository
type MockXPRepository struct {
	mock.Mock
}

func (m *MockXPRepository) RecordTransaction(tx *domain.XPTransaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) UserIDByToken(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsProvider is a mock for service.StatsProvider
type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) GetUserStats(userID int64, forceRefresh bool) (*domain.UserStats, error) {
	args := m.Called(userID, forceRefresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

// MockXPAwarder is a mock for service.XPAwarder
type MockXPAwarder struct {
	mock.Mock
}

func (m *MockXPAwarder) AwardXP(userID int64, amount int, source domain.XPSource, sessionID *string) (*domain.LevelInfo, error) {
	args := m.Called(userID, amount, source, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LevelInfo), args.Error(1)
}

// MockStreakProvider is a mock for service.StreakProvider
type MockStreakProvider struct {
	mock.Mock
}

func (m *MockStreakProvider) Current(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}
