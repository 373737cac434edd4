package service

import (
	"testing"
	"time"

	"lingolens/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
}

func TestStreakService_UpdateStreak(t *testing.T) {
	now := fixedNow()

	yesterday := now.AddDate(0, 0, -1)
	earlierToday := now.Add(-3 * time.Hour)
	twoDaysAgo := now.AddDate(0, 0, -2)
	lastWeek := now.AddDate(0, 0, -7)

	tests := []struct {
		name              string
		storedStreak      int
		lastActivity      *time.Time
		expectedStreak    int
		expectedIncreased bool
		expectsWrite      bool
	}{
		{
			name:              "first ever activity",
			storedStreak:      0,
			lastActivity:      nil,
			expectedStreak:    1,
			expectedIncreased: true,
			expectsWrite:      true,
		},
		{
			name:              "already active today",
			storedStreak:      4,
			lastActivity:      &earlierToday,
			expectedStreak:    4,
			expectedIncreased: false,
			expectsWrite:      false,
		},
		{
			name:              "active yesterday extends streak",
			storedStreak:      4,
			lastActivity:      &yesterday,
			expectedStreak:    5,
			expectedIncreased: true,
			expectsWrite:      true,
		},
		{
			name:              "two day gap resets to one",
			storedStreak:      0,
			lastActivity:      &twoDaysAgo,
			expectedStreak:    1,
			expectedIncreased: true,
			expectsWrite:      true,
		},
		{
			name:              "week long gap resets to one",
			storedStreak:      12,
			lastActivity:      &lastWeek,
			expectedStreak:    1,
			expectedIncreased: true,
			expectsWrite:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileRepo := new(testutil.MockProfileRepository)
			profileRepo.On("EnsureProfile", int64(42)).Return(nil)
			profileRepo.On("GetProfile", int64(42)).
				Return(testutil.NewTestProfile(42, 0, tt.storedStreak, tt.lastActivity), nil)
			if tt.expectsWrite {
				profileRepo.On("UpdateStreak", int64(42), tt.expectedStreak, mock.Anything).Return(nil)
			}

			svc := NewStreakService(profileRepo, time.UTC, testutil.NewTestLogger())
			svc.now = fixedNow

			result, err := svc.UpdateStreak(42)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStreak, result.NewStreak)
			assert.Equal(t, tt.expectedIncreased, result.StreakIncreased)
			profileRepo.AssertExpectations(t)
			if !tt.expectsWrite {
				profileRepo.AssertNotCalled(t, "UpdateStreak", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestStreakService_UpdateStreak_IdempotentPerDay(t *testing.T) {
	now := fixedNow()
	yesterday := now.AddDate(0, 0, -1)

	profileRepo := new(testutil.MockProfileRepository)
	profileRepo.On("EnsureProfile", int64(42)).Return(nil)

	// First call sees yesterday's activity, second call sees today's.
	stored := testutil.NewTestProfile(42, 0, 2, &yesterday)
	profileRepo.On("GetProfile", int64(42)).Return(stored, nil)
	profileRepo.On("UpdateStreak", int64(42), 3, mock.Anything).
		Run(func(args mock.Arguments) {
			stored.Streak = 3
			at := args.Get(2).(time.Time)
			stored.LastActivityAt = &at
		}).
		Return(nil).Once()

	svc := NewStreakService(profileRepo, time.UTC, testutil.NewTestLogger())
	svc.now = fixedNow

	first, err := svc.UpdateStreak(42)
	assert.NoError(t, err)
	assert.Equal(t, 3, first.NewStreak)
	assert.True(t, first.StreakIncreased)

	second, err := svc.UpdateStreak(42)
	assert.NoError(t, err)
	assert.Equal(t, 3, second.NewStreak)
	assert.False(t, second.StreakIncreased)

	profileRepo.AssertExpectations(t)
}

func TestStreakService_UpdateStreak_MidnightBoundary(t *testing.T) {
	// Activity at 23:59 followed by activity at 00:01 counts as consecutive days.
	lateNight := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)

	profileRepo := new(testutil.MockProfileRepository)
	profileRepo.On("EnsureProfile", int64(42)).Return(nil)
	profileRepo.On("GetProfile", int64(42)).
		Return(testutil.NewTestProfile(42, 0, 1, &lateNight), nil)
	profileRepo.On("UpdateStreak", int64(42), 2, mock.Anything).Return(nil)

	svc := NewStreakService(profileRepo, time.UTC, testutil.NewTestLogger())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)
	}

	result, err := svc.UpdateStreak(42)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.NewStreak)
	assert.True(t, result.StreakIncreased)
}

func TestStreakService_Current(t *testing.T) {
	now := fixedNow()
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)

	tests := []struct {
		name         string
		storedStreak int
		lastActivity *time.Time
		expected     int
	}{
		{name: "never active", storedStreak: 0, lastActivity: nil, expected: 0},
		{name: "active today", storedStreak: 5, lastActivity: &now, expected: 5},
		{name: "active yesterday", storedStreak: 5, lastActivity: &yesterday, expected: 5},
		{name: "lapsed streak reads as zero", storedStreak: 5, lastActivity: &threeDaysAgo, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileRepo := new(testutil.MockProfileRepository)
			profileRepo.On("GetProfile", int64(42)).
				Return(testutil.NewTestProfile(42, 0, tt.storedStreak, tt.lastActivity), nil)

			svc := NewStreakService(profileRepo, time.UTC, testutil.NewTestLogger())
			svc.now = fixedNow

			streak, err := svc.Current(42)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, streak)
		})
	}
}
