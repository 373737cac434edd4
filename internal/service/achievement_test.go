package service

import (
	"fmt"
	"testing"
	"time"

	"lingolens/internal/domain"
	"lingolens/internal/repository"
	"lingolens/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestMeetsRequirement(t *testing.T) {
	stats := &domain.UserStats{
		UniqueWords:       34,
		TotalTranslations: 120,
		MasteredWords:     8,
		CurrentStreak:     6,
		QuizCount:         3,
		PerfectQuizCount:  1,
		Level:             4,
		TotalXP:           750,
	}

	tests := []struct {
		name     string
		def      domain.AchievementDef
		expected bool
	}{
		{
			name:     "words satisfied",
			def:      testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
			expected: true,
		},
		{
			name:     "words not satisfied",
			def:      testutil.NewTestDef("word-hoarder", domain.RequirementWords, domain.MetricUniqueWords, 100, 150),
			expected: false,
		},
		{
			name:     "mastered metric distinct from unique words",
			def:      testutil.NewTestDef("mastery-ten", domain.RequirementWords, domain.MetricMasteredWords, 10, 75),
			expected: false,
		},
		{
			name:     "translations metric",
			def:      testutil.NewTestDef("polyglot", domain.RequirementWords, domain.MetricTranslations, 100, 200),
			expected: true,
		},
		{
			name:     "level satisfied at boundary",
			def:      testutil.NewTestDef("level-four", domain.RequirementLevel, domain.MetricLevel, 4, 50),
			expected: true,
		},
		{
			name:     "streak not satisfied",
			def:      testutil.NewTestDef("streak-week", domain.RequirementStreak, domain.MetricStreak, 7, 70),
			expected: false,
		},
		{
			name:     "xp satisfied",
			def:      testutil.NewTestDef("xp-500", domain.RequirementXP, domain.MetricTotalXP, 500, 100),
			expected: true,
		},
		{
			name:     "perfect quiz metric",
			def:      testutil.NewTestDef("perfect-quiz", domain.RequirementQuiz, domain.MetricPerfectQuizzes, 1, 40),
			expected: true,
		},
		{
			name:     "special always satisfied",
			def:      testutil.NewTestDef("early-adopter", domain.RequirementSpecial, domain.MetricNone, 0, 25),
			expected: true,
		},
		{
			name:     "missing metric falls back to type default",
			def:      testutil.NewTestDef("quiz-three", domain.RequirementQuiz, domain.MetricNone, 3, 10),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MeetsRequirement(tt.def, stats))
		})
	}
}

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name     string
		def      domain.AchievementDef
		stats    *domain.UserStats
		expected int
	}{
		{
			name:     "zero progress",
			def:      testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
			stats:    &domain.UserStats{},
			expected: 0,
		},
		{
			name:     "partial progress",
			def:      testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
			stats:    &domain.UserStats{UniqueWords: 12},
			expected: 48,
		},
		{
			name:     "exactly at requirement",
			def:      testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
			stats:    &domain.UserStats{UniqueWords: 25},
			expected: 100,
		},
		{
			name:     "over requirement stays at 100",
			def:      testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
			stats:    &domain.UserStats{UniqueWords: 34},
			expected: 100,
		},
		{
			name:     "special is always complete",
			def:      testutil.NewTestDef("early-adopter", domain.RequirementSpecial, domain.MetricNone, 0, 25),
			stats:    &domain.UserStats{},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateProgress(tt.def, tt.stats))
		})
	}
}

func TestCalculateProgress_AgreesWithMeetsRequirement(t *testing.T) {
	// Progress must hit exactly 100 at the same boundary where the
	// requirement becomes satisfied.
	def := testutil.NewTestDef("streak-week", domain.RequirementStreak, domain.MetricStreak, 7, 70)

	for streak := 0; streak <= 10; streak++ {
		stats := &domain.UserStats{CurrentStreak: streak}
		met := MeetsRequirement(def, stats)
		progress := CalculateProgress(def, stats)

		if met {
			assert.Equal(t, 100, progress, "streak %d", streak)
		} else {
			assert.Less(t, progress, 100, "streak %d", streak)
		}
	}
}

func newEvaluator(
	achievementRepo *testutil.MockAchievementRepository,
	stats *testutil.MockStatsProvider,
	awarder *testutil.MockXPAwarder,
) *AchievementService {
	return NewAchievementService(
		achievementRepo, stats, awarder, nil, nil, testutil.NewTestLogger(),
	)
}

func TestAchievementService_CheckAndAward(t *testing.T) {
	achievementRepo := new(testutil.MockAchievementRepository)
	stats := new(testutil.MockStatsProvider)
	awarder := new(testutil.MockXPAwarder)

	defs := []domain.AchievementDef{
		testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
		testutil.NewTestDef("word-hoarder", domain.RequirementWords, domain.MetricUniqueWords, 100, 150),
		testutil.NewTestDef("first-word", domain.RequirementWords, domain.MetricUniqueWords, 1, 10),
	}
	achievementRepo.On("ListDefinitions").Return(defs, nil)
	achievementRepo.On("ListEarned", int64(42)).
		Return([]domain.EarnedAchievement{{UserID: 42, Slug: "first-word", AchievedAt: time.Now()}}, nil)
	stats.On("GetUserStats", int64(42), false).
		Return(&domain.UserStats{UniqueWords: 34, Level: 2}, nil)

	achievementRepo.On("RecordEarned", int64(42), "word-collector").Return(true, nil)
	awarder.On("AwardXP", int64(42), 50, domain.XPSourceAchievement, (*string)(nil)).
		Return(&domain.LevelInfo{Level: 2}, nil)

	svc := newEvaluator(achievementRepo, stats, awarder)

	newlyEarned, err := svc.CheckAndAward(42)

	assert.NoError(t, err)
	assert.Len(t, newlyEarned, 1)
	assert.Equal(t, "word-collector", newlyEarned[0].Slug)
	achievementRepo.AssertExpectations(t)
	awarder.AssertExpectations(t)
	// word-hoarder was not satisfied, first-word was already earned.
	achievementRepo.AssertNotCalled(t, "RecordEarned", int64(42), "word-hoarder")
	achievementRepo.AssertNotCalled(t, "RecordEarned", int64(42), "first-word")
}

func TestAchievementService_CheckAndAward_NeverAwardsTwice(t *testing.T) {
	achievementRepo := new(testutil.MockAchievementRepository)
	stats := new(testutil.MockStatsProvider)
	awarder := new(testutil.MockXPAwarder)

	defs := []domain.AchievementDef{
		testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
	}
	achievementRepo.On("ListDefinitions").Return(defs, nil)
	achievementRepo.On("ListEarned", int64(42)).Return([]domain.EarnedAchievement{}, nil)
	stats.On("GetUserStats", int64(42), false).Return(&domain.UserStats{UniqueWords: 34}, nil)

	// The storage-level constraint lets the insert through exactly once.
	achievementRepo.On("RecordEarned", int64(42), "word-collector").Return(true, nil).Once()
	achievementRepo.On("RecordEarned", int64(42), "word-collector").Return(false, nil)
	awarder.On("AwardXP", int64(42), 50, domain.XPSourceAchievement, (*string)(nil)).
		Return(&domain.LevelInfo{Level: 2}, nil)

	svc := newEvaluator(achievementRepo, stats, awarder)
	svc.interval = 0 // disable the throttle so every call runs a full check

	for i := 0; i < 3; i++ {
		newlyEarned, err := svc.CheckAndAward(42)
		assert.NoError(t, err)
		if i == 0 {
			assert.Len(t, newlyEarned, 1)
		} else {
			assert.Empty(t, newlyEarned)
		}
	}

	awarder.AssertNumberOfCalls(t, "AwardXP", 1)
}

func TestAchievementService_CheckAndAward_DuplicateInsertIsNoOp(t *testing.T) {
	achievementRepo := new(testutil.MockAchievementRepository)
	stats := new(testutil.MockStatsProvider)
	awarder := new(testutil.MockXPAwarder)

	defs := []domain.AchievementDef{
		testutil.NewTestDef("streak-three", domain.RequirementStreak, domain.MetricStreak, 3, 30),
		testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
	}
	achievementRepo.On("ListDefinitions").Return(defs, nil)
	achievementRepo.On("ListEarned", int64(42)).Return([]domain.EarnedAchievement{}, nil)
	stats.On("GetUserStats", int64(42), false).
		Return(&domain.UserStats{CurrentStreak: 5, UniqueWords: 30}, nil)

	// A concurrent writer on another device won the race for streak-three.
	achievementRepo.On("RecordEarned", int64(42), "streak-three").
		Return(false, fmt.Errorf("record earned: %w", repository.ErrDuplicate))
	achievementRepo.On("RecordEarned", int64(42), "word-collector").Return(true, nil)
	awarder.On("AwardXP", int64(42), 50, domain.XPSourceAchievement, (*string)(nil)).
		Return(&domain.LevelInfo{Level: 2}, nil)

	svc := newEvaluator(achievementRepo, stats, awarder)

	newlyEarned, err := svc.CheckAndAward(42)

	assert.NoError(t, err)
	assert.Len(t, newlyEarned, 1)
	assert.Equal(t, "word-collector", newlyEarned[0].Slug)
	awarder.AssertNumberOfCalls(t, "AwardXP", 1)
}

func TestAchievementService_Throttle(t *testing.T) {
	achievementRepo := new(testutil.MockAchievementRepository)
	stats := new(testutil.MockStatsProvider)
	awarder := new(testutil.MockXPAwarder)

	achievementRepo.On("ListDefinitions").Return([]domain.AchievementDef{}, nil)
	achievementRepo.On("ListEarned", int64(42)).Return([]domain.EarnedAchievement{}, nil)
	stats.On("GetUserStats", int64(42), false).Return(&domain.UserStats{}, nil)

	svc := newEvaluator(achievementRepo, stats, awarder)

	current := fixedNow()
	svc.now = func() time.Time { return current }

	_, err := svc.CheckAndAward(42)
	assert.NoError(t, err)

	// Within the interval the check is suppressed.
	current = current.Add(10 * time.Second)
	_, err = svc.CheckAndAward(42)
	assert.NoError(t, err)
	achievementRepo.AssertNumberOfCalls(t, "ListDefinitions", 1)

	// After the interval it runs again.
	current = current.Add(DefaultCheckInterval)
	_, err = svc.CheckAndAward(42)
	assert.NoError(t, err)
	achievementRepo.AssertNumberOfCalls(t, "ListDefinitions", 2)
}

func TestAchievementService_ReentrantGuard(t *testing.T) {
	achievementRepo := new(testutil.MockAchievementRepository)
	stats := new(testutil.MockStatsProvider)
	awarder := new(testutil.MockXPAwarder)

	svc := newEvaluator(achievementRepo, stats, awarder)

	assert.True(t, svc.tryAcquire(42))
	// A second caller for the same user is blocked while the first runs.
	assert.False(t, svc.tryAcquire(42))
	// Other users are unaffected.
	assert.True(t, svc.tryAcquire(43))

	// An aborted check releases the slot without arming the throttle.
	svc.release(42, false)
	assert.True(t, svc.tryAcquire(42))
}

func TestAchievementService_ListWithProgress(t *testing.T) {
	achievementRepo := new(testutil.MockAchievementRepository)
	stats := new(testutil.MockStatsProvider)
	awarder := new(testutil.MockXPAwarder)

	earnedAt := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	defs := []domain.AchievementDef{
		testutil.NewTestDef("first-word", domain.RequirementWords, domain.MetricUniqueWords, 1, 10),
		testutil.NewTestDef("word-collector", domain.RequirementWords, domain.MetricUniqueWords, 25, 50),
	}
	achievementRepo.On("ListDefinitions").Return(defs, nil)
	achievementRepo.On("ListEarned", int64(42)).
		Return([]domain.EarnedAchievement{{UserID: 42, Slug: "first-word", AchievedAt: earnedAt}}, nil)
	stats.On("GetUserStats", int64(42), false).Return(&domain.UserStats{UniqueWords: 5}, nil)

	svc := newEvaluator(achievementRepo, stats, awarder)

	statuses, err := svc.ListWithProgress(42)

	assert.NoError(t, err)
	assert.Len(t, statuses, 2)

	assert.True(t, statuses[0].Earned)
	assert.Equal(t, 100, statuses[0].Progress)
	assert.Equal(t, earnedAt, *statuses[0].AchievedAt)

	assert.False(t, statuses[1].Earned)
	assert.Equal(t, 20, statuses[1].Progress)
	assert.Nil(t, statuses[1].AchievedAt)
}
