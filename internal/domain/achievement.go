package domain

import "time"

// RequirementType classifies what an achievement measures.
type RequirementType string

const (
	RequirementWords   RequirementType = "words"
	RequirementLevel   RequirementType = "level"
	RequirementStreak  RequirementType = "streak"
	RequirementXP      RequirementType = "xp"
	RequirementQuiz    RequirementType = "quiz"
	RequirementSpecial RequirementType = "special"
)

// StatMetric names the exact statistic a requirement is checked against.
// Words- and quiz-type achievements carry an explicit metric instead of
// being classified by slug text.
type StatMetric string

const (
	MetricUniqueWords    StatMetric = "unique_words"
	MetricMasteredWords  StatMetric = "mastered_words"
	MetricTranslations   StatMetric = "translations"
	MetricQuizzes        StatMetric = "quizzes"
	MetricPerfectQuizzes StatMetric = "perfect_quizzes"
	MetricLevel          StatMetric = "level"
	MetricStreak         StatMetric = "streak"
	MetricTotalXP        StatMetric = "total_xp"
	MetricNone           StatMetric = ""
)

// DefaultMetric returns the metric implied by a requirement type when the
// catalog row does not carry one.
func (t RequirementType) DefaultMetric() StatMetric {
	switch t {
	case RequirementWords:
		return MetricUniqueWords
	case RequirementLevel:
		return MetricLevel
	case RequirementStreak:
		return MetricStreak
	case RequirementXP:
		return MetricTotalXP
	case RequirementQuiz:
		return MetricQuizzes
	default:
		return MetricNone
	}
}

// AchievementDef is an immutable catalog entry.
type AchievementDef struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Type        RequirementType `json:"requirement_type"`
	Metric      StatMetric      `json:"metric"`
	Requirement int             `json:"requirement_value"`
	RewardXP    int             `json:"xp_reward"`
}

// EarnedAchievement records that a user earned an achievement. Append-only;
// at most one row per (user, slug).
type EarnedAchievement struct {
	UserID     int64     `json:"user_id"`
	Slug       string    `json:"slug"`
	AchievedAt time.Time `json:"achieved_at"`
}

// AchievementStatus is a catalog entry joined with the user's earned state
// and progress toward it.
type AchievementStatus struct {
	AchievementDef
	Earned     bool       `json:"earned"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
	Progress   int        `json:"progress"`
}
