package domain

import "time"

// Profile is the per-user progression aggregate. The level column is a
// denormalized cache of LevelFromXP(TotalXP); total_xp is the ground truth.
type Profile struct {
	UserID         int64
	Level          int
	TotalXP        int
	Streak         int
	LastActivityAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LevelInfo is the derived leveling state for a profile.
type LevelInfo struct {
	Level           int `json:"level"`
	TotalXP         int `json:"total_xp"`
	XPWithinLevel   int `json:"xp_within_level"`
	XPToNext        int `json:"xp_to_next"`
	ProgressPercent int `json:"progress_percent"`
}

// StreakResult reports the outcome of a streak update.
type StreakResult struct {
	NewStreak       int  `json:"new_streak"`
	StreakIncreased bool `json:"streak_increased"`
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank    int   `json:"rank"`
	UserID  int64 `json:"user_id"`
	Level   int   `json:"level"`
	TotalXP int   `json:"total_xp"`
}
