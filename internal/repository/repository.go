package repository

import (
	"errors"
	"time"

	"lingolens/internal/domain"
)

// Sentinel errors returned by all repository implementations. Callers match
// them with errors.Is instead of inspecting backend-specific error text.
var (
	// ErrNotFound reports that the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate reports a unique-constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrRelationMissing reports that the underlying table does not exist
	// (schema drift). Readers treat it as an empty result.
	ErrRelationMissing = errors.New("relation does not exist")
)

// ProfileRepository defines progression profile operations
type ProfileRepository interface {
	GetProfile(userID int64) (*domain.Profile, error)
	EnsureProfile(userID int64) error
	AddXP(userID int64, amount int) (int, error)
	SetLevel(userID int64, level int) error
	UpdateStreak(userID int64, streak int, lastActivity time.Time) error
	TopByXP(limit int) ([]domain.LeaderboardEntry, error)
}

// AchievementRepository defines achievement catalog and award operations
type AchievementRepository interface {
	ListDefinitions() ([]domain.AchievementDef, error)
	ListEarned(userID int64) ([]domain.EarnedAchievement, error)
	RecordEarned(userID int64, slug string) (bool, error)
}

// WordRepository defines learned-word statistics operations
type WordRepository interface {
	CountUniqueWords(userID int64) (int, error)
	CountTranslations(userID int64) (int, error)
	CountMastered(userID int64, threshold int) (int, error)
	AverageProficiency(userID int64) (float64, error)
}

// QuizRepository defines quiz statistics operations
type QuizRepository interface {
	CountSessions(userID int64) (int, error)
	CountPerfect(userID int64) (int, error)
}

// XPRepository defines XP ledger operations
type XPRepository interface {
	RecordTransaction(tx *domain.XPTransaction) error
}

// SessionRepository defines auth token operations
type SessionRepository interface {
	UserIDByToken(token string) (int64, error)
}
