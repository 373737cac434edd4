package domain

import "time"

// XPSource tags where an XP award came from.
type XPSource string

const (
	XPSourceAchievement XPSource = "achievement"
	XPSourceTranslation XPSource = "translation"
	XPSourceQuiz        XPSource = "quiz"
	XPSourceStreak      XPSource = "streak"
)

// XPTransaction is one append-only ledger entry. Rows are written on every
// award and never updated.
type XPTransaction struct {
	ID        string
	UserID    int64
	Source    XPSource
	Amount    int
	SessionID *string
	CreatedAt time.Time
}
