package domain

// MasteryThreshold is the proficiency score at which a word counts as mastered.
const MasteryThreshold = 80

// UserStats is an ephemeral snapshot of a user's learning statistics,
// recomputed on demand from word and quiz records. It is never persisted.
type UserStats struct {
	UniqueWords        int     `json:"unique_words"`
	TotalTranslations  int     `json:"total_translations"`
	MasteredWords      int     `json:"mastered_words"`
	AverageProficiency float64 `json:"average_proficiency"`
	CurrentStreak      int     `json:"current_streak"`
	QuizCount          int     `json:"quiz_count"`
	PerfectQuizCount   int     `json:"perfect_quiz_count"`
	Level              int     `json:"level"`
	TotalXP            int     `json:"total_xp"`
}
