package postgres

import (
	"database/sql"
)

// QuizRepo implements repository.QuizRepository
type QuizRepo struct {
	db *sql.DB
}

// NewQuizRepo creates a new quiz repository
func NewQuizRepo(db *sql.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CountSessions returns the number of completed quiz sessions
func (r *QuizRepo) CountSessions(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM quiz_sessions WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	if err != nil {
		return 0, wrapError("count quiz sessions", err)
	}
	return count, nil
}

// CountPerfect returns the number of quiz sessions answered without a miss
func (r *QuizRepo) CountPerfect(userID int64) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM quiz_sessions
		WHERE user_id = $1 AND total_questions > 0 AND score = total_questions
	`
	err := r.db.QueryRow(query, userID).Scan(&count)
	if err != nil {
		return 0, wrapError("count perfect quizzes", err)
	}
	return count, nil
}
