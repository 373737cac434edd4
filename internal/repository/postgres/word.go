package postgres

import (
	"database/sql"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// CountUniqueWords returns how many distinct words the user has learned
func (r *WordRepo) CountUniqueWords(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_words WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	if err != nil {
		return 0, wrapError("count unique words", err)
	}
	return count, nil
}

// CountTranslations returns the total number of translations across all of
// the user's learned words
func (r *WordRepo) CountTranslations(userID int64) (int, error) {
	var count int
	query := `
		SELECT COUNT(t.id)
		FROM translations t
		JOIN user_words w ON w.id = t.word_id
		WHERE w.user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(&count)
	if err != nil {
		return 0, wrapError("count translations", err)
	}
	return count, nil
}

// CountMastered returns how many words meet the proficiency threshold
func (r *WordRepo) CountMastered(userID int64, threshold int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_words WHERE user_id = $1 AND proficiency >= $2`
	err := r.db.QueryRow(query, userID, threshold).Scan(&count)
	if err != nil {
		return 0, wrapError("count mastered", err)
	}
	return count, nil
}

// AverageProficiency returns the mean proficiency over the user's words,
// or 0 when the user has no words
func (r *WordRepo) AverageProficiency(userID int64) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(proficiency), 0) FROM user_words WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&avg)
	if err != nil {
		return 0, wrapError("average proficiency", err)
	}
	return avg, nil
}
