package postgres

import (
	"database/sql"

	"lingolens/internal/domain"
)

// AchievementRepo implements repository.AchievementRepository
type AchievementRepo struct {
	db *sql.DB
}

// NewAchievementRepo creates a new achievement repository
func NewAchievementRepo(db *sql.DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// ListDefinitions returns the full achievement catalog
func (r *AchievementRepo) ListDefinitions() ([]domain.AchievementDef, error) {
	query := `
		SELECT slug, title, description, icon, requirement_type, metric, requirement_value, xp_reward
		FROM achievements
		ORDER BY requirement_type, requirement_value
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, wrapError("list definitions", err)
	}
	defer rows.Close()

	var defs []domain.AchievementDef
	for rows.Next() {
		var d domain.AchievementDef
		if err := rows.Scan(
			&d.Slug, &d.Title, &d.Description, &d.Icon,
			&d.Type, &d.Metric, &d.Requirement, &d.RewardXP,
		); err != nil {
			return nil, wrapError("list definitions", err)
		}
		defs = append(defs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("list definitions", err)
	}
	return defs, nil
}

// ListEarned returns all achievements the user has earned
func (r *AchievementRepo) ListEarned(userID int64) ([]domain.EarnedAchievement, error) {
	query := `
		SELECT user_id, slug, achieved_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY achieved_at
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, wrapError("list earned", err)
	}
	defer rows.Close()

	var earned []domain.EarnedAchievement
	for rows.Next() {
		var e domain.EarnedAchievement
		if err := rows.Scan(&e.UserID, &e.Slug, &e.AchievedAt); err != nil {
			return nil, wrapError("list earned", err)
		}
		earned = append(earned, e)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("list earned", err)
	}
	return earned, nil
}

// RecordEarned inserts one earned-achievement row. Returns false when the
// (user, slug) pair already exists; the UNIQUE constraint is the real
// correctness guarantee, a duplicate is never an error.
func (r *AchievementRepo) RecordEarned(userID int64, slug string) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, slug)
		VALUES ($1, $2)
		ON CONFLICT (user_id, slug) DO NOTHING
	`
	res, err := r.db.Exec(query, userID, slug)
	if err != nil {
		return false, wrapError("record earned", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, wrapError("record earned", err)
	}
	return inserted > 0, nil
}
