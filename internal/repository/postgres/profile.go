package postgres

import (
	"database/sql"
	"time"

	"lingolens/internal/domain"
)

// ProfileRepo implements repository.ProfileRepository
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetProfile returns the progression profile for a user
func (r *ProfileRepo) GetProfile(userID int64) (*domain.Profile, error) {
	var p domain.Profile
	var lastActivity sql.NullTime
	query := `
		SELECT user_id, level, total_xp, streak, last_activity_at, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&p.UserID, &p.Level, &p.TotalXP, &p.Streak, &lastActivity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, wrapError("get profile", err)
	}

	if lastActivity.Valid {
		p.LastActivityAt = &lastActivity.Time
	}

	return &p, nil
}

// EnsureProfile creates a level-1 profile if one doesn't exist
func (r *ProfileRepo) EnsureProfile(userID int64) error {
	query := `
		INSERT INTO profiles (user_id, level, total_xp, streak)
		VALUES ($1, 1, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return wrapError("ensure profile", err)
}

// AddXP atomically increments total_xp and returns the new total
func (r *ProfileRepo) AddXP(userID int64, amount int) (int, error) {
	var total int
	query := `
		UPDATE profiles
		SET total_xp = total_xp + $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING total_xp
	`
	err := r.db.QueryRow(query, amount, userID).Scan(&total)
	if err != nil {
		return 0, wrapError("add xp", err)
	}
	return total, nil
}

// SetLevel updates the denormalized level column
func (r *ProfileRepo) SetLevel(userID int64, level int) error {
	query := `
		UPDATE profiles
		SET level = $1, updated_at = NOW()
		WHERE user_id = $2
	`
	_, err := r.db.Exec(query, level, userID)
	return wrapError("set level", err)
}

// UpdateStreak persists a new streak value and last-activity timestamp
func (r *ProfileRepo) UpdateStreak(userID int64, streak int, lastActivity time.Time) error {
	query := `
		UPDATE profiles
		SET streak = $1, last_activity_at = $2, updated_at = NOW()
		WHERE user_id = $3
	`
	_, err := r.db.Exec(query, streak, lastActivity, userID)
	return wrapError("update streak", err)
}

// TopByXP returns the highest-XP profiles in rank order
func (r *ProfileRepo) TopByXP(limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT user_id, level, total_xp,
			ROW_NUMBER() OVER (ORDER BY total_xp DESC, user_id ASC) AS rank
		FROM profiles
		ORDER BY total_xp DESC, user_id ASC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, wrapError("top by xp", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Level, &e.TotalXP, &e.Rank); err != nil {
			return nil, wrapError("top by xp", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("top by xp", err)
	}
	return entries, nil
}
