package postgres

import (
	"database/sql"
)

// SessionRepo implements repository.SessionRepository
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// UserIDByToken resolves an active, unexpired session token to a user id
func (r *SessionRepo) UserIDByToken(token string) (int64, error) {
	var userID int64
	query := `
		SELECT user_id
		FROM sessions
		WHERE token = $1 AND is_active = TRUE AND expires_at > NOW()
	`
	err := r.db.QueryRow(query, token).Scan(&userID)
	if err != nil {
		return 0, wrapError("user by token", err)
	}
	return userID, nil
}
