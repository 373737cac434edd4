package postgres

import (
	"database/sql"

	"lingolens/internal/domain"
)

// XPRepo implements repository.XPRepository
type XPRepo struct {
	db *sql.DB
}

// NewXPRepo creates a new XP ledger repository
func NewXPRepo(db *sql.DB) *XPRepo {
	return &XPRepo{db: db}
}

// RecordTransaction appends one entry to the XP ledger
func (r *XPRepo) RecordTransaction(tx *domain.XPTransaction) error {
	query := `
		INSERT INTO user_xp (id, user_id, source, amount, session_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	var sessionID sql.NullString
	if tx.SessionID != nil {
		sessionID = sql.NullString{String: *tx.SessionID, Valid: true}
	}

	_, err := r.db.Exec(query, tx.ID, tx.UserID, tx.Source, tx.Amount, sessionID)
	return wrapError("record xp transaction", err)
}
