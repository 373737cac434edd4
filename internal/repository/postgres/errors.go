package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"lingolens/internal/repository"

	"github.com/lib/pq"
)

// PostgreSQL error codes we translate into repository sentinels.
const (
	codeUniqueViolation = "23505"
	codeUndefinedTable  = "42P01"
)

// wrapError maps driver errors onto the repository sentinel errors so that
// callers never have to inspect pq-specific codes or error text.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
		case codeUndefinedTable:
			return fmt.Errorf("%s: %w", op, repository.ErrRelationMissing)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
