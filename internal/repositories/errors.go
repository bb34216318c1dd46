package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sjbrooks/Warbler/internal/models"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgUntranslatableChar  = "22021"
)

// constraintErrors maps schema constraint names to domain errors.
var constraintErrors = map[string]error{
	"accounts_username_key":    models.ErrDuplicateUsername,
	"accounts_email_key":       models.ErrDuplicateEmail,
	"follows_pkey":             models.ErrAlreadyFollowing,
	"follows_no_self_follow":   models.ErrSelfFollow,
	"follows_follower_id_fkey": models.ErrAccountNotFound,
	"follows_followed_id_fkey": models.ErrAccountNotFound,
	"likes_pkey":               models.ErrAlreadyLiked,
	"likes_account_id_fkey":    models.ErrAccountNotFound,
	"likes_message_id_fkey":    models.ErrMessageNotFound,
	"messages_account_id_fkey": models.ErrAuthorNotFound,
}

// mapConstraintError translates unique, foreign-key and check violations
// into domain errors, and text the database cannot store into
// ErrInvalidInput. Any other error is returned unchanged.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUntranslatableChar:
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, pgErr.Message)
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
	}
	return err
}
