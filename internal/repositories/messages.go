package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/models"
)

// MessageWriteRepository handles message write operations
type MessageWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewMessageWriteRepository(db *sqlx.DB, txGetter TxGetter) *MessageWriteRepository {
	return &MessageWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a message. A missing author yields ErrAuthorNotFound.
func (r *MessageWriteRepository) Create(ctx context.Context, accountID int64, text string, timestamp time.Time) (*models.Message, error) {
	const query = `
		INSERT INTO messages (text, timestamp, account_id)
		VALUES ($1, $2, $3)
		RETURNING id, text, timestamp, account_id
	`

	var message models.Message
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &message, query, text, timestamp, accountID)

	logQuery(query, []any{len(text), timestamp, accountID}, message.ID, err)

	if err != nil {
		return nil, mapConstraintError(err)
	}
	return &message, nil
}

// Delete removes the message if accountID owns it. Lookup and delete run as
// one statement: a missing message yields ErrMessageNotFound, a message owned
// by another account ErrNotOwner and stays in place.
func (r *MessageWriteRepository) Delete(ctx context.Context, messageID, accountID int64) error {
	const query = `
		WITH target AS (
			SELECT id, account_id FROM messages WHERE id = $1
		), deleted AS (
			DELETE FROM messages m
			USING target
			WHERE m.id = target.id AND target.account_id = $2
			RETURNING m.id
		)
		SELECT (SELECT account_id FROM target) AS owner_id,
		       (SELECT COUNT(*) FROM deleted) AS deleted
	`

	var result struct {
		OwnerID sql.NullInt64 `db:"owner_id"`
		Deleted int64         `db:"deleted"`
	}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &result, query, messageID, accountID)

	logQuery(query, []any{messageID, accountID}, result.Deleted, err)

	if err != nil {
		return err
	}
	if !result.OwnerID.Valid {
		return models.ErrMessageNotFound
	}
	if result.Deleted == 0 {
		return models.ErrNotOwner
	}
	return nil
}

// MessageReadRepository handles message read operations
type MessageReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewMessageReadRepository(db *sqlx.DB, txGetter TxGetter) *MessageReadRepository {
	return &MessageReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the message or nil when it does not exist.
func (r *MessageReadRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	const query = `SELECT id, text, timestamp, account_id FROM messages WHERE id = $1`

	var message models.Message
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &message, query, id)

	logQuery(query, []any{id}, message.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// RecentByAuthor returns up to limit messages of the author, newest first.
func (r *MessageReadRepository) RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Message, error) {
	const query = `
		SELECT id, text, timestamp, account_id
		FROM messages
		WHERE account_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`

	messages := []models.Message{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &messages, query, authorID, limit)

	logQuery(query, []any{authorID, limit}, len(messages), err)

	return messages, err
}

// RecentByAuthors returns up to limit messages written by any of the
// authors, newest first.
func (r *MessageReadRepository) RecentByAuthors(ctx context.Context, authorIDs []int64, limit int) ([]models.Message, error) {
	const query = `
		SELECT id, text, timestamp, account_id
		FROM messages
		WHERE account_id = ANY($1)
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`

	messages := []models.Message{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &messages, query, authorIDs, limit)

	logQuery(query, []any{authorIDs, limit}, len(messages), err)

	return messages, err
}
