package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/models"
)

// LikeWriteRepository handles like write operations
type LikeWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewLikeWriteRepository(db *sqlx.DB, txGetter TxGetter) *LikeWriteRepository {
	return &LikeWriteRepository{db: db, txGetter: txGetter}
}

// Create records the like. An existing like yields ErrAlreadyLiked, a
// missing message ErrMessageNotFound.
func (r *LikeWriteRepository) Create(ctx context.Context, accountID, messageID int64) error {
	const query = `
		INSERT INTO likes (account_id, message_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, message_id) DO NOTHING
	`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, accountID, messageID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{accountID, messageID}, rowsAffected, err)

	if err != nil {
		return mapConstraintError(err)
	}
	if rowsAffected == 0 {
		return models.ErrAlreadyLiked
	}
	return nil
}

// Delete removes the like or returns ErrNotLiked.
func (r *LikeWriteRepository) Delete(ctx context.Context, accountID, messageID int64) error {
	const query = `DELETE FROM likes WHERE account_id = $1 AND message_id = $2`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, accountID, messageID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{accountID, messageID}, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrNotLiked
	}
	return nil
}

// LikeReadRepository handles like read operations
type LikeReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewLikeReadRepository(db *sqlx.DB, txGetter TxGetter) *LikeReadRepository {
	return &LikeReadRepository{db: db, txGetter: txGetter}
}

// MessageIDs returns the ids of the messages liked by accountID.
func (r *LikeReadRepository) MessageIDs(ctx context.Context, accountID int64) ([]int64, error) {
	const query = `SELECT message_id FROM likes WHERE account_id = $1 ORDER BY message_id`

	ids := []int64{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ids, query, accountID)

	logQuery(query, []any{accountID}, ids, err)

	return ids, err
}

// Messages returns the messages liked by accountID, newest first.
func (r *LikeReadRepository) Messages(ctx context.Context, accountID int64) ([]models.Message, error) {
	const query = `
		SELECT m.id, m.text, m.timestamp, m.account_id
		FROM likes l
		JOIN messages m ON m.id = l.message_id
		WHERE l.account_id = $1
		ORDER BY m.timestamp DESC, m.id DESC
	`

	messages := []models.Message{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &messages, query, accountID)

	logQuery(query, []any{accountID}, len(messages), err)

	return messages, err
}
