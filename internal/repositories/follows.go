package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/models"
)

// FollowWriteRepository handles follow edge write operations
type FollowWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewFollowWriteRepository(db *sqlx.DB, txGetter TxGetter) *FollowWriteRepository {
	return &FollowWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the edge. An existing edge yields ErrAlreadyFollowing,
// a missing endpoint ErrAccountNotFound.
func (r *FollowWriteRepository) Create(ctx context.Context, followerID, followedID int64) error {
	const query = `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, followerID, followedID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{followerID, followedID}, rowsAffected, err)

	if err != nil {
		return mapConstraintError(err)
	}
	if rowsAffected == 0 {
		return models.ErrAlreadyFollowing
	}
	return nil
}

// Delete removes the edge or returns ErrNotFollowing.
func (r *FollowWriteRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	const query = `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, followerID, followedID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{followerID, followedID}, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrNotFollowing
	}
	return nil
}

// FollowReadRepository handles follow edge read operations
type FollowReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewFollowReadRepository(db *sqlx.DB, txGetter TxGetter) *FollowReadRepository {
	return &FollowReadRepository{db: db, txGetter: txGetter}
}

// Exists reports whether followerID follows followedID.
func (r *FollowReadRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`

	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &exists, query, followerID, followedID)

	logQuery(query, []any{followerID, followedID}, exists, err)

	return exists, err
}

// Followers returns the accounts following accountID, oldest edge first.
func (r *FollowReadRepository) Followers(ctx context.Context, accountID int64) ([]models.Account, error) {
	const query = `
		SELECT a.id, a.username, a.email, a.password_hash, a.image_url, a.header_image_url, a.bio, a.location, a.created_at
		FROM follows f
		JOIN accounts a ON a.id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at, a.id
	`
	return r.selectAccounts(ctx, query, accountID)
}

// Following returns the accounts accountID follows, oldest edge first.
func (r *FollowReadRepository) Following(ctx context.Context, accountID int64) ([]models.Account, error) {
	const query = `
		SELECT a.id, a.username, a.email, a.password_hash, a.image_url, a.header_image_url, a.bio, a.location, a.created_at
		FROM follows f
		JOIN accounts a ON a.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at, a.id
	`
	return r.selectAccounts(ctx, query, accountID)
}

func (r *FollowReadRepository) selectAccounts(ctx context.Context, query string, accountID int64) ([]models.Account, error) {
	accounts := []models.Account{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &accounts, query, accountID)

	logQuery(query, []any{accountID}, len(accounts), err)

	return accounts, err
}

// FollowingIDs returns the ids of the accounts accountID follows.
func (r *FollowReadRepository) FollowingIDs(ctx context.Context, accountID int64) ([]int64, error) {
	const query = `SELECT followed_id FROM follows WHERE follower_id = $1 ORDER BY created_at, followed_id`

	ids := []int64{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ids, query, accountID)

	logQuery(query, []any{accountID}, ids, err)

	return ids, err
}
