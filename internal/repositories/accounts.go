package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/models"
)

const accountColumns = `id, username, email, password_hash, image_url, header_image_url, bio, location, created_at`

// AccountReadRepository handles account read operations
type AccountReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountReadRepository(db *sqlx.DB, txGetter TxGetter) *AccountReadRepository {
	return &AccountReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the account or nil when it does not exist.
func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByUsername returns the account or nil when it does not exist.
func (r *AccountReadRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return r.getOne(ctx, query, username)
}

func (r *AccountReadRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var account models.Account
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &account, query, arg)

	logQuery(query, []any{arg}, account.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// List returns all accounts, or the accounts whose username contains search.
func (r *AccountReadRepository) List(ctx context.Context, search string) ([]models.Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE $1 = '' OR username LIKE '%' || $1 || '%'
		ORDER BY id
	`

	accounts := []models.Account{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &accounts, query, search)

	logQuery(query, []any{search}, len(accounts), err)

	return accounts, err
}

// AccountWriteRepository handles account write operations
type AccountWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountWriteRepository(db *sqlx.DB, txGetter TxGetter) *AccountWriteRepository {
	return &AccountWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the account and returns the stored row.
// Duplicate usernames and emails are reported as domain errors.
func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	const query = `
		INSERT INTO accounts (username, email, password_hash, image_url, header_image_url, bio, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + accountColumns

	var created models.Account
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &created, query,
		account.Username, account.Email, account.PasswordHash,
		account.ImageURL, account.HeaderImageURL, account.Bio, account.Location,
	)

	// The password hash stays out of the logs.
	logQuery(query, []any{account.Username, account.Email}, created.ID, err)

	if err != nil {
		return nil, mapConstraintError(err)
	}
	return &created, nil
}

// Update overwrites the profile fields of the account with the same ID.
func (r *AccountWriteRepository) Update(ctx context.Context, account *models.Account) (*models.Account, error) {
	const query = `
		UPDATE accounts
		SET username = $2, email = $3, image_url = $4, header_image_url = $5, bio = $6, location = $7
		WHERE id = $1
		RETURNING ` + accountColumns

	var updated models.Account
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &updated, query,
		account.ID, account.Username, account.Email,
		account.ImageURL, account.HeaderImageURL, account.Bio, account.Location,
	)

	logQuery(query, []any{account.ID, account.Username, account.Email}, updated.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return &updated, nil
}

// Delete removes the account. Messages, follow edges and likes go with it
// through the ON DELETE CASCADE foreign keys.
func (r *AccountWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM accounts WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrAccountNotFound
	}
	return nil
}
