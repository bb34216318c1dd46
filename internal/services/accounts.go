package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/sjbrooks/Warbler/internal/monitoring"
)

//go:generate mockgen -source=accounts.go -destination=accounts_mock.go -package=services

// AccountReader defines read-only operations for accounts.
type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)              // Returns nil when the account does not exist
	GetByUsername(ctx context.Context, username string) (*models.Account, error) // Returns nil when the account does not exist
	List(ctx context.Context, search string) ([]models.Account, error)           // Returns accounts whose username contains search
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// AccountService handles signup, authentication and profile management.
type AccountService struct {
	reader AccountReader
	writer AccountWriter
	hasher PasswordHasher
	events eventPublisher

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService instance.
// A nil events writer disables activity events.
func NewAccountService(reader AccountReader, writer AccountWriter, hasher PasswordHasher, events EventWriter) *AccountService {
	return &AccountService{
		reader: reader,
		writer: writer,
		hasher: hasher,
		events: eventPublisher{writer: events},
	}
}

// Signup validates the input, hashes the password and stores the account.
// Taken usernames and emails yield ErrDuplicateUsername / ErrDuplicateEmail.
func (svc *AccountService) Signup(ctx context.Context, input models.SignupInput) (*models.Account, error) {
	if err := validateInput(input); err != nil {
		logger.Log.Warnw("invalid signup input", "username", input.Username, "error", err)
		return nil, err
	}

	hash, err := svc.hasher.Hash(input.Password)
	if err != nil {
		logger.Log.Warnw("failed to hash password", "username", input.Username, "error", err)
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	account, err := svc.writer.Create(ctx, &models.Account{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   hash,
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	})
	if err != nil {
		logger.Log.Errorw("failed to create account", "username", input.Username, "error", err)
		return nil, err
	}

	middlewares.AfterCommit(ctx, monitoring.Signups.Inc)
	svc.events.publish(ctx, models.EventAccountCreated, account.ID, 0)

	return account, nil
}

// Authenticate returns the account matching username and password.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (svc *AccountService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get account", "username", username, "error", err)
		return nil, err
	}

	if account == nil {
		// Unknown usernames cost one bcrypt comparison, like known ones.
		svc.hasher.Compare(svc.unknownAccountHash(), password)
	}

	if account == nil || !svc.hasher.Compare(account.PasswordHash, password) {
		logger.Log.Warnw("invalid credentials", "username", username)
		monitoring.Logins.WithLabelValues(monitoring.LoginFailure).Inc()
		return nil, models.ErrInvalidCredentials
	}

	monitoring.Logins.WithLabelValues(monitoring.LoginSuccess).Inc()
	return account, nil
}

// unknownAccountHash returns a hash, made with the configured cost, that
// passwords of unknown usernames are compared against.
func (svc *AccountService) unknownAccountHash() string {
	svc.dummyOnce.Do(func() {
		hash, err := svc.hasher.Hash("warbler-unknown-account")
		if err != nil {
			logger.Log.Errorw("failed to hash placeholder password", "error", err)
			return
		}
		svc.dummyHash = hash
	})
	return svc.dummyHash
}

// UpdateProfile re-checks the current password and applies the update.
// Blank image URLs keep the stored ones.
func (svc *AccountService) UpdateProfile(ctx context.Context, accountID int64, update models.ProfileUpdate) (*models.Account, error) {
	if err := validateInput(update); err != nil {
		logger.Log.Warnw("invalid profile update", "account_id", accountID, "error", err)
		return nil, err
	}

	account, err := svc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !svc.hasher.Compare(account.PasswordHash, update.Password) {
		logger.Log.Warnw("profile update re-authentication failed", "account_id", accountID)
		return nil, models.ErrUnauthorized
	}

	account.Username = update.Username
	account.Email = update.Email
	if update.ImageURL != "" {
		account.ImageURL = update.ImageURL
	}
	if update.HeaderImageURL != "" {
		account.HeaderImageURL = update.HeaderImageURL
	}
	account.Bio = update.Bio
	account.Location = update.Location

	updated, err := svc.writer.Update(ctx, account)
	if err != nil {
		logger.Log.Errorw("failed to update account", "account_id", accountID, "error", err)
		return nil, err
	}

	svc.events.publish(ctx, models.EventAccountUpdated, accountID, 0)

	return updated, nil
}

// Delete removes the account together with its messages, follow edges and likes.
func (svc *AccountService) Delete(ctx context.Context, accountID int64) error {
	if err := svc.writer.Delete(ctx, accountID); err != nil {
		logger.Log.Errorw("failed to delete account", "account_id", accountID, "error", err)
		return err
	}

	svc.events.publish(ctx, models.EventAccountDeleted, accountID, 0)

	return nil
}

// Get returns the account or ErrAccountNotFound.
func (svc *AccountService) Get(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := svc.reader.GetByID(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get account", "account_id", accountID, "error", err)
		return nil, err
	}
	if account == nil {
		return nil, models.ErrAccountNotFound
	}
	return account, nil
}

// List returns all accounts, or those whose username contains search.
func (svc *AccountService) List(ctx context.Context, search string) ([]models.Account, error) {
	accounts, err := svc.reader.List(ctx, search)
	if err != nil {
		logger.Log.Errorw("failed to list accounts", "search", search, "error", err)
		return nil, err
	}
	return accounts, nil
}
