package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=handlers

// Signuper creates accounts.
type Signuper interface {
	Signup(ctx context.Context, input models.SignupInput) (*models.Account, error)
}

// Authenticator checks credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.Account, error)
}

// TokenGenerator issues session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, accountID int64) (string, error)
}

// SessionRevoker invalidates session tokens before they expire.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// LoginRequest represents the JSON body for login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// AuthResponse carries a session token and the account it belongs to
// swagger:model AuthResponse
type AuthResponse struct {
	// JWT token
	// default: JWT_TOKEN
	Token   string          `json:"token"`
	Account *models.Account `json:"account"`
}

// NewSignupHandler returns an HTTP handler for account creation.
// @Summary Sign up
// @Description Create an account and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body models.SignupInput true "Signup Request"
// @Success 201 {object} handlers.AuthResponse "Account created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already taken"
// @Router /signup [post]
func NewSignupHandler(svc Signuper, tokens TokenGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.SignupInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
			return
		}

		account, err := svc.Signup(r.Context(), input)
		if err != nil {
			writeError(w, err)
			return
		}

		token, err := tokens.Generate(r.Context(), account.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{Token: token, Account: account})
	}
}

// NewLoginHandler returns an HTTP handler for login.
// @Summary Log in
// @Description Authenticate and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.AuthResponse "Session token returned"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Router /login [post]
func NewLoginHandler(svc Authenticator, tokens TokenGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
			return
		}

		account, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		token, err := tokens.Generate(r.Context(), account.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Token: token, Account: account})
	}
}

// NewLogoutHandler returns an HTTP handler that revokes the caller's session token.
// @Summary Log out
// @Tags auth
// @Security BearerAuth
// @Success 204 "Logged out"
// @Failure 401 {object} handlers.ErrorResponse "Access unauthorized"
// @Router /logout [post]
func NewLogoutHandler(revoker SessionRevoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFromContext(r.Context())
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, errNoSession)
			return
		}

		if err := revoker.Revoke(r.Context(), session.TokenID, time.Until(session.ExpiresAt)); err != nil {
			writeError(w, err)
			return
		}

		logger.Log.Infow("logged out", "account_id", session.AccountID)
		w.WriteHeader(http.StatusNoContent)
	}
}
