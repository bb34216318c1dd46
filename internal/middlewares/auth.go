package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sjbrooks/Warbler/internal/jwt"
	"github.com/sjbrooks/Warbler/internal/logger"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RevocationChecker reports whether a session token was revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session is the authenticated caller of a request.
type Session struct {
	AccountID int64
	TokenID   string
	ExpiresAt time.Time
}

type sessionKey struct{}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session resolved by SessionMiddleware.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// AccountIDFromContext returns the id of the logged-in account, or nil for
// anonymous requests.
func AccountIDFromContext(ctx context.Context) *int64 {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return nil
	}
	id := s.AccountID
	return &id
}

// SessionMiddleware resolves the bearer token into a Session. Requests
// without a usable token continue anonymously.
func SessionMiddleware(tokener Tokener, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Warnw("invalid session token", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			revoked, err := revocations.IsRevoked(ctx, claims.TokenID())
			if err != nil {
				logger.Log.Errorw("failed to check session revocation", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if revoked {
				logger.Log.Warnw("revoked session token", "account_id", claims.AccountID)
				next.ServeHTTP(w, r)
				return
			}

			session := Session{AccountID: claims.AccountID, TokenID: claims.TokenID()}
			if claims.ExpiresAt != nil {
				session.ExpiresAt = claims.ExpiresAt.Time
			}

			next.ServeHTTP(w, r.WithContext(WithSession(ctx, session)))
		})
	}
}

// RequireAccount answers 401 to requests without a session.
func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "access unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
