package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sjbrooks/Warbler/internal/logger"
)

// SessionRevocationRepository stores revoked session token ids in Redis
// until the tokens would have expired on their own.
type SessionRevocationRepository struct {
	client *redis.Client
}

// NewSessionRevocationRepository creates a new repository instance
func NewSessionRevocationRepository(client *redis.Client) *SessionRevocationRepository {
	return &SessionRevocationRepository{client: client}
}

func revokedSessionKey(tokenID string) string {
	return fmt.Sprintf("revoked_session:%s", tokenID)
}

// Revoke marks the token id as revoked for ttl. Non-positive ttls are a
// no-op since the token is already expired.
func (r *SessionRevocationRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := revokedSessionKey(tokenID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.Log.Infow("session revoked",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// IsRevoked reports whether the token id has been revoked.
func (r *SessionRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedSessionKey(tokenID)

	err := r.client.Get(ctx, key).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to check session revocation",
			"key", key,
			"error", err,
		)
		return false, err
	}
	return true, nil
}
