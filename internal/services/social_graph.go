package services

import (
	"context"

	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/sjbrooks/Warbler/internal/monitoring"
)

//go:generate mockgen -source=social_graph.go -destination=social_graph_mock.go -package=services

// FollowWriter defines write operations for follow edges.
type FollowWriter interface {
	Create(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) error
}

// FollowReader defines read-only operations for follow edges.
type FollowReader interface {
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	Followers(ctx context.Context, accountID int64) ([]models.Account, error)
	Following(ctx context.Context, accountID int64) ([]models.Account, error)
}

// SocialGraphService manages the directed follow relation between accounts.
type SocialGraphService struct {
	writer FollowWriter
	reader FollowReader
	events eventPublisher
}

// NewSocialGraphService creates a new SocialGraphService instance.
func NewSocialGraphService(writer FollowWriter, reader FollowReader, events EventWriter) *SocialGraphService {
	return &SocialGraphService{
		writer: writer,
		reader: reader,
		events: eventPublisher{writer: events},
	}
}

// Follow makes followerID follow followeeID.
func (svc *SocialGraphService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return models.ErrSelfFollow
	}

	if err := svc.writer.Create(ctx, followerID, followeeID); err != nil {
		logger.Log.Errorw("failed to follow", "follower_id", followerID, "followee_id", followeeID, "error", err)
		return err
	}

	middlewares.AfterCommit(ctx, monitoring.Follows.Inc)
	svc.events.publish(ctx, models.EventFollowed, followerID, followeeID)

	return nil
}

// Unfollow removes the edge or returns ErrNotFollowing.
func (svc *SocialGraphService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if err := svc.writer.Delete(ctx, followerID, followeeID); err != nil {
		logger.Log.Errorw("failed to unfollow", "follower_id", followerID, "followee_id", followeeID, "error", err)
		return err
	}

	svc.events.publish(ctx, models.EventUnfollowed, followerID, followeeID)

	return nil
}

// Followers returns the accounts following accountID in the order they followed.
func (svc *SocialGraphService) Followers(ctx context.Context, accountID int64) ([]models.Account, error) {
	accounts, err := svc.reader.Followers(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get followers", "account_id", accountID, "error", err)
		return nil, err
	}
	return accounts, nil
}

// Following returns the accounts accountID follows in the order they were followed.
func (svc *SocialGraphService) Following(ctx context.Context, accountID int64) ([]models.Account, error) {
	accounts, err := svc.reader.Following(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get following", "account_id", accountID, "error", err)
		return nil, err
	}
	return accounts, nil
}

// IsFollowing reports whether a follows b.
func (svc *SocialGraphService) IsFollowing(ctx context.Context, a, b int64) (bool, error) {
	ok, err := svc.reader.Exists(ctx, a, b)
	if err != nil {
		logger.Log.Errorw("failed to check follow", "follower_id", a, "followee_id", b, "error", err)
		return false, err
	}
	return ok, nil
}
