package services

import (
	"context"

	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/models"
)

//go:generate mockgen -source=feed.go -destination=feed_mock.go -package=services

// FollowingIDsReader returns the ids an account follows.
type FollowingIDsReader interface {
	FollowingIDs(ctx context.Context, accountID int64) ([]int64, error)
}

// AuthorsMessageReader returns the newest messages of a set of authors.
type AuthorsMessageReader interface {
	RecentByAuthors(ctx context.Context, authorIDs []int64, limit int) ([]models.Message, error)
}

// FeedService assembles home feeds.
type FeedService struct {
	follows  FollowingIDsReader
	messages AuthorsMessageReader
}

// NewFeedService creates a new FeedService instance.
func NewFeedService(follows FollowingIDsReader, messages AuthorsMessageReader) *FeedService {
	return &FeedService{follows: follows, messages: messages}
}

// HomeFeed returns up to limit messages written by the accounts the viewer
// follows, newest first. The viewer's own messages are left out. A nil viewer
// gets an empty feed. A limit of zero or less means DefaultListLimit.
func (svc *FeedService) HomeFeed(ctx context.Context, viewerID *int64, limit int) ([]models.Message, error) {
	if viewerID == nil {
		return []models.Message{}, nil
	}
	if limit <= 0 {
		limit = models.DefaultListLimit
	}

	ids, err := svc.follows.FollowingIDs(ctx, *viewerID)
	if err != nil {
		logger.Log.Errorw("failed to get followed ids", "viewer_id", *viewerID, "error", err)
		return nil, err
	}

	authors := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != *viewerID {
			authors = append(authors, id)
		}
	}
	if len(authors) == 0 {
		return []models.Message{}, nil
	}

	messages, err := svc.messages.RecentByAuthors(ctx, authors, limit)
	if err != nil {
		logger.Log.Errorw("failed to get feed messages", "viewer_id", *viewerID, "error", err)
		return nil, err
	}
	return messages, nil
}
