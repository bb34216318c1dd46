package services

import (
	"context"

	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/sjbrooks/Warbler/internal/monitoring"
)

//go:generate mockgen -source=likes.go -destination=likes_mock.go -package=services

// LikeWriter defines write operations for likes.
type LikeWriter interface {
	Create(ctx context.Context, accountID, messageID int64) error
	Delete(ctx context.Context, accountID, messageID int64) error
}

// LikeReader defines read-only operations for likes.
type LikeReader interface {
	MessageIDs(ctx context.Context, accountID int64) ([]int64, error)
	Messages(ctx context.Context, accountID int64) ([]models.Message, error)
}

// LikeService records which accounts like which messages.
type LikeService struct {
	writer LikeWriter
	reader LikeReader
	events eventPublisher
}

// NewLikeService creates a new LikeService instance.
func NewLikeService(writer LikeWriter, reader LikeReader, events EventWriter) *LikeService {
	return &LikeService{
		writer: writer,
		reader: reader,
		events: eventPublisher{writer: events},
	}
}

// Like records that accountID likes messageID.
func (svc *LikeService) Like(ctx context.Context, accountID, messageID int64) error {
	if err := svc.writer.Create(ctx, accountID, messageID); err != nil {
		logger.Log.Errorw("failed to like message", "account_id", accountID, "message_id", messageID, "error", err)
		return err
	}

	middlewares.AfterCommit(ctx, monitoring.Likes.Inc)
	svc.events.publish(ctx, models.EventLiked, accountID, messageID)

	return nil
}

// Unlike removes the like or returns ErrNotLiked.
func (svc *LikeService) Unlike(ctx context.Context, accountID, messageID int64) error {
	if err := svc.writer.Delete(ctx, accountID, messageID); err != nil {
		logger.Log.Errorw("failed to unlike message", "account_id", accountID, "message_id", messageID, "error", err)
		return err
	}

	svc.events.publish(ctx, models.EventUnliked, accountID, messageID)

	return nil
}

// LikedMessageIDs returns the set of message ids accountID likes.
func (svc *LikeService) LikedMessageIDs(ctx context.Context, accountID int64) (map[int64]struct{}, error) {
	ids, err := svc.reader.MessageIDs(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get liked message ids", "account_id", accountID, "error", err)
		return nil, err
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// LikedMessages returns the messages accountID likes, newest first.
func (svc *LikeService) LikedMessages(ctx context.Context, accountID int64) ([]models.Message, error) {
	messages, err := svc.reader.Messages(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get liked messages", "account_id", accountID, "error", err)
		return nil, err
	}
	return messages, nil
}
