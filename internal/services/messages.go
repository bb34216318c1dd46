package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/sjbrooks/Warbler/internal/monitoring"
)

//go:generate mockgen -source=messages.go -destination=messages_mock.go -package=services

// MessageWriter defines write operations for messages.
type MessageWriter interface {
	Create(ctx context.Context, accountID int64, text string, timestamp time.Time) (*models.Message, error)
	Delete(ctx context.Context, messageID, accountID int64) error
}

// MessageReader defines read-only operations for messages.
type MessageReader interface {
	GetByID(ctx context.Context, id int64) (*models.Message, error) // Returns nil when the message does not exist
	RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Message, error)
}

// MessageService stores and retrieves short messages.
type MessageService struct {
	writer MessageWriter
	reader MessageReader
	events eventPublisher
}

// NewMessageService creates a new MessageService instance.
func NewMessageService(writer MessageWriter, reader MessageReader, events EventWriter) *MessageService {
	return &MessageService{
		writer: writer,
		reader: reader,
		events: eventPublisher{writer: events},
	}
}

// Post stores a message by authorID stamped with the current time.
// Text must be valid UTF-8 without NUL characters, hold a non-blank character
// and at most MaxMessageLength characters.
func (svc *MessageService) Post(ctx context.Context, authorID int64, text string) (*models.Message, error) {
	if !isSafeText(text) {
		logger.Log.Warnw("rejected message text", "author_id", authorID)
		return nil, fmt.Errorf("%w: text must be valid UTF-8 without NUL characters", models.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrEmptyText
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, models.ErrTextTooLong
	}

	message, err := svc.writer.Create(ctx, authorID, text, time.Now().UTC())
	if err != nil {
		logger.Log.Errorw("failed to post message", "author_id", authorID, "error", err)
		return nil, err
	}

	middlewares.AfterCommit(ctx, monitoring.MessagesPosted.Inc)
	svc.events.publish(ctx, models.EventMessagePosted, authorID, message.ID)

	return message, nil
}

// Delete removes the message if requesterID wrote it.
func (svc *MessageService) Delete(ctx context.Context, messageID, requesterID int64) error {
	if err := svc.writer.Delete(ctx, messageID, requesterID); err != nil {
		logger.Log.Errorw("failed to delete message", "message_id", messageID, "requester_id", requesterID, "error", err)
		return err
	}

	svc.events.publish(ctx, models.EventMessageDeleted, requesterID, messageID)

	return nil
}

// RecentByAuthor returns up to limit messages of the author, newest first.
// A limit of zero or less means DefaultListLimit.
func (svc *MessageService) RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = models.DefaultListLimit
	}

	messages, err := svc.reader.RecentByAuthor(ctx, authorID, limit)
	if err != nil {
		logger.Log.Errorw("failed to get messages", "author_id", authorID, "error", err)
		return nil, err
	}
	return messages, nil
}

// ByID returns the message or ErrMessageNotFound.
func (svc *MessageService) ByID(ctx context.Context, messageID int64) (*models.Message, error) {
	message, err := svc.reader.GetByID(ctx, messageID)
	if err != nil {
		logger.Log.Errorw("failed to get message", "message_id", messageID, "error", err)
		return nil, err
	}
	if message == nil {
		return nil, models.ErrMessageNotFound
	}
	return message, nil
}
