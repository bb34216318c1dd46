package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
)

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

// EventWriter defines a Kafka writer abstraction.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// eventPublisher publishes activity events once the request transaction
// commits. Failures are logged and never returned to the caller.
type eventPublisher struct {
	writer EventWriter
}

func (p eventPublisher) publish(ctx context.Context, eventType string, accountID, targetID int64) {
	event := models.Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		TargetID:  targetID,
		Timestamp: time.Now().Unix(),
	}

	middlewares.AfterCommit(ctx, func() { p.write(ctx, event) })
}

func (p eventPublisher) write(ctx context.Context, event models.Event) {
	if p.writer == nil {
		logger.Log.Debugw("event writer not configured, skipping publishing", "event_id", event.EventID, "type", event.Type)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "event_id", event.EventID, "type", event.Type, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AccountID, 10)),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish event", "event_id", event.EventID, "type", event.Type, "error", err)
	} else {
		logger.Log.Infow("event published", "event_id", event.EventID, "type", event.Type, "account_id", event.AccountID)
	}
}
