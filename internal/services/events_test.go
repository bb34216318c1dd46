package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockEventWriter(ctrl)
	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, "5", string(msgs[0].Key))

			var event models.Event
			require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
			assert.Equal(t, models.EventFollowed, event.Type)
			assert.Equal(t, int64(5), event.AccountID)
			assert.Equal(t, int64(6), event.TargetID)
			assert.NotEmpty(t, event.EventID)
			assert.NotZero(t, event.Timestamp)
			return nil
		})

	eventPublisher{writer: writer}.publish(context.Background(), models.EventFollowed, 5, 6)
}

func TestEventPublisher_FailuresAreSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockEventWriter(ctrl)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		eventPublisher{writer: writer}.publish(context.Background(), models.EventLiked, 1, 2)
		eventPublisher{}.publish(context.Background(), models.EventLiked, 1, 2)
	})
}

// A broken broker must not fail the operation that emitted the event.
func TestLikeService_LikeSucceedsWhenPublishingFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	likes := NewMockLikeWriter(ctrl)
	writer := NewMockEventWriter(ctrl)

	likes.EXPECT().Create(gomock.Any(), int64(1), int64(2)).Return(nil)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	svc := NewLikeService(likes, NewMockLikeReader(ctrl), writer)
	assert.NoError(t, svc.Like(context.Background(), 1, 2))
}
