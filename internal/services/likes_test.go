package services_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/sjbrooks/Warbler/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLikeService_Like(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
	}{
		{name: "like"},
		{name: "already liked", repoErr: models.ErrAlreadyLiked},
		{name: "missing message", repoErr: models.ErrMessageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			writer := services.NewMockLikeWriter(ctrl)
			events := services.NewMockEventWriter(ctrl)
			svc := services.NewLikeService(writer, services.NewMockLikeReader(ctrl), events)

			writer.EXPECT().Create(gomock.Any(), int64(1), int64(20)).Return(tt.repoErr)
			if tt.repoErr == nil {
				events.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Like(context.Background(), 1, 20)
			if tt.repoErr != nil {
				assert.ErrorIs(t, err, tt.repoErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLikeService_Unlike(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := services.NewMockLikeWriter(ctrl)
	svc := services.NewLikeService(writer, services.NewMockLikeReader(ctrl), nil)

	writer.EXPECT().Delete(gomock.Any(), int64(1), int64(20)).Return(nil)
	writer.EXPECT().Delete(gomock.Any(), int64(1), int64(21)).Return(models.ErrNotLiked)

	assert.NoError(t, svc.Unlike(context.Background(), 1, 20))
	assert.ErrorIs(t, svc.Unlike(context.Background(), 1, 21), models.ErrNotLiked)
}

func TestLikeService_Reads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockLikeReader(ctrl)
	svc := services.NewLikeService(services.NewMockLikeWriter(ctrl), reader, nil)

	reader.EXPECT().MessageIDs(gomock.Any(), int64(1)).Return([]int64{3, 5}, nil)
	reader.EXPECT().MessageIDs(gomock.Any(), int64(2)).Return([]int64{}, nil)
	reader.EXPECT().Messages(gomock.Any(), int64(1)).Return([]models.Message{{ID: 5}, {ID: 3}}, nil)

	ids, err := svc.LikedMessageIDs(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, map[int64]struct{}{3: {}, 5: {}}, ids)

	ids, err = svc.LikedMessageIDs(context.Background(), 2)
	assert.NoError(t, err)
	assert.Empty(t, ids)

	messages, err := svc.LikedMessages(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []models.Message{{ID: 5}, {ID: 3}}, messages)
}
