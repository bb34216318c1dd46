package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/sjbrooks/Warbler/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSocialGraphService_Follow(t *testing.T) {
	tests := []struct {
		name       string
		followerID int64
		followeeID int64
		repoErr    error
		callsRepo  bool
		wantErr    error
	}{
		{name: "follow", followerID: 1, followeeID: 2, callsRepo: true},
		{name: "self follow", followerID: 1, followeeID: 1, wantErr: models.ErrSelfFollow},
		{name: "already following", followerID: 1, followeeID: 2, callsRepo: true, repoErr: models.ErrAlreadyFollowing, wantErr: models.ErrAlreadyFollowing},
		{name: "missing followee", followerID: 1, followeeID: 99, callsRepo: true, repoErr: models.ErrAccountNotFound, wantErr: models.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			writer := services.NewMockFollowWriter(ctrl)
			events := services.NewMockEventWriter(ctrl)
			svc := services.NewSocialGraphService(writer, services.NewMockFollowReader(ctrl), events)

			if tt.callsRepo {
				writer.EXPECT().Create(gomock.Any(), tt.followerID, tt.followeeID).Return(tt.repoErr)
			}
			if tt.wantErr == nil {
				events.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Follow(context.Background(), tt.followerID, tt.followeeID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSocialGraphService_Unfollow(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
	}{
		{name: "unfollow"},
		{name: "not following", repoErr: models.ErrNotFollowing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			writer := services.NewMockFollowWriter(ctrl)
			svc := services.NewSocialGraphService(writer, services.NewMockFollowReader(ctrl), nil)

			writer.EXPECT().Delete(gomock.Any(), int64(1), int64(2)).Return(tt.repoErr)

			err := svc.Unfollow(context.Background(), 1, 2)
			assert.ErrorIs(t, err, tt.repoErr)
			if tt.repoErr == nil {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSocialGraphService_Reads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockFollowReader(ctrl)
	svc := services.NewSocialGraphService(services.NewMockFollowWriter(ctrl), reader, nil)

	bob := models.Account{ID: 2, Username: "bob"}
	carol := models.Account{ID: 3, Username: "carol"}

	reader.EXPECT().Following(gomock.Any(), int64(1)).Return([]models.Account{bob, carol}, nil)
	reader.EXPECT().Followers(gomock.Any(), int64(1)).Return([]models.Account{carol}, nil)
	reader.EXPECT().Exists(gomock.Any(), int64(1), int64(2)).Return(true, nil)
	reader.EXPECT().Exists(gomock.Any(), int64(2), int64(1)).Return(false, nil)
	reader.EXPECT().Followers(gomock.Any(), int64(5)).Return(nil, errors.New("db down"))

	following, err := svc.Following(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []models.Account{bob, carol}, following)

	followers, err := svc.Followers(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []models.Account{carol}, followers)

	ok, err := svc.IsFollowing(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsFollowing(context.Background(), 2, 1)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Followers(context.Background(), 5)
	assert.EqualError(t, err, "db down")
}
