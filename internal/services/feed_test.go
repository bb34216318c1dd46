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

func TestFeedService_HomeFeed(t *testing.T) {
	viewer := int64(1)
	feed := []models.Message{{ID: 9, AccountID: 2}, {ID: 8, AccountID: 3}}

	tests := []struct {
		name        string
		viewerID    *int64
		limit       int
		following   []int64
		followErr   error
		wantAuthors []int64
		wantLimit   int
		messagesErr error
		want        []models.Message
		wantErr     error
	}{
		{
			name:     "anonymous viewer",
			viewerID: nil,
			want:     []models.Message{},
		},
		{
			name:      "follows nobody",
			viewerID:  &viewer,
			following: []int64{},
			want:      []models.Message{},
		},
		{
			name:        "followed authors with default limit",
			viewerID:    &viewer,
			following:   []int64{2, 3},
			wantAuthors: []int64{2, 3},
			wantLimit:   models.DefaultListLimit,
			want:        feed,
		},
		{
			name:        "explicit limit",
			viewerID:    &viewer,
			limit:       1,
			following:   []int64{2, 3},
			wantAuthors: []int64{2, 3},
			wantLimit:   1,
			want:        feed[:1],
		},
		{
			name:        "viewer's own id never queried",
			viewerID:    &viewer,
			following:   []int64{1, 2},
			wantAuthors: []int64{2},
			wantLimit:   models.DefaultListLimit,
			want:        feed[:1],
		},
		{
			name:      "follow lookup error",
			viewerID:  &viewer,
			followErr: errors.New("db down"),
			wantErr:   errors.New("db down"),
		},
		{
			name:        "messages error",
			viewerID:    &viewer,
			following:   []int64{2},
			wantAuthors: []int64{2},
			wantLimit:   models.DefaultListLimit,
			messagesErr: errors.New("db down"),
			wantErr:     errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			follows := services.NewMockFollowingIDsReader(ctrl)
			messages := services.NewMockAuthorsMessageReader(ctrl)
			svc := services.NewFeedService(follows, messages)

			if tt.viewerID != nil {
				follows.EXPECT().FollowingIDs(gomock.Any(), *tt.viewerID).Return(tt.following, tt.followErr)
			}
			if tt.wantAuthors != nil {
				messages.EXPECT().RecentByAuthors(gomock.Any(), tt.wantAuthors, tt.wantLimit).Return(tt.want, tt.messagesErr)
			}

			got, err := svc.HomeFeed(context.Background(), tt.viewerID, tt.limit)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
