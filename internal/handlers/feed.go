package handlers

import (
	"context"
	"net/http"

	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
)

//go:generate mockgen -source=feed.go -destination=feed_mock.go -package=handlers

// HomeFeeder assembles home feeds.
type HomeFeeder interface {
	HomeFeed(ctx context.Context, viewerID *int64, limit int) ([]models.Message, error)
}

// LikedIDsGetter returns the ids of the messages an account likes.
type LikedIDsGetter interface {
	LikedMessageIDs(ctx context.Context, accountID int64) (map[int64]struct{}, error)
}

// FeedResponse represents the home page
// swagger:model FeedResponse
type FeedResponse struct {
	Anonymous       bool             `json:"anonymous"`
	Messages        []models.Message `json:"messages"`
	LikedMessageIDs []int64          `json:"liked_message_ids"`
}

// NewHomeFeedHandler returns an HTTP handler for the home feed.
// @Summary Home feed
// @Description Newest messages of the followed accounts. Anonymous callers get an empty feed.
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.FeedResponse "Home feed"
// @Router / [get]
func NewHomeFeedHandler(feed HomeFeeder, likes LikedIDsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := middlewares.AccountIDFromContext(r.Context())

		messages, err := feed.HomeFeed(r.Context(), viewerID, models.DefaultListLimit)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := FeedResponse{
			Anonymous:       viewerID == nil,
			Messages:        messages,
			LikedMessageIDs: []int64{},
		}

		if viewerID != nil {
			liked, err := likes.LikedMessageIDs(r.Context(), *viewerID)
			if err != nil {
				writeError(w, err)
				return
			}
			resp.LikedMessageIDs = sortedIDs(liked)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
