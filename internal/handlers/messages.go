package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
)

//go:generate mockgen -source=messages.go -destination=messages_mock.go -package=handlers

// Poster stores new messages.
type Poster interface {
	Post(ctx context.Context, authorID int64, text string) (*models.Message, error)
}

// MessageGetter loads one message.
type MessageGetter interface {
	ByID(ctx context.Context, messageID int64) (*models.Message, error)
}

// MessageDeleter removes messages on behalf of their author.
type MessageDeleter interface {
	Delete(ctx context.Context, messageID, requesterID int64) error
}

// Liker records likes.
type Liker interface {
	Like(ctx context.Context, accountID, messageID int64) error
}

// Unliker removes likes.
type Unliker interface {
	Unlike(ctx context.Context, accountID, messageID int64) error
}

// NewPostMessageHandler returns an HTTP handler posting a message as the caller.
// @Summary Post message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postInput body models.PostInput true "Message"
// @Success 201 {object} models.Message "Stored message"
// @Failure 400 {object} handlers.ErrorResponse "Empty or too long text"
// @Failure 401 {object} handlers.ErrorResponse "Access unauthorized"
// @Router /messages/new [post]
func NewPostMessageHandler(svc Poster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID := middlewares.AccountIDFromContext(r.Context())
		if callerID == nil {
			writeErrorMessage(w, http.StatusUnauthorized, errNoSession)
			return
		}

		var input models.PostInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
			return
		}

		message, err := svc.Post(r.Context(), *callerID, input.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, message)
	}
}

// MessageResponse represents one message together with the viewer's liked message ids
type MessageResponse struct {
	Message         *models.Message `json:"message"`
	LikedMessageIDs []int64         `json:"liked_message_ids"`
}

// NewShowMessageHandler returns an HTTP handler for one message.
// @Summary Show message
// @Description Message with the viewer's liked message ids
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} handlers.MessageResponse "Message"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 404 {object} handlers.ErrorResponse "Message not found"
// @Router /messages/{id} [get]
func NewShowMessageHandler(svc MessageGetter, likes LikedIDsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err)
			return
		}

		message, err := svc.ByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := MessageResponse{Message: message, LikedMessageIDs: []int64{}}

		if viewerID := middlewares.AccountIDFromContext(r.Context()); viewerID != nil {
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

// NewDeleteMessageHandler returns an HTTP handler deleting one of the caller's messages.
// @Summary Delete message
// @Tags messages
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 204 "Deleted"
// @Failure 403 {object} handlers.ErrorResponse "Not the author"
// @Failure 404 {object} handlers.ErrorResponse "Message not found"
// @Router /messages/{id}/delete [post]
func NewDeleteMessageHandler(svc MessageDeleter) http.HandlerFunc {
	return withCallerAndID(func(ctx context.Context, callerID, messageID int64) error {
		return svc.Delete(ctx, messageID, callerID)
	})
}

// NewLikeHandler returns an HTTP handler liking a message as the caller.
// @Summary Like message
// @Tags messages
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 204 "Liked"
// @Failure 404 {object} handlers.ErrorResponse "Message not found"
// @Failure 409 {object} handlers.ErrorResponse "Already liked"
// @Router /messages/{id}/like [post]
func NewLikeHandler(svc Liker) http.HandlerFunc {
	return withCallerAndID(svc.Like)
}

// NewUnlikeHandler returns an HTTP handler removing the caller's like.
// @Summary Unlike message
// @Tags messages
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 204 "Unliked"
// @Failure 404 {object} handlers.ErrorResponse "Not liked"
// @Router /messages/{id}/unlike [post]
func NewUnlikeHandler(svc Unliker) http.HandlerFunc {
	return withCallerAndID(svc.Unlike)
}
