package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

// AccountLister searches accounts by username.
type AccountLister interface {
	List(ctx context.Context, search string) ([]models.Account, error)
}

// AccountGetter loads one account.
type AccountGetter interface {
	Get(ctx context.Context, accountID int64) (*models.Account, error)
}

// AuthorMessagesGetter loads the newest messages of an author.
type AuthorMessagesGetter interface {
	RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Message, error)
}

// FollowingLister lists the accounts an account follows.
type FollowingLister interface {
	Following(ctx context.Context, accountID int64) ([]models.Account, error)
}

// FollowersLister lists the accounts following an account.
type FollowersLister interface {
	Followers(ctx context.Context, accountID int64) ([]models.Account, error)
}

// LikedMessagesGetter loads the messages an account likes.
type LikedMessagesGetter interface {
	LikedMessages(ctx context.Context, accountID int64) ([]models.Message, error)
}

// Follower creates follow edges.
type Follower interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
}

// Unfollower removes follow edges.
type Unfollower interface {
	Unfollow(ctx context.Context, followerID, followeeID int64) error
}

// ProfileUpdater edits profiles.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, accountID int64, update models.ProfileUpdate) (*models.Account, error)
}

// AccountDeleter removes accounts.
type AccountDeleter interface {
	Delete(ctx context.Context, accountID int64) error
}

// UserResponse represents a profile page
// swagger:model UserResponse
type UserResponse struct {
	Account         *models.Account  `json:"account"`
	Messages        []models.Message `json:"messages"`
	LikedMessageIDs []int64          `json:"liked_message_ids"`
}

// UserListResponse represents a list of accounts
// swagger:model UserListResponse
type UserListResponse struct {
	Accounts []models.Account `json:"accounts"`
}

// MessageListResponse represents a list of messages
// swagger:model MessageListResponse
type MessageListResponse struct {
	Messages []models.Message `json:"messages"`
}

// NewListUsersHandler returns an HTTP handler listing accounts.
// @Summary List users
// @Description All accounts, or those whose username contains q
// @Tags users
// @Produce json
// @Param q query string false "Username search"
// @Success 200 {object} handlers.UserListResponse "Accounts"
// @Router /users [get]
func NewListUsersHandler(svc AccountLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, UserListResponse{Accounts: accounts})
	}
}

// NewShowUserHandler returns an HTTP handler for a profile page.
// @Summary Show user
// @Description Account with its 100 newest messages and the viewer's liked message ids
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} handlers.UserResponse "Profile"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /users/{id} [get]
func NewShowUserHandler(accounts AccountGetter, messages AuthorMessagesGetter, likes LikedIDsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err)
			return
		}

		account, err := accounts.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		recent, err := messages.RecentByAuthor(r.Context(), id, models.DefaultListLimit)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := UserResponse{Account: account, Messages: recent, LikedMessageIDs: []int64{}}

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

// NewFollowingHandler returns an HTTP handler listing the accounts a user follows.
// @Summary Following
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} handlers.UserListResponse "Followed accounts"
// @Failure 401 {object} handlers.ErrorResponse "Access unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /users/{id}/following [get]
func NewFollowingHandler(accounts AccountGetter, graph FollowingLister) http.HandlerFunc {
	return listRelated(accounts, graph.Following)
}

// NewFollowersHandler returns an HTTP handler listing the followers of a user.
// @Summary Followers
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} handlers.UserListResponse "Followers"
// @Failure 401 {object} handlers.ErrorResponse "Access unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /users/{id}/followers [get]
func NewFollowersHandler(accounts AccountGetter, graph FollowersLister) http.HandlerFunc {
	return listRelated(accounts, graph.Followers)
}

func listRelated(accounts AccountGetter, list func(ctx context.Context, accountID int64) ([]models.Account, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err)
			return
		}

		if _, err := accounts.Get(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		related, err := list(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, UserListResponse{Accounts: related})
	}
}

// NewUserLikesHandler returns an HTTP handler listing the messages a user likes.
// @Summary Liked messages
// @Tags users
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} handlers.MessageListResponse "Liked messages, newest first"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /users/{id}/likes [get]
func NewUserLikesHandler(accounts AccountGetter, likes LikedMessagesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err)
			return
		}

		if _, err := accounts.Get(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		messages, err := likes.LikedMessages(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageListResponse{Messages: messages})
	}
}

// NewFollowHandler returns an HTTP handler making the caller follow a user.
// @Summary Follow
// @Tags users
// @Security BearerAuth
// @Param id path int true "Account ID to follow"
// @Success 204 "Following"
// @Failure 400 {object} handlers.ErrorResponse "Self follow"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Failure 409 {object} handlers.ErrorResponse "Already following"
// @Router /users/follow/{id} [post]
func NewFollowHandler(svc Follower) http.HandlerFunc {
	return withCallerAndID(svc.Follow)
}

// NewStopFollowingHandler returns an HTTP handler making the caller unfollow a user.
// @Summary Stop following
// @Tags users
// @Security BearerAuth
// @Param id path int true "Account ID to unfollow"
// @Success 204 "Not following anymore"
// @Failure 404 {object} handlers.ErrorResponse "Not following"
// @Router /users/stop-following/{id} [post]
func NewStopFollowingHandler(svc Unfollower) http.HandlerFunc {
	return withCallerAndID(svc.Unfollow)
}

// withCallerAndID runs op with the caller's account id and the route id and
// answers 204 on success.
func withCallerAndID(op func(ctx context.Context, callerID, id int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID := middlewares.AccountIDFromContext(r.Context())
		if callerID == nil {
			writeErrorMessage(w, http.StatusUnauthorized, errNoSession)
			return
		}

		id, err := idParam(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err)
			return
		}

		if err := op(r.Context(), *callerID, id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// NewUpdateProfileHandler returns an HTTP handler editing the caller's profile.
// @Summary Update profile
// @Description Requires the current password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileUpdate body models.ProfileUpdate true "Profile update"
// @Success 200 {object} models.Account "Updated account"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Wrong password"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already taken"
// @Router /users/profile [post]
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID := middlewares.AccountIDFromContext(r.Context())
		if callerID == nil {
			writeErrorMessage(w, http.StatusUnauthorized, errNoSession)
			return
		}

		var update models.ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, errInvalidBody)
			return
		}

		account, err := svc.UpdateProfile(r.Context(), *callerID, update)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

// NewDeleteAccountHandler returns an HTTP handler deleting the caller's account
// and revoking its session token.
// @Summary Delete account
// @Tags users
// @Security BearerAuth
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Access unauthorized"
// @Router /users/delete [post]
func NewDeleteAccountHandler(svc AccountDeleter, revoker SessionRevoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFromContext(r.Context())
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, errNoSession)
			return
		}

		if err := svc.Delete(r.Context(), session.AccountID); err != nil {
			writeError(w, err)
			return
		}

		middlewares.AfterCommit(r.Context(), func() {
			if err := revoker.Revoke(r.Context(), session.TokenID, time.Until(session.ExpiresAt)); err != nil {
				logger.Log.Errorw("failed to revoke session of deleted account", "account_id", session.AccountID, "err", err)
			}
		})

		w.WriteHeader(http.StatusNoContent)
	}
}
