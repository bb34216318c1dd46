package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockAccountLister(ctrl)
	svc.EXPECT().List(gomock.Any(), "jo").Return([]models.Account{{ID: 1, Username: "john"}}, nil)
	svc.EXPECT().List(gomock.Any(), "").Return(nil, errors.New("db down"))

	rr := serve(t, http.MethodGet, "/users", "/users?q=jo", NewListUsersHandler(svc), nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"john"`)

	rr = serve(t, http.MethodGet, "/users", "/users", NewListUsersHandler(svc), nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestShowUserHandler(t *testing.T) {
	account := &models.Account{ID: 3, Username: "carol"}

	tests := []struct {
		name         string
		path         string
		session      *middlewares.Session
		mockSetup    func(accounts *MockAccountGetter, messages *MockAuthorMessagesGetter, likes *MockLikedIDsGetter)
		expectedCode int
		contains     string
	}{
		{
			name: "anonymous viewer",
			path: "/users/3",
			mockSetup: func(accounts *MockAccountGetter, messages *MockAuthorMessagesGetter, likes *MockLikedIDsGetter) {
				accounts.EXPECT().Get(gomock.Any(), int64(3)).Return(account, nil)
				messages.EXPECT().RecentByAuthor(gomock.Any(), int64(3), models.DefaultListLimit).Return([]models.Message{{ID: 1}}, nil)
			},
			expectedCode: http.StatusOK,
			contains:     `"liked_message_ids":[]`,
		},
		{
			name:    "logged in viewer",
			path:    "/users/3",
			session: asSession(8),
			mockSetup: func(accounts *MockAccountGetter, messages *MockAuthorMessagesGetter, likes *MockLikedIDsGetter) {
				accounts.EXPECT().Get(gomock.Any(), int64(3)).Return(account, nil)
				messages.EXPECT().RecentByAuthor(gomock.Any(), int64(3), models.DefaultListLimit).Return([]models.Message{{ID: 1}}, nil)
				likes.EXPECT().LikedMessageIDs(gomock.Any(), int64(8)).Return(map[int64]struct{}{1: {}}, nil)
			},
			expectedCode: http.StatusOK,
			contains:     `"liked_message_ids":[1]`,
		},
		{
			name: "missing account",
			path: "/users/4",
			mockSetup: func(accounts *MockAccountGetter, messages *MockAuthorMessagesGetter, likes *MockLikedIDsGetter) {
				accounts.EXPECT().Get(gomock.Any(), int64(4)).Return(nil, models.ErrAccountNotFound)
			},
			expectedCode: http.StatusNotFound,
			contains:     `"error":"not found: account"`,
		},
		{
			name:         "bad id",
			path:         "/users/abc",
			mockSetup:    func(accounts *MockAccountGetter, messages *MockAuthorMessagesGetter, likes *MockLikedIDsGetter) {},
			expectedCode: http.StatusBadRequest,
			contains:     `"error":"invalid id"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := NewMockAccountGetter(ctrl)
			messages := NewMockAuthorMessagesGetter(ctrl)
			likes := NewMockLikedIDsGetter(ctrl)
			tt.mockSetup(accounts, messages, likes)

			rr := serve(t, http.MethodGet, "/users/{id}", tt.path, NewShowUserHandler(accounts, messages, likes), nil, tt.session)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.contains)
		})
	}
}

func TestFollowingAndFollowersHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := NewMockAccountGetter(ctrl)
	following := NewMockFollowingLister(ctrl)
	followers := NewMockFollowersLister(ctrl)

	accounts.EXPECT().Get(gomock.Any(), int64(1)).Return(&models.Account{ID: 1}, nil).Times(2)
	accounts.EXPECT().Get(gomock.Any(), int64(2)).Return(nil, models.ErrAccountNotFound)
	following.EXPECT().Following(gomock.Any(), int64(1)).Return([]models.Account{{ID: 2, Username: "bob"}}, nil)
	followers.EXPECT().Followers(gomock.Any(), int64(1)).Return([]models.Account{}, nil)

	rr := serve(t, http.MethodGet, "/users/{id}/following", "/users/1/following", NewFollowingHandler(accounts, following), nil, asSession(1))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"bob"`)

	rr = serve(t, http.MethodGet, "/users/{id}/followers", "/users/1/followers", NewFollowersHandler(accounts, followers), nil, asSession(1))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"accounts":[]}`, rr.Body.String())

	rr = serve(t, http.MethodGet, "/users/{id}/followers", "/users/2/followers", NewFollowersHandler(accounts, followers), nil, asSession(1))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUserLikesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := NewMockAccountGetter(ctrl)
	likes := NewMockLikedMessagesGetter(ctrl)

	accounts.EXPECT().Get(gomock.Any(), int64(1)).Return(&models.Account{ID: 1}, nil)
	likes.EXPECT().LikedMessages(gomock.Any(), int64(1)).Return([]models.Message{{ID: 5}, {ID: 4}}, nil)

	rr := serve(t, http.MethodGet, "/users/{id}/likes", "/users/1/likes", NewUserLikesHandler(accounts, likes), nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":5`)
}

func TestFollowHandler(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		session      *middlewares.Session
		svcErr       error
		callsSvc     bool
		expectedCode int
	}{
		{name: "follow", path: "/users/follow/2", session: asSession(1), callsSvc: true, expectedCode: http.StatusNoContent},
		{name: "anonymous", path: "/users/follow/2", expectedCode: http.StatusUnauthorized},
		{name: "bad id", path: "/users/follow/0", session: asSession(1), expectedCode: http.StatusBadRequest},
		{name: "self follow", path: "/users/follow/2", session: asSession(1), callsSvc: true, svcErr: models.ErrSelfFollow, expectedCode: http.StatusBadRequest},
		{name: "already following", path: "/users/follow/2", session: asSession(1), callsSvc: true, svcErr: models.ErrAlreadyFollowing, expectedCode: http.StatusConflict},
		{name: "missing followee", path: "/users/follow/2", session: asSession(1), callsSvc: true, svcErr: models.ErrAccountNotFound, expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockFollower(ctrl)
			if tt.callsSvc {
				svc.EXPECT().Follow(gomock.Any(), int64(1), int64(2)).Return(tt.svcErr)
			}

			rr := serve(t, http.MethodPost, "/users/follow/{id}", tt.path, NewFollowHandler(svc), nil, tt.session)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestStopFollowingHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockUnfollower(ctrl)
	svc.EXPECT().Unfollow(gomock.Any(), int64(1), int64(2)).Return(nil)
	svc.EXPECT().Unfollow(gomock.Any(), int64(1), int64(3)).Return(models.ErrNotFollowing)

	h := NewStopFollowingHandler(svc)

	rr := serve(t, http.MethodPost, "/users/stop-following/{id}", "/users/stop-following/2", h, nil, asSession(1))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(t, http.MethodPost, "/users/stop-following/{id}", "/users/stop-following/3", h, nil, asSession(1))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateProfileHandler(t *testing.T) {
	update := models.ProfileUpdate{Password: "pw", Username: "new", Email: "new@example.com"}

	tests := []struct {
		name         string
		body         any
		session      *middlewares.Session
		mockSetup    func(svc *MockProfileUpdater)
		expectedCode int
	}{
		{
			name:    "updated",
			body:    update,
			session: asSession(1),
			mockSetup: func(svc *MockProfileUpdater) {
				svc.EXPECT().UpdateProfile(gomock.Any(), int64(1), update).Return(&models.Account{ID: 1, Username: "new"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "wrong password",
			body:    update,
			session: asSession(1),
			mockSetup: func(svc *MockProfileUpdater) {
				svc.EXPECT().UpdateProfile(gomock.Any(), int64(1), update).Return(nil, models.ErrUnauthorized)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:    "email taken",
			body:    update,
			session: asSession(1),
			mockSetup: func(svc *MockProfileUpdater) {
				svc.EXPECT().UpdateProfile(gomock.Any(), int64(1), update).Return(nil, models.ErrDuplicateEmail)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "invalid JSON",
			body:         "{",
			session:      asSession(1),
			mockSetup:    func(svc *MockProfileUpdater) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "anonymous",
			body:         update,
			mockSetup:    func(svc *MockProfileUpdater) {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockProfileUpdater(ctrl)
			tt.mockSetup(svc)

			rr := serve(t, http.MethodPost, "/users/profile", "/users/profile", NewUpdateProfileHandler(svc), tt.body, tt.session)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestDeleteAccountHandler(t *testing.T) {
	tests := []struct {
		name         string
		session      *middlewares.Session
		deleteErr    error
		revokeErr    error
		expectDelete bool
		expectRevoke bool
		expectedCode int
	}{
		{name: "deleted", session: asSession(1), expectDelete: true, expectRevoke: true, expectedCode: http.StatusNoContent},
		{name: "revocation failure still deletes", session: asSession(1), expectDelete: true, expectRevoke: true, revokeErr: errors.New("redis down"), expectedCode: http.StatusNoContent},
		{name: "already gone", session: asSession(1), expectDelete: true, deleteErr: models.ErrAccountNotFound, expectedCode: http.StatusNotFound},
		{name: "anonymous", expectedCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockAccountDeleter(ctrl)
			revoker := NewMockSessionRevoker(ctrl)
			if tt.expectDelete {
				svc.EXPECT().Delete(gomock.Any(), int64(1)).Return(tt.deleteErr)
			}
			if tt.expectRevoke {
				revoker.EXPECT().Revoke(gomock.Any(), "jti", gomock.Any()).Return(tt.revokeErr)
			}

			rr := serve(t, http.MethodPost, "/users/delete", "/users/delete", NewDeleteAccountHandler(svc, revoker), nil, tt.session)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestDeleteAccountHandler_RevokesAfterCommit(t *testing.T) {
	tests := []struct {
		name         string
		commitErr    error
		expectRevoke bool
		expectedCode int
	}{
		{name: "committed", expectRevoke: true, expectedCode: http.StatusNoContent},
		{name: "commit failure keeps session", commitErr: sql.ErrConnDone, expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()

			mock.ExpectBegin()
			mock.ExpectCommit().WillReturnError(tt.commitErr)

			svc := NewMockAccountDeleter(ctrl)
			revoker := NewMockSessionRevoker(ctrl)
			svc.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
			if tt.expectRevoke {
				revoker.EXPECT().Revoke(gomock.Any(), "jti", gomock.Any()).Return(nil)
			}

			handler := middlewares.TxMiddleware(sqlx.NewDb(mockDB, "sqlmock"))(NewDeleteAccountHandler(svc, revoker))

			req := httptest.NewRequest(http.MethodPost, "/users/delete", nil)
			req = req.WithContext(middlewares.WithSession(req.Context(), *asSession(1)))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
