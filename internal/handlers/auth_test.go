package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSignupHandler(t *testing.T) {
	input := models.SignupInput{Username: "john", Email: "john@example.com", Password: "secret1"}
	account := &models.Account{ID: 5, Username: "john", Email: "john@example.com"}

	tests := []struct {
		name         string
		body         any
		mockSetup    func(svc *MockSignuper, tokens *MockTokenGenerator)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: input,
			mockSetup: func(svc *MockSignuper, tokens *MockTokenGenerator) {
				svc.EXPECT().Signup(gomock.Any(), input).Return(account, nil)
				tokens.EXPECT().Generate(gomock.Any(), int64(5)).Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: `{"token":"JWT_TOKEN","account":{"id":5,"username":"john","email":"john@example.com","image_url":"","header_image_url":"","bio":"","location":"","created_at":"0001-01-01T00:00:00Z"}}`,
		},
		{
			name:         "invalid JSON",
			body:         "{invalid json}",
			mockSetup:    func(svc *MockSignuper, tokens *MockTokenGenerator) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"invalid request body"}`,
		},
		{
			name: "validation error",
			body: input,
			mockSetup: func(svc *MockSignuper, tokens *MockTokenGenerator) {
				svc.EXPECT().Signup(gomock.Any(), input).Return(nil, models.ErrInvalidInput)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"validation failed: invalid input"}`,
		},
		{
			name: "username taken",
			body: input,
			mockSetup: func(svc *MockSignuper, tokens *MockTokenGenerator) {
				svc.EXPECT().Signup(gomock.Any(), input).Return(nil, models.ErrDuplicateUsername)
			},
			expectedCode: http.StatusConflict,
			expectedBody: `{"error":"conflict: username already taken"}`,
		},
		{
			name: "token error",
			body: input,
			mockSetup: func(svc *MockSignuper, tokens *MockTokenGenerator) {
				svc.EXPECT().Signup(gomock.Any(), input).Return(account, nil)
				tokens.EXPECT().Generate(gomock.Any(), int64(5)).Return("", errors.New("sign error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockSignuper(ctrl)
			tokens := NewMockTokenGenerator(ctrl)
			tt.mockSetup(svc, tokens)

			rr := serve(t, http.MethodPost, "/signup", "/signup", NewSignupHandler(svc, tokens), tt.body, nil)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         any
		mockSetup    func(svc *MockAuthenticator, tokens *MockTokenGenerator)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: LoginRequest{Username: "john", Password: "pass123"},
			mockSetup: func(svc *MockAuthenticator, tokens *MockTokenGenerator) {
				svc.EXPECT().Authenticate(gomock.Any(), "john", "pass123").Return(&models.Account{ID: 1, Username: "john"}, nil)
				tokens.EXPECT().Generate(gomock.Any(), int64(1)).Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid JSON",
			body:         "{invalid json}",
			mockSetup:    func(svc *MockAuthenticator, tokens *MockTokenGenerator) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"invalid request body"}`,
		},
		{
			name: "wrong credentials",
			body: LoginRequest{Username: "john", Password: "wrong"},
			mockSetup: func(svc *MockAuthenticator, tokens *MockTokenGenerator) {
				svc.EXPECT().Authenticate(gomock.Any(), "john", "wrong").Return(nil, models.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"forbidden: invalid username or password"}`,
		},
		{
			name: "internal error",
			body: LoginRequest{Username: "john", Password: "pass123"},
			mockSetup: func(svc *MockAuthenticator, tokens *MockTokenGenerator) {
				svc.EXPECT().Authenticate(gomock.Any(), "john", "pass123").Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockAuthenticator(ctrl)
			tokens := NewMockTokenGenerator(ctrl)
			tt.mockSetup(svc, tokens)

			rr := serve(t, http.MethodPost, "/login", "/login", NewLoginHandler(svc, tokens), tt.body, nil)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			} else {
				assert.Contains(t, rr.Body.String(), `"token":"JWT_TOKEN"`)
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	session := &middlewares.Session{AccountID: 1, TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name         string
		session      *middlewares.Session
		revokeErr    error
		expectRevoke bool
		expectedCode int
	}{
		{name: "anonymous", expectedCode: http.StatusUnauthorized},
		{name: "revoked", session: session, expectRevoke: true, expectedCode: http.StatusNoContent},
		{name: "store error", session: session, expectRevoke: true, revokeErr: errors.New("redis down"), expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			revoker := NewMockSessionRevoker(ctrl)
			if tt.expectRevoke {
				revoker.EXPECT().
					Revoke(gomock.Any(), "jti-1", gomock.Any()).
					DoAndReturn(func(_ any, _ string, ttl time.Duration) error {
						assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 60)
						return tt.revokeErr
					})
			}

			rr := serve(t, http.MethodPost, "/logout", "/logout", NewLogoutHandler(revoker), nil, tt.session)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
