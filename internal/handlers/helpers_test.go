package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/stretchr/testify/require"
)

// serve routes a single request through a chi router so URL params resolve.
// A non-nil session is attached to the request context.
func serve(t *testing.T, method, pattern, path string, h http.HandlerFunc, body any, session *middlewares.Session) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if session != nil {
		req = req.WithContext(middlewares.WithSession(req.Context(), *session))
	}

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func asSession(accountID int64) *middlewares.Session {
	return &middlewares.Session{AccountID: accountID, TokenID: "jti"}
}
