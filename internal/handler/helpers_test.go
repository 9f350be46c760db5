package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chibox/chibox-server/internal/middleware"
	"github.com/chibox/chibox-server/internal/session"
)

const testUserID = "user-1"

// serve routes one request through a chi router so URL params resolve.
// A non-empty userID marks the request as authenticated.
func serve(method, pattern, target, body, userID string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		claims := &session.Claims{UserID: userID, Username: "alice", SessionID: "sess-1"}
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
