package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(3, time.Minute)
	l.now = func() time.Time { return now }
	l.lastResetTime = now

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.1.1.1"), "request %d", i+1)
	}
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "limits are per IP")

	now = now.Add(2 * time.Minute)
	assert.True(t, l.Allow("1.1.1.1"), "window reset")
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	l := NewRateLimiter(0, 0)
	assert.Equal(t, DefaultRateLimit, l.limit)
	assert.Equal(t, DefaultRateWindow, l.window)
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		want       string
	}{
		{"remote addr", "10.0.0.1:5555", "", nil, "10.0.0.1"},
		{"forwarded ignored from untrusted peer", "10.0.0.1:5555", "9.9.9.9", nil, "10.0.0.1"},
		{"forwarded from trusted proxy", "127.0.0.1:5555", "8.8.8.8, 9.9.9.9", []string{"127.0.0.1"}, "9.9.9.9"},
		{"trusted proxy without header", "127.0.0.1:5555", "", []string{"127.0.0.1"}, "127.0.0.1"},
		{"addr without port", "10.0.0.2", "", nil, "10.0.0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no origin header", []string{"https://chibox.gg"}, "", true},
		{"empty allow list", nil, "https://evil.example", true},
		{"allowed origin", []string{"https://chibox.gg/"}, "https://chibox.gg", true},
		{"case insensitive", []string{"https://ChiBox.gg"}, "https://chibox.GG", true},
		{"rejected origin", []string{"https://chibox.gg"}, "https://evil.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws/live", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, originChecker(tt.allowed)(req))
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	var readErr error
	h := RequestSizeLimitMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		_, readErr = r.Body.Read(buf)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}
