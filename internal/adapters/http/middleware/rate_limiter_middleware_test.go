package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
)

type stubLimiter struct {
	decision domain.RateDecision
	gotKey   string
}

func (s *stubLimiter) Admit(_ context.Context, clientKey string, _ time.Time) domain.RateDecision {
	s.gotKey = clientKey
	return s.decision
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterMiddleware_SetsHeadersOnAllowedResponses(t *testing.T) {
	limiter := &stubLimiter{decision: domain.RateDecision{Allowed: true, Limit: 5, Remaining: 2, ResetSeconds: 31}}

	var called bool
	handler := NewRateLimiterMiddleware(limiter)(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/forms/contact", nil))

	assert.True(t, called, "expected next handler to run")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "31", rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimiterMiddleware_RejectsWhenDenied(t *testing.T) {
	limiter := &stubLimiter{decision: domain.RateDecision{Allowed: false, Limit: 3, Remaining: 0, ResetSeconds: 42}}

	var called bool
	handler := NewRateLimiterMiddleware(limiter)(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/forms/contact", nil))

	assert.False(t, called, "next handler must not run when rejected")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	var body struct {
		Message    string `json:"message"`
		RetryAfter int    `json:"retryAfter"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, 42, body.RetryAfter)
}

func TestRateLimiterMiddleware_NilLimiterPassesThrough(t *testing.T) {
	var called bool
	handler := NewRateLimiterMiddleware(nil)(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestClientKeyDerivation(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "first forwarded address wins",
			remoteAddr: "10.0.0.9:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 198.51.100.2", "X-Real-IP": "192.0.2.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "real ip when no forwarded-for",
			remoteAddr: "10.0.0.9:1234",
			headers:    map[string]string{"X-Real-IP": "192.0.2.1"},
			want:       "192.0.2.1",
		},
		{
			name:       "remote addr host fallback",
			remoteAddr: "10.0.0.9:1234",
			want:       "10.0.0.9",
		},
		{
			name:       "raw remote addr when not host:port",
			remoteAddr: "10.0.0.9",
			want:       "10.0.0.9",
		},
		{
			name: "sentinel when nothing is available",
			want: fallbackClientKey,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limiter := &stubLimiter{decision: domain.RateDecision{Allowed: true, Limit: 1, Remaining: 0}}
			var called bool
			handler := NewRateLimiterMiddleware(limiter)(okHandler(&called))

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tc.want, limiter.gotKey)
		})
	}
}
