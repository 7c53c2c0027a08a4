package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"truthlens/internal/api/middleware"
	"truthlens/internal/config"
	"truthlens/pkg/logger"
)

type fakeStore struct {
	mu     sync.Mutex
	counts map[string]int64
	keys   []string
	err    error
}

func (s *fakeStore) CheckRateLimit(_ context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	if s.err != nil {
		return false, 0, time.Time{}, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	s.keys = append(s.keys, key)
	return s.counts[key] <= limit, max(limit-s.counts[key], 0), time.Now().Add(window), nil
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRateLimiter(t *testing.T) {
	store := &fakeStore{}
	h := middleware.RateLimiter(store, config.RateLimitConfig{RequestsPerMinute: 2, RequestsPerHour: 100}, logger.NewNop())(ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if i == 0 {
			assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
		}
		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
			assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
		}
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Contains(t, store.keys, "ip:10.0.0.1:m")
	assert.Contains(t, store.keys, "ip:10.0.0.1:h")
}

func TestRateLimiterUsesForwardedFor(t *testing.T) {
	store := &fakeStore{}
	h := middleware.RateLimiter(store, config.RateLimitConfig{RequestsPerMinute: 5}, logger.NewNop())(ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"ip:203.0.113.7:m"}, store.keys)
}

func TestRateLimiterKeysAdminCallersByAddress(t *testing.T) {
	store := &fakeStore{}
	limit := middleware.RateLimiter(store, config.RateLimitConfig{RequestsPerMinute: 5}, logger.NewNop())
	h := limit(middleware.AdminAuth("s3cret")(ok))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/patterns", nil)
	req.RemoteAddr = "10.0.0.9:4000"
	req.Header.Set(middleware.AdminTokenHeader, "s3cret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"ip:10.0.0.9:m"}, store.keys)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	store := &fakeStore{err: errors.New("redis down")}
	h := middleware.RateLimiter(store, config.RateLimitConfig{RequestsPerMinute: 1}, logger.NewNop())(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminAuth(t *testing.T) {
	var sawAdmin bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAdmin = middleware.IsAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{"disabled", "", "anything", http.StatusForbidden},
		{"missing", "s3cret", "", http.StatusUnauthorized},
		{"wrong", "s3cret", "nope", http.StatusForbidden},
		{"valid", "s3cret", "s3cret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sawAdmin = false
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/patterns", nil)
			if tt.provided != "" {
				req.Header.Set(middleware.AdminTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()
			middleware.AdminAuth(tt.configured)(inner).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want == http.StatusOK, sawAdmin)
		})
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.Logger(logger.NewNop())(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
