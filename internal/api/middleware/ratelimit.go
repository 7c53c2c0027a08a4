package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"truthlens/internal/config"
	"truthlens/internal/metrics"
	"truthlens/pkg/logger"
)

// RateLimitStore counts requests per fixed window
type RateLimitStore interface {
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error)
}

type window struct {
	name     string
	limit    int
	duration time.Duration
}

// RateLimiter returns middleware enforcing the per-minute and per-hour limits.
// Store errors let the request through.
func RateLimiter(store RateLimitStore, cfg config.RateLimitConfig, log *logger.Logger) func(next http.Handler) http.Handler {
	log = log.WithComponent("ratelimit")

	var windows []window
	if cfg.RequestsPerMinute > 0 {
		windows = append(windows, window{"m", cfg.RequestsPerMinute, time.Minute})
	}
	if cfg.RequestsPerHour > 0 {
		windows = append(windows, window{"h", cfg.RequestsPerHour, time.Hour})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || len(windows) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			clientID := getClientID(r)

			for i, win := range windows {
				allowed, remaining, resetTime, err := store.CheckRateLimit(
					r.Context(),
					fmt.Sprintf("%s:%s", clientID, win.name),
					int64(win.limit),
					win.duration,
				)
				if err != nil {
					log.Warn().Err(err).Msg("rate limit check failed, allowing request")
					metrics.RecordError("ratelimit_check_failed", "ratelimit")
					break
				}

				// headers describe the tightest window
				if i == 0 {
					w.Header().Set("X-RateLimit-Limit", strconv.Itoa(win.limit))
					w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
					w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))
				}

				if !allowed {
					retry := max(int64(time.Until(resetTime).Seconds()), 1)
					w.Header().Set("Retry-After", strconv.FormatInt(retry, 10))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusTooManyRequests)
					_, _ = w.Write([]byte(`{"error":"rate limit exceeded","error_code":"RATE_LIMITED"}`))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientID identifies the caller by IP address. The limiter runs ahead of
// admin auth, so admin callers share their address's budget.
func getClientID(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		ip, _, _ = strings.Cut(ip, ",")
		ip = strings.TrimSpace(ip)
	}
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		ip = r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
	}

	return "ip:" + ip
}
