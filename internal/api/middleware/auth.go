package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
)

// ContextKey is a type for context keys
type ContextKey string

// ContextKeyIsAdmin is the context key for admin status
const ContextKeyIsAdmin ContextKey = "is_admin"

// AdminTokenHeader carries the admin token
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth returns middleware that requires the configured admin token.
// With no token configured the admin surface is disabled.
func AdminAuth(token string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if token == "" {
				writeAuthError(w, http.StatusForbidden, "admin endpoints are disabled", "ADMIN_DISABLED")
				return
			}

			provided := r.Header.Get(AdminTokenHeader)
			if provided == "" {
				writeAuthError(w, http.StatusUnauthorized, "admin token required", "UNAUTHORIZED")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				writeAuthError(w, http.StatusForbidden, "invalid admin token", "FORBIDDEN")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIsAdmin, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAdmin returns whether the request carried a valid admin token
func IsAdmin(ctx context.Context) bool {
	if isAdmin, ok := ctx.Value(ContextKeyIsAdmin).(bool); ok {
		return isAdmin
	}
	return false
}

func writeAuthError(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `","error_code":"` + code + `"}`))
}
