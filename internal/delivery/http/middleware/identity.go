package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// UserHeader carries the authenticated caller. Authentication happens upstream.
const UserHeader = "X-User-Uid"

type ctxKey struct{}

// RequireUser rejects requests without a caller uid and stores it in the context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(UserHeader))
		if uid == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing " + UserHeader + " header", "code": "unauthenticated"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, uid)))
	})
}

// UserUID returns the caller set by RequireUser.
func UserUID(ctx context.Context) string {
	uid, _ := ctx.Value(ctxKey{}).(string)
	return uid
}
