package middleware

import (
	"net/http"
	"strings"

	"github.com/fintrack-ai/fintrack-be/internal/auth"
)

// BearerAuth rejects requests without a valid bearer token. It is only
// installed when a JWT secret is configured; deployments that rely on an
// upstream identity proxy run without it.
func BearerAuth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			unauthorized(w)
			return
		}
		if _, err := tokens.Verify(strings.TrimSpace(tokenString)); err != nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"code":401,"message":"missing or invalid bearer token"}`))
}
