package middleware

import (
	"context"
	"net/http"
	"strings"

	"pomotrack-backend/internal/auth"
	"pomotrack-backend/internal/config"
	"pomotrack-backend/internal/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireAuth guards a handler behind a bearer token. It verifies the token
// and puts the resolved identity into the request context; the user row is
// not re-fetched, claims are trusted for the request's duration.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			utils.JSONError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			utils.JSONError(w, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		identity, err := auth.VerifyToken(parts[1], config.Envs.JWTSecret)
		if err != nil {
			utils.JSONError(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity attached by RequireAuth.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok
}
