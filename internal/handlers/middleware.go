package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/skillmatch-io/apiserver/internal/auth"
)

// RequireAuth verifies the Authorization header and injects the caller's
// identity into the request context. The header may carry the token raw
// or with a "Bearer " prefix.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}
			if rest, ok := strings.CutPrefix(raw, "Bearer "); ok {
				raw = strings.TrimSpace(rest)
			}

			identity, err := tokens.Verify(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), contextIdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to callers holding the given role. It must
// run after RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}
			if identity.Role != role {
				writeError(w, http.StatusForbidden, "Access denied. Incorrect role.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
