package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dreamshare/dreams-backend/internal/api/respond"
)

// ExtractBearerToken extracts the token from the Authorization header.
// Expects the "Bearer <token>" format.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <token>'")
	}
	return parts[1], nil
}

// Require wraps a handler so it only runs for requests carrying a valid
// bearer token. The verified identity is attached to the request context.
// OPTIONS requests pass through untouched so CORS preflights never need
// credentials.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		token, err := ExtractBearerToken(r)
		if err != nil {
			respond.WriteError(w, http.StatusUnauthorized, "authentication failed")
			return
		}
		id, err := a.VerifyToken(token)
		if err != nil {
			respond.WriteError(w, http.StatusUnauthorized, "authentication failed")
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
	})
}
