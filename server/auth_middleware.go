package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/reelhouse/auth-service/token"
	"github.com/reelhouse/auth-service/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeyRole stores the authenticated user's role
	ContextKeyRole ContextKey = "role"
)

// Authenticate is middleware that validates a Bearer access token, loads the
// user's current role with a fresh store read, and attaches both to the
// request context. Expired and invalid tokens are rejected with distinct
// messages.
func (s *Server) Authenticate() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeErrorMessage(w, http.StatusUnauthorized, "Missing access token. Please provide an Authorization header")
				return
			}

			userID, err := s.tokens.Verify(token.KindAccess, raw)
			if err != nil {
				s.writeError(w, r, err)
				return
			}

			// Role comes from the store, not the token, so role changes take
			// effect before the token expires.
			user, err := s.users.GetByID(r.Context(), userID)
			if errors.Is(err, users.ErrNotFound) {
				s.writeError(w, r, token.ErrTokenInvalid)
				return
			}
			if err != nil {
				s.writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, ContextKeyRole, user.Role)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole is middleware that rejects requests whose authenticated role
// does not match the expected one. It must be chained after Authenticate. A
// mismatch writes 403 and never lets the wrapped handler run.
func (s *Server) RequireRole(role users.RoleType) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			got, ok := r.Context().Value(ContextKeyRole).(users.RoleType)
			if !ok || got != role {
				writeErrorMessage(w, http.StatusForbidden, "Forbidden")
				return
			}
			next(w, r)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(string)
	return id, ok && id != ""
}
