package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/reelhouse/auth-service/token"
	"github.com/reelhouse/auth-service/users"
)

const defaultListLimit = 20

type profileResponse struct {
	Success bool          `json:"success"`
	User    publicProfile `json:"user"`
}

type listUsersResponse struct {
	Success bool            `json:"success"`
	Users   []publicProfile `json:"users"`
	Count   int             `json:"count"`
}

// ProfileHandler returns the authenticated user's public profile.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r.Context())
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "Missing access token. Please provide an Authorization header")
			return
		}

		user, err := s.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				s.writeError(w, r, token.ErrTokenInvalid)
				return
			}
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, profileResponse{Success: true, User: profileOf(user)})
	}
}

// ListUsersHandler returns a page of user profiles. Admin only.
func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset := queryInt(r, "offset", 0)
		limit := queryInt(r, "limit", defaultListLimit)

		list, err := s.users.List(r.Context(), offset, limit)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		profiles := make([]publicProfile, 0, len(list))
		for _, u := range list {
			profiles = append(profiles, profileOf(u))
		}
		writeJSON(w, http.StatusOK, listUsersResponse{
			Success: true,
			Users:   profiles,
			Count:   len(profiles),
		})
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
