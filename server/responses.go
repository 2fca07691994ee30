package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/reelhouse/auth-service/auth"
	"github.com/reelhouse/auth-service/token"
	"github.com/reelhouse/auth-service/users"
)

const contentTypeJSON = "application/json; charset=utf-8"

// internalErrorMessage is the fixed text for unexpected failures. Store
// internals never reach the caller.
const internalErrorMessage = "Internal server error"

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// publicProfile is the user shape returned to callers.
type publicProfile struct {
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Image string         `json:"image,omitempty"`
	Role  users.RoleType `json:"role"`
}

func profileOf(u *users.User) publicProfile {
	return publicProfile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
		Role:  u.Role,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

// writeError translates the auth/token error taxonomy into a stable
// status and message pair.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeErrorMessage(w, status, message)
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrDuplicateEmail):
		return http.StatusConflict, "Email is already in use. Please enter a different email."
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusUnauthorized, "Email is not registered. Please register first"
	case errors.Is(err, auth.ErrPasswordMismatch):
		return http.StatusUnauthorized, "Password is incorrect"
	case errors.Is(err, auth.ErrTokenMissing):
		return http.StatusBadRequest, "refresh_token not found. Please provide refresh_token"
	case errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusNotFound, "Session not found. Please provide a valid refresh token"
	case errors.Is(err, auth.ErrRefreshExpired):
		return http.StatusUnauthorized, "Refresh token is expired. Please login again"
	case errors.Is(err, token.ErrTokenExpired):
		return http.StatusUnauthorized, "Access token has expired. Please log in again."
	case errors.Is(err, token.ErrTokenInvalid):
		return http.StatusUnauthorized, "Invalid token"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
