package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reelhouse/auth-service/auth"
)

type registerResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    publicProfile `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	User         publicProfile `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterHandler creates a user account. No session is created; the caller
// logs in separately.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.NewUser
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := s.auth.Register(r.Context(), req)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, registerResponse{
			Success: true,
			Message: "User created successfully",
			User:    profileOf(user),
		})
	}
}

// LoginHandler verifies credentials and returns the user's public profile
// with a fresh access/refresh token pair.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Success:      true,
			Message:      "User logged in successfully",
			User:         profileOf(result.User),
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		})
	}
}

// RefreshTokenHandler exchanges a stored refresh token for a new access
// token. The refresh token is never rotated.
func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		accessToken, err := s.auth.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, refreshResponse{
			Success:     true,
			Message:     "Access token refreshed successfully",
			AccessToken: accessToken,
		})
	}
}

// LogoutHandler deletes the authenticated user's session. Outstanding access
// tokens remain valid until their own expiry.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r.Context())
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "Missing access token. Please provide an Authorization header")
			return
		}

		if err := s.auth.Logout(r.Context(), userID); err != nil {
			if errors.Is(err, auth.ErrSessionNotFound) {
				writeErrorMessage(w, http.StatusNotFound, "Session not found. Please log in first")
				return
			}
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, logoutResponse{
			Success: true,
			Message: "User logged out successfully",
		})
	}
}
