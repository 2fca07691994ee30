// Package auth orchestrates registration, login, refresh, and logout over the
// user store, the session registry, and the token service. It owns the error
// taxonomy the HTTP layer translates into status codes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reelhouse/auth-service/sessions"
	"github.com/reelhouse/auth-service/token"
	"github.com/reelhouse/auth-service/users"
)

// Repos holds the store dependencies of the authentication flow.
type Repos struct {
	Users    users.Repo
	Sessions sessions.Repo
}

// Service drives a user's session lifecycle.
type Service struct {
	repos   Repos
	tokens  *token.Service
	nowTime func() time.Time
}

type ServiceOption func(*Service)

// WithNowTime sets the clock (primarily for testing).
func WithNowTime(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = now
	}
}

func NewService(repos Repos, tokens *token.Service, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("auth: users repo is required")
	}
	if repos.Sessions == nil {
		return nil, errors.New("auth: sessions repo is required")
	}
	if tokens == nil {
		return nil, errors.New("auth: token service is required")
	}

	s := &Service{
		repos:   repos,
		tokens:  tokens,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// NewUser is the registration input.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User         *users.User
	AccessToken  string
	RefreshToken string
}

// Register creates a user with a hashed password. No session is created; the
// caller must log in separately.
func (s *Service) Register(ctx context.Context, newUser NewUser) (*users.User, error) {
	email := strings.ToLower(strings.TrimSpace(newUser.Email))
	if newUser.Name == "" {
		return nil, fmt.Errorf("%w: please provide a name", ErrValidation)
	}
	if err := users.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := users.ValidatePassword(newUser.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := users.HashPassword(newUser.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hashing password: %w", err)
	}

	image := newUser.Image
	if image == "" {
		image = users.DefaultImageURL
	}

	user := &users.User{
		Name:         newUser.Name,
		Email:        email,
		Image:        image,
		PasswordHash: hash,
		Role:         users.RoleUser,
		CreatedAt:    s.nowTime(),
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("auth: creating user: %w", err)
	}
	return user, nil
}

// Login verifies credentials, issues an access/refresh token pair, and
// replaces any prior session for the user. Issuing a new session silently
// logs out other devices.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repos.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, users.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("auth: looking up user: %w", err)
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrPasswordMismatch
	}

	// Credentials are verified; only now may tokens exist.
	accessToken, err := s.tokens.Issue(token.KindAccess, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: issuing access token: %w", err)
	}
	refreshToken, err := s.tokens.Issue(token.KindRefresh, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: issuing refresh token: %w", err)
	}

	if err := s.repos.Sessions.Upsert(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("auth: storing session: %w", err)
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a stored, unexpired refresh token for a new access token.
// The refresh token itself is not rotated and its session row is untouched on
// success. An expired token tears the session down, forcing a fresh login.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrTokenMissing
	}

	session, err := s.repos.Sessions.GetByToken(ctx, refreshToken)
	if errors.Is(err, sessions.ErrNotFound) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("auth: looking up session: %w", err)
	}

	if _, err := s.tokens.Verify(token.KindRefresh, refreshToken); err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			if delErr := s.repos.Sessions.DeleteByToken(ctx, refreshToken); delErr != nil {
				return "", fmt.Errorf("auth: deleting expired session: %w", delErr)
			}
			return "", ErrRefreshExpired
		}
		// Invalid tokens never tear down session state.
		return "", err
	}

	accessToken, err := s.tokens.Issue(token.KindAccess, session.UserID)
	if err != nil {
		return "", fmt.Errorf("auth: issuing access token: %w", err)
	}
	return accessToken, nil
}

// Logout deletes the user's session. Access tokens already in flight remain
// verifiable until their own expiry; logout only prevents future refreshes.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if _, err := s.repos.Sessions.GetByUser(ctx, userID); err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("auth: looking up session: %w", err)
	}
	if err := s.repos.Sessions.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth: deleting session: %w", err)
	}
	return nil
}
