// Package token mints and verifies the two classes of signed tokens used by
// the authentication flow: short-lived access tokens presented on every
// protected request, and long-lived refresh tokens exchanged for new access
// tokens. The two kinds are signed with independent secrets and expiries, so
// a token of one kind never verifies as the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects which signing secret and expiry a token is bound to.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrTokenInvalid is returned when a token fails the signature or
	// structure check. Callers must never tear down session state on it.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned when a token carries a valid signature but
	// its expiry has elapsed.
	ErrTokenExpired = errors.New("token expired")
)

// Config carries the four independent signing settings. None of them may be
// zero and none is derived from another.
type Config struct {
	AccessSecret  []byte
	AccessTTL     time.Duration
	RefreshSecret []byte
	RefreshTTL    time.Duration
}

// Claims is the signed payload of both token kinds.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed tokens. It performs pure cryptographic
// computation only; session bookkeeping belongs to the caller.
type Service struct {
	config  Config
	nowFunc func() time.Time
}

type ServiceOption func(*Service)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

func NewService(cfg Config, options ...ServiceOption) (*Service, error) {
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("token: access secret is required")
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("token: refresh secret is required")
	}
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("token: access TTL must be positive")
	}
	if cfg.RefreshTTL <= 0 {
		return nil, errors.New("token: refresh TTL must be positive")
	}

	s := &Service{
		config:  cfg,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Issue signs a token of the given kind for userID using the kind-specific
// secret and expiry.
func (s *Service) Issue(kind Kind, userID string) (string, error) {
	secret, ttl, err := s.secretAndTTL(kind)
	if err != nil {
		return "", err
	}

	now := s.nowFunc()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token: signing %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks a token of the given kind and returns the embedded user ID.
// An elapsed expiry on an otherwise valid token reports ErrTokenExpired;
// every other failure reports ErrTokenInvalid.
func (s *Service) Verify(kind Kind, raw string) (string, error) {
	secret, _, err := s.secretAndTTL(kind)
	if err != nil {
		return "", err
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.nowFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !parsed.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (s *Service) secretAndTTL(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return s.config.AccessSecret, s.config.AccessTTL, nil
	case KindRefresh:
		return s.config.RefreshSecret, s.config.RefreshTTL, nil
	}
	return nil, 0, fmt.Errorf("token: unknown kind %q", kind)
}
