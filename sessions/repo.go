package sessions

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no session matches the given user or token.
var ErrNotFound = errors.New("session not found")

// Repo is the session registry. It stores bindings and makes no judgment
// about token validity or expiry - that belongs to the token service and the
// authentication flow.
//
// Upsert must be atomic per user ID: concurrent logins for the same user may
// not produce more than one session row or leave a stale token lookup behind.
// Deletes are idempotent and succeed when the target is already gone.
type Repo interface {
	Upsert(ctx context.Context, userID, refreshToken string) error
	GetByUser(ctx context.Context, userID string) (*Session, error)
	GetByToken(ctx context.Context, refreshToken string) (*Session, error)
	DeleteByUser(ctx context.Context, userID string) error
	DeleteByToken(ctx context.Context, refreshToken string) error
}
