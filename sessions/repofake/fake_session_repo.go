package fakesessionrepo

import (
	"context"
	"sync"

	"github.com/reelhouse/auth-service/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory sessions.Repo for tests and local
// development. The mutex serializes upserts, preserving the one-session-per-
// user invariant under concurrent logins.
type FakeSessionRepo struct {
	byUser  map[string]string // user id to refresh token
	byToken map[string]string // refresh token to user id
	lock    sync.RWMutex
}

func New() *FakeSessionRepo {
	return &FakeSessionRepo{
		byUser:  make(map[string]string),
		byToken: make(map[string]string),
	}
}

func (sr *FakeSessionRepo) Upsert(_ context.Context, userID, refreshToken string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if old, ok := sr.byUser[userID]; ok {
		delete(sr.byToken, old)
	}
	sr.byUser[userID] = refreshToken
	sr.byToken[refreshToken] = userID
	return nil
}

func (sr *FakeSessionRepo) GetByUser(_ context.Context, userID string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	token, ok := sr.byUser[userID]
	if !ok {
		return nil, sessions.ErrNotFound
	}
	return &sessions.Session{UserID: userID, RefreshToken: token}, nil
}

func (sr *FakeSessionRepo) GetByToken(_ context.Context, refreshToken string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	userID, ok := sr.byToken[refreshToken]
	if !ok {
		return nil, sessions.ErrNotFound
	}
	return &sessions.Session{UserID: userID, RefreshToken: refreshToken}, nil
}

func (sr *FakeSessionRepo) DeleteByUser(_ context.Context, userID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if token, ok := sr.byUser[userID]; ok {
		delete(sr.byToken, token)
		delete(sr.byUser, userID)
	}
	return nil
}

func (sr *FakeSessionRepo) DeleteByToken(_ context.Context, refreshToken string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if userID, ok := sr.byToken[refreshToken]; ok {
		delete(sr.byUser, userID)
		delete(sr.byToken, refreshToken)
	}
	return nil
}
