// Package redissessionrepo provides a Redis-backed sessions.Repo. Each
// mutation runs as a single Lua script so both lookup directions (user to
// token and token to user) change in one atomic step, which keeps the
// one-session-per-user invariant safe under concurrent logins.
package redissessionrepo

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/reelhouse/auth-service/sessions"
)

var _ sessions.Repo = (*Store)(nil)

const upsertScript = `
local old = redis.call("GET", KEYS[1])
if old and old ~= ARGV[2] then
  redis.call("DEL", ARGV[3] .. old)
end
redis.call("SET", KEYS[1], ARGV[2])
redis.call("SET", ARGV[3] .. ARGV[2], ARGV[1])
return 1
`

var upsertLua = redis.NewScript(upsertScript)

const deleteByUserScript = `
local token = redis.call("GET", KEYS[1])
if not token then
  return 0
end
redis.call("DEL", KEYS[1])
redis.call("DEL", ARGV[1] .. token)
return 1
`

var deleteByUserLua = redis.NewScript(deleteByUserScript)

const deleteByTokenScript = `
local user = redis.call("GET", KEYS[1])
if not user then
  return 0
end
redis.call("DEL", KEYS[1])
redis.call("DEL", ARGV[1] .. user)
return 1
`

var deleteByTokenLua = redis.NewScript(deleteByTokenScript)

// Store is a Redis-backed session registry.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

func NewStore(client redis.UniversalClient, prefix string) *Store {
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) userKey(userID string) string { return s.userPrefix() + userID }
func (s *Store) tokenKey(token string) string { return s.tokenPrefix() + token }
func (s *Store) userPrefix() string           { return s.prefix + "session:user:" }
func (s *Store) tokenPrefix() string          { return s.prefix + "session:token:" }

func (s *Store) Upsert(ctx context.Context, userID, refreshToken string) error {
	err := upsertLua.Run(ctx, s.redis,
		[]string{s.userKey(userID)},
		userID, refreshToken, s.tokenPrefix(),
	).Err()
	if err != nil {
		return fmt.Errorf("redissessionrepo: upserting session: %w", err)
	}
	return nil
}

func (s *Store) GetByUser(ctx context.Context, userID string) (*sessions.Session, error) {
	token, err := s.redis.Get(ctx, s.userKey(userID)).Result()
	if err == redis.Nil {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redissessionrepo: fetching session by user: %w", err)
	}
	return &sessions.Session{UserID: userID, RefreshToken: token}, nil
}

func (s *Store) GetByToken(ctx context.Context, refreshToken string) (*sessions.Session, error) {
	userID, err := s.redis.Get(ctx, s.tokenKey(refreshToken)).Result()
	if err == redis.Nil {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redissessionrepo: fetching session by token: %w", err)
	}
	return &sessions.Session{UserID: userID, RefreshToken: refreshToken}, nil
}

func (s *Store) DeleteByUser(ctx context.Context, userID string) error {
	err := deleteByUserLua.Run(ctx, s.redis,
		[]string{s.userKey(userID)},
		s.tokenPrefix(),
	).Err()
	if err != nil {
		return fmt.Errorf("redissessionrepo: deleting session by user: %w", err)
	}
	return nil
}

func (s *Store) DeleteByToken(ctx context.Context, refreshToken string) error {
	err := deleteByTokenLua.Run(ctx, s.redis,
		[]string{s.tokenKey(refreshToken)},
		s.userPrefix(),
	).Err()
	if err != nil {
		return fmt.Errorf("redissessionrepo: deleting session by token: %w", err)
	}
	return nil
}
