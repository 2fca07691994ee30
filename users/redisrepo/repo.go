// Package redisuserrepo provides a Redis-backed users.Repo. The unique-email
// invariant is enforced server-side with Lua scripts so that two concurrent
// registrations for the same address cannot both succeed.
package redisuserrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/reelhouse/auth-service/users"
)

var _ users.Repo = (*Repo)(nil)

const createUserScript = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
redis.call("SADD", KEYS[3], ARGV[1])
return 1
`

var createUserLua = redis.NewScript(createUserScript)

const updateUserScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
if KEYS[2] ~= KEYS[3] then
  if redis.call("EXISTS", KEYS[3]) == 1 then
    return -1
  end
  redis.call("DEL", KEYS[2])
  redis.call("SET", KEYS[3], ARGV[1])
end
redis.call("SET", KEYS[1], ARGV[2])
return 1
`

var updateUserLua = redis.NewScript(updateUserScript)

// record is the stored form of users.User. It exists because User excludes
// the password hash from JSON serialization, which must survive persistence.
type record struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Image        string    `json:"image,omitempty"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repo is a Redis-backed user store.
type Repo struct {
	redis  redis.UniversalClient
	prefix string
}

func New(client redis.UniversalClient, prefix string) *Repo {
	return &Repo{redis: client, prefix: prefix}
}

func (r *Repo) idKey(id string) string       { return r.prefix + "user:id:" + id }
func (r *Repo) emailKey(email string) string { return r.prefix + "user:email:" + email }
func (r *Repo) idsKey() string               { return r.prefix + "user:ids" }

func (r *Repo) Create(ctx context.Context, user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	blob, err := json.Marshal(toRecord(user))
	if err != nil {
		return fmt.Errorf("redisuserrepo: encoding user: %w", err)
	}
	created, err := createUserLua.Run(ctx, r.redis,
		[]string{r.emailKey(user.Email), r.idKey(user.ID), r.idsKey()},
		user.ID, blob,
	).Int64()
	if err != nil {
		return fmt.Errorf("redisuserrepo: creating user: %w", err)
	}
	if created == 0 {
		return users.ErrDuplicateEmail
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, user *users.User) error {
	existing, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	blob, err := json.Marshal(toRecord(user))
	if err != nil {
		return fmt.Errorf("redisuserrepo: encoding user: %w", err)
	}
	status, err := updateUserLua.Run(ctx, r.redis,
		[]string{r.idKey(user.ID), r.emailKey(existing.Email), r.emailKey(user.Email)},
		user.ID, blob,
	).Int64()
	if err != nil {
		return fmt.Errorf("redisuserrepo: updating user: %w", err)
	}
	switch status {
	case 0:
		return users.ErrNotFound
	case -1:
		return users.ErrDuplicateEmail
	}
	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	id, err := r.redis.Get(ctx, r.emailKey(email)).Result()
	if err == redis.Nil {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisuserrepo: resolving email: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*users.User, error) {
	blob, err := r.redis.Get(ctx, r.idKey(id)).Bytes()
	if err == redis.Nil {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisuserrepo: fetching user: %w", err)
	}
	var rec record
	if err := json.Unmarshal(blob, &rec); err != nil {
		return nil, fmt.Errorf("redisuserrepo: decoding user: %w", err)
	}
	return fromRecord(&rec), nil
}

func (r *Repo) List(ctx context.Context, offset, limit int) ([]*users.User, error) {
	ids, err := r.redis.SMembers(ctx, r.idsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redisuserrepo: listing user ids: %w", err)
	}
	sort.Strings(ids)

	if offset >= len(ids) {
		return []*users.User{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(ids) {
		end = len(ids)
	}

	list := make([]*users.User, 0, end-offset)
	for _, id := range ids[offset:end] {
		user, err := r.GetByID(ctx, id)
		if errors.Is(err, users.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		list = append(list, user)
	}
	return list, nil
}

func toRecord(u *users.User) *record {
	return &record{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Image:        u.Image,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func fromRecord(rec *record) *users.User {
	return &users.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		Image:        rec.Image,
		PasswordHash: rec.PasswordHash,
		Role:         users.RoleType(rec.Role),
		CreatedAt:    rec.CreatedAt,
	}
}
