package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user matches the given email or ID.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create and Update when the email is
	// already registered to another user.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repo is the persistent user store. Implementations must enforce email
// uniqueness atomically at the storage layer.
type Repo interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, error)
}
