package auth

import "errors"

var (
	// ErrValidation wraps rejected registration input.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail is returned by Register when the email is taken.
	ErrDuplicateEmail = errors.New("email is already in use")
	// ErrUserNotFound is returned by Login when the email is not registered.
	ErrUserNotFound = errors.New("email is not registered")
	// ErrPasswordMismatch is returned by Login on a wrong password.
	ErrPasswordMismatch = errors.New("password is incorrect")
	// ErrTokenMissing is returned by Refresh when no token was supplied.
	ErrTokenMissing = errors.New("refresh token not provided")
	// ErrSessionNotFound is returned by Refresh and Logout when no session
	// matches: never logged in, logged out, or superseded by a later login.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRefreshExpired is returned by Refresh for an expired refresh token.
	// The session has been deleted as a side effect; the user must log in
	// again.
	ErrRefreshExpired = errors.New("refresh token is expired")
)
