package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reelhouse/auth-service/auth"
	"github.com/reelhouse/auth-service/sessions"
	fakesessionrepo "github.com/reelhouse/auth-service/sessions/repofake"
	"github.com/reelhouse/auth-service/token"
	"github.com/reelhouse/auth-service/users"
	fakeuserrepo "github.com/reelhouse/auth-service/users/repofake"
)

const (
	testEmail    = "a@x.com"
	testPassword = "secret1"
	testName     = "Ada"
	accessTTL    = 15 * time.Minute
	refreshTTL   = 7 * 24 * time.Hour
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo    users.Repo
	sessionRepo sessions.Repo
	tokens      *token.Service
	service     *auth.Service
	now         time.Time
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		userRepo:    fakeuserrepo.New(),
		sessionRepo: fakesessionrepo.New(),
		now:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	tokens, err := token.NewService(token.Config{
		AccessSecret:  []byte("access-secret"),
		AccessTTL:     accessTTL,
		RefreshSecret: []byte("refresh-secret"),
		RefreshTTL:    refreshTTL,
	}, token.WithNowFunc(func() time.Time { return f.now }))
	require.NoError(t, err)
	f.tokens = tokens

	service, err := auth.NewService(
		auth.Repos{Users: f.userRepo, Sessions: f.sessionRepo},
		tokens,
		auth.WithNowTime(func() time.Time { return f.now }),
	)
	require.NoError(t, err)
	f.service = service

	return f
}

func (f *testFixture) register(t *testing.T) *users.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), auth.NewUser{
		Name:     testName,
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)
	return user
}

func (f *testFixture) login(t *testing.T) *auth.LoginResult {
	t.Helper()
	result, err := f.service.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	return result
}

func TestRegister(t *testing.T) {
	f := setupTestFixture(t)

	user := f.register(t)
	require.NotEmpty(t, user.ID)
	require.Equal(t, testEmail, user.Email)
	require.Equal(t, users.RoleUser, user.Role)
	require.NotEmpty(t, user.Image)
	require.NotEqual(t, testPassword, user.PasswordHash)
	require.True(t, users.CheckPasswordHash(testPassword, user.PasswordHash))

	// Registering creates no session
	_, err := f.sessionRepo.GetByUser(context.Background(), user.ID)
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	f := setupTestFixture(t)

	user, err := f.service.Register(context.Background(), auth.NewUser{
		Name:     testName,
		Email:    "  A@X.Com ",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)

	f.register(t)
	_, err := f.service.Register(context.Background(), auth.NewUser{
		Name:     "Someone Else",
		Email:    testEmail,
		Password: "different-password",
	})
	require.ErrorIs(t, err, auth.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name    string
		newUser auth.NewUser
	}{
		{"missing name", auth.NewUser{Email: testEmail, Password: testPassword}},
		{"missing email", auth.NewUser{Name: testName, Password: testPassword}},
		{"malformed email", auth.NewUser{Name: testName, Email: "not-an-email", Password: testPassword}},
		{"short password", auth.NewUser{Name: testName, Email: testEmail, Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Register(context.Background(), tt.newUser)
			require.ErrorIs(t, err, auth.ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	f := setupTestFixture(t)

	registered := f.register(t)
	result := f.login(t)

	require.Equal(t, registered.ID, result.User.ID)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)

	// Each token verifies with its own kind and carries the user's ID
	userID, err := f.tokens.Verify(token.KindAccess, result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, userID)

	userID, err = f.tokens.Verify(token.KindRefresh, result.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, userID)

	// The session holds the issued refresh token
	session, err := f.sessionRepo.GetByUser(context.Background(), registered.ID)
	require.NoError(t, err)
	require.Equal(t, result.RefreshToken, session.RefreshToken)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(context.Background(), "nobody@x.com", testPassword)
	require.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	f := setupTestFixture(t)

	f.register(t)
	_, err := f.service.Login(context.Background(), testEmail, "wrong-password")
	require.ErrorIs(t, err, auth.ErrPasswordMismatch)
}

func TestSecondLoginSupersedesFirst(t *testing.T) {
	f := setupTestFixture(t)

	f.register(t)
	first := f.login(t)
	f.now = f.now.Add(time.Second) // distinct iat, distinct token
	second := f.login(t)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The first login's refresh token no longer refreshes
	_, err := f.service.Refresh(context.Background(), first.RefreshToken)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)

	// The second one does
	_, err = f.service.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh(t *testing.T) {
	f := setupTestFixture(t)

	registered := f.register(t)
	result := f.login(t)

	accessToken, err := f.service.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)

	userID, err := f.tokens.Verify(token.KindAccess, accessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, userID)

	// No rotation: the session still holds the original refresh token
	session, err := f.sessionRepo.GetByToken(context.Background(), result.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, result.RefreshToken, session.RefreshToken)
}

func TestRefreshMissingToken(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background(), "")
	require.ErrorIs(t, err, auth.ErrTokenMissing)
}

func TestRefreshUnknownToken(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background(), "never-issued")
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestRefreshExpiredDeletesSession(t *testing.T) {
	f := setupTestFixture(t)

	f.register(t)
	result := f.login(t)

	f.now = f.now.Add(refreshTTL + time.Minute)

	_, err := f.service.Refresh(context.Background(), result.RefreshToken)
	require.ErrorIs(t, err, auth.ErrRefreshExpired)

	// Teardown side effect: the session row is gone
	_, err = f.sessionRepo.GetByToken(context.Background(), result.RefreshToken)
	require.ErrorIs(t, err, sessions.ErrNotFound)

	// A second attempt now misses the session entirely
	_, err = f.service.Refresh(context.Background(), result.RefreshToken)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t)

	registered := f.register(t)
	result := f.login(t)

	require.NoError(t, f.service.Logout(context.Background(), registered.ID))

	// The deleted session's refresh token is unusable
	_, err := f.service.Refresh(context.Background(), result.RefreshToken)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestLogoutWithoutSession(t *testing.T) {
	f := setupTestFixture(t)

	registered := f.register(t)
	err := f.service.Logout(context.Background(), registered.ID)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}
