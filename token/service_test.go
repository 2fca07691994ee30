package token_test

import (
	"testing"
	"time"

	"github.com/reelhouse/auth-service/token"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

func testConfig() token.Config {
	return token.Config{
		AccessSecret:  []byte("access-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshSecret: []byte("refresh-secret"),
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

// clock is a settable time source shared with the service under test.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newService(t *testing.T) (*token.Service, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := token.NewService(testConfig(), token.WithNowFunc(c.Now))
	require.NoError(t, err)
	return svc, c
}

func TestIssueAndVerify(t *testing.T) {
	svc, _ := newService(t)

	for _, kind := range []token.Kind{token.KindAccess, token.KindRefresh} {
		signed, err := svc.Issue(kind, testUserID)
		require.NoError(t, err)
		require.NotEmpty(t, signed)

		userID, err := svc.Verify(kind, signed)
		require.NoError(t, err)
		require.Equal(t, testUserID, userID)
	}
}

func TestVerifyRejectsOtherKind(t *testing.T) {
	svc, _ := newService(t)

	access, err := svc.Issue(token.KindAccess, testUserID)
	require.NoError(t, err)

	_, err = svc.Verify(token.KindRefresh, access)
	require.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Verify(token.KindAccess, "not-a-token")
	require.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	svc, _ := newService(t)

	other, err := token.NewService(token.Config{
		AccessSecret:  []byte("some-other-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshSecret: []byte("another-secret"),
		RefreshTTL:    24 * time.Hour,
	})
	require.NoError(t, err)

	foreign, err := other.Issue(token.KindAccess, testUserID)
	require.NoError(t, err)

	_, err = svc.Verify(token.KindAccess, foreign)
	require.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestVerifyExpired(t *testing.T) {
	svc, clk := newService(t)

	signed, err := svc.Issue(token.KindAccess, testUserID)
	require.NoError(t, err)

	clk.now = clk.now.Add(testConfig().AccessTTL + time.Minute)

	_, err = svc.Verify(token.KindAccess, signed)
	require.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestExpiredButForeignSignatureIsInvalid(t *testing.T) {
	// A bad signature must win over an elapsed expiry: only tokens we signed
	// ourselves may ever report ErrTokenExpired.
	svc, clk := newService(t)

	signed, err := svc.Issue(token.KindRefresh, testUserID)
	require.NoError(t, err)

	clk.now = clk.now.Add(testConfig().RefreshTTL + time.Hour)

	_, err = svc.Verify(token.KindAccess, signed)
	require.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestVerifyUnknownKind(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Verify(token.Kind("id"), "whatever")
	require.Error(t, err)
	require.NotErrorIs(t, err, token.ErrTokenInvalid)
	require.NotErrorIs(t, err, token.ErrTokenExpired)
}

func TestNewServiceValidation(t *testing.T) {
	base := testConfig()

	tests := []struct {
		name   string
		mutate func(*token.Config)
	}{
		{"missing access secret", func(c *token.Config) { c.AccessSecret = nil }},
		{"missing refresh secret", func(c *token.Config) { c.RefreshSecret = nil }},
		{"zero access TTL", func(c *token.Config) { c.AccessTTL = 0 }},
		{"negative refresh TTL", func(c *token.Config) { c.RefreshTTL = -time.Hour }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			_, err := token.NewService(cfg)
			require.Error(t, err)
		})
	}
}
