package adminauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestSessions(t *testing.T, ttl time.Duration) *Sessions {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewSessions([]byte("test-signing-key"), "admin@parata.my.id", string(hash), ttl)
}

func TestLoginAndVerify(t *testing.T) {
	sessions := newTestSessions(t, time.Hour)

	token, err := sessions.Login("admin@parata.my.id", "rahasia123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@parata.my.id", subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	sessions := newTestSessions(t, time.Hour)

	_, err := sessions.Login("admin@parata.my.id", "salah")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	sessions := newTestSessions(t, time.Hour)

	_, err := sessions.Login("intruder@example.com", "rahasia123")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestVerify_Garbage(t *testing.T) {
	sessions := newTestSessions(t, time.Hour)

	_, err := sessions.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_WrongKey(t *testing.T) {
	sessions := newTestSessions(t, time.Hour)
	token, err := sessions.Login("admin@parata.my.id", "rahasia123")
	require.NoError(t, err)

	other := NewSessions([]byte("another-key"), "admin@parata.my.id", "", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_Expired(t *testing.T) {
	sessions := newTestSessions(t, -time.Minute)
	token, err := sessions.Login("admin@parata.my.id", "rahasia123")
	require.NoError(t, err)

	_, err = sessions.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
