package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexload-backend/pkg/jwt"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)

	token, err := m.GenerateSessionToken("user-123", "dev@example.com", "Dev User")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.Equal(t, "Dev User", claims.Name)
	assert.Equal(t, "session", claims.Type)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := jwt.NewManager("test-secret", -time.Minute)

	token, err := m.GenerateSessionToken("user-123", "dev@example.com", "Dev User")
	require.NoError(t, err)

	_, err = m.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)
	other := jwt.NewManager("other-secret", time.Hour)

	token, err := m.GenerateSessionToken("user-123", "dev@example.com", "Dev User")
	require.NoError(t, err)

	_, err = other.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)

	_, err := m.ValidateSessionToken("not.a.token")
	assert.Error(t, err)
}
