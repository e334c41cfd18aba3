package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("admin-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.GenerateToken("admin-1")
	require.NoError(t, err)

	other := NewTokenManager("other-secret", 60)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "hunter2"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
