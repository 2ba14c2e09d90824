package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(7)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue(7)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.Verify("not-a-token")
	assert.Error(t, err)
}
