package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", "fintrack-backend", time.Hour)

	token, err := tm.Generate("user_001")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_001", sub)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issued := NewTokenManager("secret-a", "fintrack-backend", time.Hour)
	verifier := NewTokenManager("secret-b", "fintrack-backend", time.Hour)

	token, err := issued.Generate("user_001")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", "fintrack-backend", -time.Minute)

	token, err := tm.Generate("user_001")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	issued := NewTokenManager("test-secret", "someone-else", time.Hour)
	verifier := NewTokenManager("test-secret", "fintrack-backend", time.Hour)

	token, err := issued.Generate("user_001")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", "fintrack-backend", time.Hour)
	_, err := tm.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
