package jwt

import (
	"testing"
	"time"

	"foodgram-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	svc := NewJWTServiceWithSecret("secret", time.Hour)

	token, err := svc.GenerateTokenUser("3f0c1c4e-8a55-4c59-9a34-1b1f1d6c2b10")
	require.NoError(t, err)

	id, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "3f0c1c4e-8a55-4c59-9a34-1b1f1d6c2b10", id)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTServiceWithSecret("secret", -time.Minute)

	token, err := svc.GenerateTokenUser("user")
	require.NoError(t, err)

	_, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	token, err := NewJWTServiceWithSecret("one", time.Hour).GenerateTokenUser("user")
	require.NoError(t, err)

	_, err = NewJWTServiceWithSecret("two", time.Hour).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = NewJWTServiceWithSecret("one", time.Hour).GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
