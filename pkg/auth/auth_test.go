package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenCarriesUsername(t *testing.T) {
	tokens := NewTokenManager("test-secret", 0)

	signed, err := tokens.GenerateToken("babyshark")
	require.NoError(t, err)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "babyshark", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	signed, err := tokens.GenerateToken("babyshark")
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		claims, err := tokens.ValidateToken(signed)
		require.NoError(t, err)
		assert.Equal(t, "babyshark", claims.Username)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour)
		_, err := other.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("test-secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		expired, err := past.GenerateToken("babyshark")
		require.NoError(t, err)

		_, err = tokens.ValidateToken(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMemoryCredentialStore(t *testing.T) {
	store, err := NewMemoryCredentialStore(DefaultCredentials)
	require.NoError(t, err)

	assert.True(t, store.Verify("babyshark", "doodoo123"))
	assert.False(t, store.Verify("babyshark", "wrong"))
	assert.False(t, store.Verify("nobody", "doodoo123"))

	require.NoError(t, store.Add("mommyshark", "doodoo456"))
	assert.True(t, store.Verify("mommyshark", "doodoo456"))
}
