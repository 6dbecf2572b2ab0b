package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key-for-tests-only",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	access, refresh, expiresIn, err := svc.GenerateTokenPair(42, "alice", "MEMBER")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)

	// Refresh tokens are opaque UUIDs, not JWTs.
	_, err = uuid.Parse(refresh)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "MEMBER", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	access, _, _, err := svc.GenerateTokenPair(1, "bob", "MEMBER")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	access, _, _, err := svc.GenerateTokenPair(1, "bob", "MEMBER")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// Raw tokens without the Bearer prefix pass through unchanged.
	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestGetRefreshTokenExpiry(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	expiry := svc.GetRefreshTokenExpiry()
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), expiry, time.Minute)
}
