package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only-32ch",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "pyasti-test",
	})
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Test User", "t@example.com", "", "hash", identity.RoleSeller)
	require.NoError(t, err)
	return user
}

func TestGeneratePairAndParse(t *testing.T) {
	service := newTestService()
	user := newTestUser(t)

	pair, err := service.GeneratePair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := service.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "seller", claims.Role)

	userID, err := service.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	service := newTestService()
	pair, err := service.GeneratePair(newTestUser(t))
	require.NoError(t, err)

	_, err = service.ParseAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = service.ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	service := newTestService()
	pair, err := service.GeneratePair(newTestUser(t))
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-signing-secret-42",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "pyasti-test",
	})

	_, err = other.ParseAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only-32ch",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "pyasti-test",
	})

	pair, err := service.GeneratePair(newTestUser(t))
	require.NoError(t, err)

	_, err = service.ParseAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
