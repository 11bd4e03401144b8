package lib

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	sub := uuid.New()

	token, err := SignAccessToken(sub, "admin@example.com", "admin", "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)

	require.Equal(t, sub, claims.Sub)
	require.Equal(t, "admin@example.com", claims.Email)
	require.Equal(t, "admin", claims.Role)
	require.NotEqual(t, uuid.Nil, claims.Jti)
	require.True(t, claims.Exp.After(time.Now()))
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := SignAccessToken(uuid.New(), "admin@example.com", "admin", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := SignAccessToken(uuid.New(), "admin@example.com", "admin", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "test-secret")
	require.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", "test-secret")
	require.Error(t, err)
}

func TestEachTokenGetsFreshJti(t *testing.T) {
	sub := uuid.New()

	first, err := SignAccessToken(sub, "a@example.com", "admin", "test-secret", time.Hour)
	require.NoError(t, err)
	second, err := SignAccessToken(sub, "a@example.com", "admin", "test-secret", time.Hour)
	require.NoError(t, err)

	firstClaims, err := ParseToken(first, "test-secret")
	require.NoError(t, err)
	secondClaims, err := ParseToken(second, "test-secret")
	require.NoError(t, err)

	require.NotEqual(t, firstClaims.Jti, secondClaims.Jti)
}
