package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohitmishra786/cv-wiz/internal/config"
)

func newTestJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newTestJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := newTestJWTService("secret-one").GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = newTestJWTService("secret-two").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_EmptyToken(t *testing.T) {
	_, err := newTestJWTService("test-secret").ValidateToken("")
	assert.Error(t, err)
}

func TestJWT_MalformedToken(t *testing.T) {
	_, err := newTestJWTService("test-secret").ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestJWT_ExpiredToken(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: -1})
	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_AsTokenValidator(t *testing.T) {
	svc := newTestJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}
