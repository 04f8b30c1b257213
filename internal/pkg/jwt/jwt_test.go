package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService(t *testing.T) Service {
	svc, err := NewJWTService(testSecret, "1h")
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService(testSecret, "forever")
	assert.Error(t, err)
}

func TestGenerateAccessToken_CarriesIdentity(t *testing.T) {
	svc := newTestService(t)
	lead := user.Identity{Email: "suhas.app@gmail.com", Name: "Suhas", Role: user.RoleTeamLead, Department: "App Development"}

	token, expiresAt, err := svc.GenerateAccessToken(lead)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "suhas.app@gmail.com", claims["email"])
	assert.Equal(t, "Team Lead", claims["role"])
	assert.Equal(t, "App Development", claims["department"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestSSEToken(t *testing.T) {
	svc := newTestService(t)

	token, expiresIn, err := svc.GenerateSSEToken("harikaappdevelopment@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	email, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "harikaappdevelopment@gmail.com", email)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService(t)
	access, _, err := svc.GenerateAccessToken(user.Identity{Email: "vishnu_@gmail.com", Role: user.RoleHR})
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestValidateSSEToken_RejectsForeignSignature(t *testing.T) {
	other, err := NewJWTService("another-secret", "1h")
	require.NoError(t, err)
	token, _, err := other.GenerateSSEToken("x@y.io")
	require.NoError(t, err)

	_, err = newTestService(t).ValidateSSEToken(token)
	assert.Error(t, err)
}
