package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret",
		Issuer:          "handwerkos-test",
		TokenExpiration: expiration,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	principal := Principal{
		CompanyID:      uuid.New(),
		UserID:         uuid.New(),
		Username:       "meister",
		ProjectManager: true,
	}

	token, err := svc.Generate(principal)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, principal.CompanyID, parsed.CompanyID)
	assert.Equal(t, principal.UserID, parsed.UserID)
	assert.Equal(t, "meister", parsed.Username)
	assert.False(t, parsed.Admin)
	assert.True(t, parsed.ProjectManager)
	assert.True(t, parsed.CanApprove())
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, err := svc.Generate(Principal{CompanyID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:          "other-secret",
		Issuer:          "handwerkos-test",
		TokenExpiration: time.Hour,
	})

	token, err := svc.Generate(Principal{CompanyID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipal_CanApprove(t *testing.T) {
	assert.False(t, Principal{}.CanApprove())
	assert.True(t, Principal{Admin: true}.CanApprove())
	assert.True(t, Principal{ProjectManager: true}.CanApprove())
}
