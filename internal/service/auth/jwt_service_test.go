package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userhub-io/userhub/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                    "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:         60,
		RefreshTokenLifetimeMinutes:  10080,
		ActivationTokenLifetimeHours: 24,
	}
}

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = "tooshort"
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestActivationTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateActivationToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateActivationToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeActivation, claims.TokenType)
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	access, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)
	activation, err := svc.GenerateActivationToken(ctx, userID)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateActivationToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateToken(ctx, activation)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestExpiredTokensRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Generate tokens in the past, far enough back that the clock-skew
	// leeway cannot rescue them.
	svc.timeFunc = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	access, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	activation, err := svc.GenerateActivationToken(ctx, userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now

	_, err = svc.ValidateToken(ctx, access)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = svc.ValidateActivationToken(ctx, activation)
	assert.ErrorIs(t, err, ErrInvalidActivationToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	token, err := svc.GenerateActivationToken(ctx, uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.ValidateActivationToken(ctx, tampered)
	assert.ErrorIs(t, err, ErrInvalidActivationToken)

	_, err = svc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHashAndCompare(t *testing.T) {
	v := NewBcryptVerifier()

	hash, err := v.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, v.Compare(hash, "password123"))
	assert.Error(t, v.Compare(hash, "wrongpassword"))
}
