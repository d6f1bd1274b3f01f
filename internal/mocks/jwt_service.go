package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn           func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn           func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn    func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn    func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateActivationTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateActivationTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token           string
	RefreshToken    string
	ActivationToken string
	Claims          *auth.Claims
	Err             error
	ValidateErr     error
}

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// GenerateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return m.RefreshToken, m.Err
}

// ValidateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// GenerateActivationToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateActivationToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateActivationTokenFn != nil {
		return m.GenerateActivationTokenFn(ctx, userID)
	}
	return m.ActivationToken, m.Err
}

// ValidateActivationToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateActivationToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateActivationTokenFn != nil {
		return m.ValidateActivationTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
