package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	// Function fields for customizable behavior
	RegisterFn       func(ctx context.Context, email, username, password string) (*domain.User, error)
	ActivateFn       func(ctx context.Context, token string) (bool, error)
	LoginFn          func(ctx context.Context, email, password string) (*service.TokenPair, error)
	LogoutFn         func(ctx context.Context, refreshToken string) error
	RefreshFn        func(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	ChangePasswordFn func(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	UpdateProfileFn  func(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error)
	GetUserFn        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListUsersFn      func(ctx context.Context, limit, offset int) ([]*domain.User, error)
	DeleteUserFn     func(ctx context.Context, userID uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	User          *domain.User
	Users         []*domain.User
	Pair          *service.TokenPair
	AlreadyActive bool
	Err           error
}

// Register implements the service.UserService interface
func (m *MockUserService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, username, password)
	}
	return m.User, m.Err
}

// Activate implements the service.UserService interface
func (m *MockUserService) Activate(ctx context.Context, token string) (bool, error) {
	if m.ActivateFn != nil {
		return m.ActivateFn(ctx, token)
	}
	return m.AlreadyActive, m.Err
}

// Login implements the service.UserService interface
func (m *MockUserService) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return m.Pair, m.Err
}

// Logout implements the service.UserService interface
func (m *MockUserService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, refreshToken)
	}
	return m.Err
}

// Refresh implements the service.UserService interface
func (m *MockUserService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, refreshToken)
	}
	return m.Pair, m.Err
}

// ChangePassword implements the service.UserService interface
func (m *MockUserService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if m.ChangePasswordFn != nil {
		return m.ChangePasswordFn(ctx, userID, oldPassword, newPassword)
	}
	return m.Err
}

// UpdateProfile implements the service.UserService interface
func (m *MockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, userID, update)
	}
	return m.User, m.Err
}

// GetUser implements the service.UserService interface
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return m.User, m.Err
}

// ListUsers implements the service.UserService interface
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx, limit, offset)
	}
	return m.Users, m.Err
}

// DeleteUser implements the service.UserService interface
func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, userID)
	}
	return m.Err
}
