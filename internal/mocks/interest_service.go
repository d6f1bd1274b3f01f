package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
)

// MockInterestService implements service.InterestService for testing
type MockInterestService struct {
	// Function fields for customizable behavior
	ListSampleFn       func(ctx context.Context, userID uuid.UUID) ([]*domain.UserInterest, error)
	ReplaceInterestsFn func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, names []string) ([]string, error)
	CreateInterestFn   func(ctx context.Context, name string) (*domain.Interest, error)
	GetInterestFn      func(ctx context.Context, id uuid.UUID) (*domain.Interest, error)
	ListInterestsFn    func(ctx context.Context, limit, offset int) ([]*domain.Interest, error)
	UpdateInterestFn   func(ctx context.Context, id uuid.UUID, name string) (*domain.Interest, error)
	DeleteInterestFn   func(ctx context.Context, id uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	Sample    []*domain.UserInterest
	Failed    []string
	Interest  *domain.Interest
	Interests []*domain.Interest
	Err       error
}

// ListSample implements the service.InterestService interface
func (m *MockInterestService) ListSample(ctx context.Context, userID uuid.UUID) ([]*domain.UserInterest, error) {
	if m.ListSampleFn != nil {
		return m.ListSampleFn(ctx, userID)
	}
	return m.Sample, m.Err
}

// ReplaceInterests implements the service.InterestService interface
func (m *MockInterestService) ReplaceInterests(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, names []string) ([]string, error) {
	if m.ReplaceInterestsFn != nil {
		return m.ReplaceInterestsFn(ctx, userID, ids, names)
	}
	return m.Failed, m.Err
}

// CreateInterest implements the service.InterestService interface
func (m *MockInterestService) CreateInterest(ctx context.Context, name string) (*domain.Interest, error) {
	if m.CreateInterestFn != nil {
		return m.CreateInterestFn(ctx, name)
	}
	return m.Interest, m.Err
}

// GetInterest implements the service.InterestService interface
func (m *MockInterestService) GetInterest(ctx context.Context, id uuid.UUID) (*domain.Interest, error) {
	if m.GetInterestFn != nil {
		return m.GetInterestFn(ctx, id)
	}
	return m.Interest, m.Err
}

// ListInterests implements the service.InterestService interface
func (m *MockInterestService) ListInterests(ctx context.Context, limit, offset int) ([]*domain.Interest, error) {
	if m.ListInterestsFn != nil {
		return m.ListInterestsFn(ctx, limit, offset)
	}
	return m.Interests, m.Err
}

// UpdateInterest implements the service.InterestService interface
func (m *MockInterestService) UpdateInterest(ctx context.Context, id uuid.UUID, name string) (*domain.Interest, error) {
	if m.UpdateInterestFn != nil {
		return m.UpdateInterestFn(ctx, id, name)
	}
	return m.Interest, m.Err
}

// DeleteInterest implements the service.InterestService interface
func (m *MockInterestService) DeleteInterest(ctx context.Context, id uuid.UUID) error {
	if m.DeleteInterestFn != nil {
		return m.DeleteInterestFn(ctx, id)
	}
	return m.Err
}
