package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/store"
)

// MockInterestStore implements store.InterestStore for testing
type MockInterestStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, interest *domain.Interest) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Interest, error)
	GetByNameFn     func(ctx context.Context, name string) (*domain.Interest, error)
	ListFn          func(ctx context.Context, limit, offset int) ([]*domain.Interest, error)
	UpdateFn        func(ctx context.Context, interest *domain.Interest) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	ListForUserFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.UserInterest, error)
	DeleteForUserFn func(ctx context.Context, userID uuid.UUID) error
	AddForUserFn    func(ctx context.Context, row *domain.UserInterest) error

	// Data for the default implementation
	Interests map[uuid.UUID]*domain.Interest
	UserRows  map[uuid.UUID][]*domain.UserInterest
}

// NewMockInterestStore creates a new mock store with initialized defaults
func NewMockInterestStore() *MockInterestStore {
	return &MockInterestStore{
		Interests: make(map[uuid.UUID]*domain.Interest),
		UserRows:  make(map[uuid.UUID][]*domain.UserInterest),
	}
}

// Create implements the InterestStore interface
func (m *MockInterestStore) Create(ctx context.Context, interest *domain.Interest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, interest)
	}

	for _, existing := range m.Interests {
		if existing.Name == interest.Name {
			return store.ErrInterestNameExists
		}
	}

	m.Interests[interest.ID] = interest
	return nil
}

// GetByID implements the InterestStore interface
func (m *MockInterestStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interest, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	interest, exists := m.Interests[id]
	if !exists {
		return nil, store.ErrInterestNotFound
	}
	return interest, nil
}

// GetByName implements the InterestStore interface
func (m *MockInterestStore) GetByName(ctx context.Context, name string) (*domain.Interest, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}

	for _, interest := range m.Interests {
		if interest.Name == name {
			return interest, nil
		}
	}
	return nil, store.ErrInterestNotFound
}

// List implements the InterestStore interface
func (m *MockInterestStore) List(ctx context.Context, limit, offset int) ([]*domain.Interest, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}

	interests := make([]*domain.Interest, 0, len(m.Interests))
	for _, interest := range m.Interests {
		interests = append(interests, interest)
	}
	sort.Slice(interests, func(i, j int) bool {
		return interests[i].CreatedAt.After(interests[j].CreatedAt)
	})

	if offset >= len(interests) {
		return nil, nil
	}
	interests = interests[offset:]
	if limit > 0 && limit < len(interests) {
		interests = interests[:limit]
	}
	return interests, nil
}

// Update implements the InterestStore interface
func (m *MockInterestStore) Update(ctx context.Context, interest *domain.Interest) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, interest)
	}

	if _, exists := m.Interests[interest.ID]; !exists {
		return store.ErrInterestNotFound
	}
	for id, existing := range m.Interests {
		if id != interest.ID && existing.Name == interest.Name {
			return store.ErrInterestNameExists
		}
	}

	m.Interests[interest.ID] = interest
	return nil
}

// Delete implements the InterestStore interface
func (m *MockInterestStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Interests[id]; !exists {
		return store.ErrInterestNotFound
	}
	delete(m.Interests, id)

	// Cascade, mirroring the schema's ON DELETE CASCADE.
	for userID, rows := range m.UserRows {
		kept := rows[:0]
		for _, row := range rows {
			if row.InterestID != id {
				kept = append(kept, row)
			}
		}
		m.UserRows[userID] = kept
	}
	return nil
}

// ListForUser implements the InterestStore interface
func (m *MockInterestStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserInterest, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}

	rows := append([]*domain.UserInterest(nil), m.UserRows[userID]...)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Position < rows[j].Position
	})

	for _, row := range rows {
		if interest, exists := m.Interests[row.InterestID]; exists {
			row.Interest = interest
		}
	}
	return rows, nil
}

// DeleteForUser implements the InterestStore interface
func (m *MockInterestStore) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, userID)
	}

	delete(m.UserRows, userID)
	return nil
}

// AddForUser implements the InterestStore interface
func (m *MockInterestStore) AddForUser(ctx context.Context, row *domain.UserInterest) error {
	if m.AddForUserFn != nil {
		return m.AddForUserFn(ctx, row)
	}

	if _, exists := m.Interests[row.InterestID]; !exists {
		return store.ErrInterestNotFound
	}

	m.UserRows[row.UserID] = append(m.UserRows[row.UserID], row)
	return nil
}

// WithTx implements the InterestStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockInterestStore) WithTx(tx *sql.Tx) store.InterestStore {
	return m
}
