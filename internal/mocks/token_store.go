package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/store"
)

// MockTokenStore implements store.TokenStore for testing
type MockTokenStore struct {
	// Function fields for customizable behavior
	RevokeFn       func(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error
	IsRevokedFn    func(ctx context.Context, jti string) (bool, error)
	PurgeExpiredFn func(ctx context.Context, before time.Time) (int64, error)

	// Data for the default implementation, keyed by jti
	Revoked map[string]time.Time
}

// NewMockTokenStore creates a new mock store with initialized defaults
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{
		Revoked: make(map[string]time.Time),
	}
}

// Revoke implements the TokenStore interface
func (m *MockTokenStore) Revoke(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, jti, userID, expiresAt)
	}

	if _, exists := m.Revoked[jti]; exists {
		return store.ErrTokenRevoked
	}
	m.Revoked[jti] = expiresAt
	return nil
}

// IsRevoked implements the TokenStore interface
func (m *MockTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsRevokedFn != nil {
		return m.IsRevokedFn(ctx, jti)
	}

	_, exists := m.Revoked[jti]
	return exists, nil
}

// PurgeExpired implements the TokenStore interface
func (m *MockTokenStore) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.PurgeExpiredFn != nil {
		return m.PurgeExpiredFn(ctx, before)
	}

	var purged int64
	for jti, expiresAt := range m.Revoked {
		if expiresAt.Before(before) {
			delete(m.Revoked, jti)
			purged++
		}
	}
	return purged, nil
}

// WithTx implements the TokenStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockTokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return m
}
