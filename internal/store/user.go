package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The caller must have hashed the
	// password already; Create persists the user exactly as given.
	// Returns ErrEmailExists or ErrUsernameExists on unique violations.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves users ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// Update modifies an existing user's details. The caller must provide a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists/ErrUsernameExists on unique violations.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID. Associated
	// user_interests rows are cascade-deleted by the schema.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction, allowing multiple operations in a single transaction.
	WithTx(tx *sql.Tx) UserStore
}
