package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
)

// InterestStore defines the interface for interest and user-interest
// association persistence.
type InterestStore interface {
	// Create saves a new interest.
	// Returns ErrInterestNameExists if the name is already taken.
	Create(ctx context.Context, interest *domain.Interest) error

	// GetByID retrieves an interest by its unique ID.
	// Returns ErrInterestNotFound if the interest does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Interest, error)

	// GetByName retrieves an interest by its unique name.
	// Returns ErrInterestNotFound if the interest does not exist.
	GetByName(ctx context.Context, name string) (*domain.Interest, error)

	// List retrieves interests ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.Interest, error)

	// Update modifies an existing interest.
	// Returns ErrInterestNotFound if the interest does not exist and
	// ErrInterestNameExists on a unique violation.
	Update(ctx context.Context, interest *domain.Interest) error

	// Delete removes an interest by its ID. Associated user_interests rows
	// are cascade-deleted by the schema.
	// Returns ErrInterestNotFound if the interest does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListForUser retrieves a user's association rows with the joined
	// interest populated, ordered by ascending position.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserInterest, error)

	// DeleteForUser removes all association rows for the given user.
	// Removing rows for a user with no interests is not an error.
	DeleteForUser(ctx context.Context, userID uuid.UUID) error

	// AddForUser inserts one association row. Returns ErrInterestNotFound
	// if the referenced interest no longer exists.
	AddForUser(ctx context.Context, row *domain.UserInterest) error

	// WithTx returns a new InterestStore instance that uses the provided
	// transaction, allowing multiple operations in a single transaction.
	WithTx(tx *sql.Tx) InterestStore
}
