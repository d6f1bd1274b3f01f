package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TokenStore defines the interface for the refresh-token denylist.
// Revoked tokens are keyed by their JWT ID (jti); entries only need to be
// retained until the underlying token would have expired anyway.
type TokenStore interface {
	// Revoke adds a token ID to the denylist.
	// Returns ErrTokenRevoked if the token is already denylisted.
	Revoke(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error

	// IsRevoked reports whether the token ID is on the denylist.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// PurgeExpired removes denylist entries whose tokens expired before the
	// given time. Returns the number of entries removed.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)

	// WithTx returns a new TokenStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TokenStore
}
