package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/platform/logger"
	"github.com/userhub-io/userhub/internal/store"
)

// PostgresTokenStore implements the store.TokenStore interface, backing the
// refresh-token denylist with a PostgreSQL table keyed by JWT ID.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the
// TokenStore interface. If logger is nil, a default logger will be used.
func NewPostgresTokenStore(db store.DBTX, logger *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

// Ensure PostgresTokenStore implements store.TokenStore interface
var _ store.TokenStore = (*PostgresTokenStore)(nil)

// WithTx implements store.TokenStore.WithTx
func (s *PostgresTokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return &PostgresTokenStore{
		db:     tx,
		logger: s.logger,
	}
}

// Revoke implements store.TokenStore.Revoke
func (s *PostgresTokenStore) Revoke(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query, jti, userID, expiresAt, time.Now().UTC())
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("token already revoked",
				slog.String("jti", jti))
			return store.ErrTokenRevoked
		}

		log.Error("failed to revoke token",
			slog.String("error", err.Error()),
			slog.String("jti", jti))
		return MapError(err)
	}

	log.Info("refresh token revoked",
		slog.String("jti", jti),
		slog.String("user_id", userID.String()))
	return nil
}

// IsRevoked implements store.TokenStore.IsRevoked
func (s *PostgresTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`

	var revoked bool
	if err := s.db.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		log.Error("failed to check token revocation",
			slog.String("error", err.Error()),
			slog.String("jti", jti))
		return false, MapError(err)
	}

	return revoked, nil
}

// PurgeExpired implements store.TokenStore.PurgeExpired
func (s *PostgresTokenStore) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM revoked_tokens WHERE expires_at < $1`

	result, err := s.db.ExecContext(ctx, query, before)
	if err != nil {
		log.Error("failed to purge expired tokens",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		log.Info("purged expired denylist entries",
			slog.Int64("count", purged))
	}
	return purged, nil
}
