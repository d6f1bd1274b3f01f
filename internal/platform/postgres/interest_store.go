package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/platform/logger"
	"github.com/userhub-io/userhub/internal/store"
)

// PostgresInterestStore implements the store.InterestStore interface
// using a PostgreSQL database as the storage backend.
type PostgresInterestStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresInterestStore creates a new PostgreSQL implementation of the
// InterestStore interface. If logger is nil, a default logger will be used.
func NewPostgresInterestStore(db store.DBTX, logger *slog.Logger) *PostgresInterestStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInterestStore{
		db:     db,
		logger: logger.With(slog.String("component", "interest_store")),
	}
}

// Ensure PostgresInterestStore implements store.InterestStore interface
var _ store.InterestStore = (*PostgresInterestStore)(nil)

// WithTx implements store.InterestStore.WithTx
func (s *PostgresInterestStore) WithTx(tx *sql.Tx) store.InterestStore {
	return &PostgresInterestStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.InterestStore.Create
func (s *PostgresInterestStore) Create(ctx context.Context, interest *domain.Interest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := interest.Validate(); err != nil {
		log.Warn("interest validation failed during create",
			slog.String("error", err.Error()),
			slog.String("interest_id", interest.ID.String()))
		return err
	}

	query := `
		INSERT INTO interests (id, name, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, interest.ID, interest.Name, interest.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("unique violation during interest creation",
				slog.String("name", interest.Name))
			return MapUniqueViolation(err, store.ErrInterestNameExists)
		}

		log.Error("failed to create interest",
			slog.String("error", err.Error()),
			slog.String("interest_id", interest.ID.String()))
		return MapError(err)
	}

	log.Info("interest created successfully",
		slog.String("interest_id", interest.ID.String()),
		slog.String("name", interest.Name))
	return nil
}

// GetByID implements store.InterestStore.GetByID
func (s *PostgresInterestStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interest, error) {
	query := `
		SELECT id, name, created_at
		FROM interests
		WHERE id = $1
	`
	return s.scanInterest(ctx, s.db.QueryRowContext(ctx, query, id))
}

// GetByName implements store.InterestStore.GetByName
func (s *PostgresInterestStore) GetByName(ctx context.Context, name string) (*domain.Interest, error) {
	query := `
		SELECT id, name, created_at
		FROM interests
		WHERE name = $1
	`
	return s.scanInterest(ctx, s.db.QueryRowContext(ctx, query, name))
}

func (s *PostgresInterestStore) scanInterest(ctx context.Context, row *sql.Row) (*domain.Interest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var interest domain.Interest
	err := row.Scan(&interest.ID, &interest.Name, &interest.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrInterestNotFound
		}
		log.Error("failed to scan interest row",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &interest, nil
}

// List implements store.InterestStore.List
func (s *PostgresInterestStore) List(ctx context.Context, limit, offset int) ([]*domain.Interest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, created_at
		FROM interests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to query interests",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	interests := []*domain.Interest{}
	for rows.Next() {
		var interest domain.Interest
		if err := rows.Scan(&interest.ID, &interest.Name, &interest.CreatedAt); err != nil {
			log.Error("failed to scan interest row",
				slog.String("error", err.Error()))
			return nil, err
		}
		interests = append(interests, &interest)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return interests, nil
}

// Update implements store.InterestStore.Update
func (s *PostgresInterestStore) Update(ctx context.Context, interest *domain.Interest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := interest.Validate(); err != nil {
		log.Warn("interest validation failed during update",
			slog.String("error", err.Error()),
			slog.String("interest_id", interest.ID.String()))
		return err
	}

	query := `
		UPDATE interests
		SET name = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, interest.Name, interest.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrInterestNameExists)
		}

		log.Error("failed to update interest",
			slog.String("error", err.Error()),
			slog.String("interest_id", interest.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrInterestNotFound)
}

// Delete implements store.InterestStore.Delete
func (s *PostgresInterestStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM interests WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete interest",
			slog.String("error", err.Error()),
			slog.String("interest_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrInterestNotFound)
}

// ListForUser implements store.InterestStore.ListForUser
func (s *PostgresInterestStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserInterest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ui.id, ui.user_id, ui.interest_id, ui.position, ui.created_at,
		       i.id, i.name, i.created_at
		FROM user_interests ui
		JOIN interests i ON i.id = ui.interest_id
		WHERE ui.user_id = $1
		ORDER BY ui.position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query user interests",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	result := []*domain.UserInterest{}
	for rows.Next() {
		var ui domain.UserInterest
		var interest domain.Interest

		err := rows.Scan(
			&ui.ID,
			&ui.UserID,
			&ui.InterestID,
			&ui.Position,
			&ui.CreatedAt,
			&interest.ID,
			&interest.Name,
			&interest.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan user interest row",
				slog.String("error", err.Error()))
			return nil, err
		}

		ui.Interest = &interest
		result = append(result, &ui)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return result, nil
}

// DeleteForUser implements store.InterestStore.DeleteForUser
func (s *PostgresInterestStore) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM user_interests WHERE user_id = $1`

	// Zero rows deleted is fine: the user may simply have no interests yet.
	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		log.Error("failed to delete user interests",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	return nil
}

// AddForUser implements store.InterestStore.AddForUser
//
// The insert sources the interest ID from a subquery against interests, so
// a row that references a since-deleted interest inserts nothing instead of
// aborting the surrounding transaction with a foreign key violation. The
// caller detects the zero-row case and records it as a per-item failure.
func (s *PostgresInterestStore) AddForUser(ctx context.Context, row *domain.UserInterest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_interests (id, user_id, interest_id, position, created_at)
		SELECT $1, $2, i.id, $4, $5
		FROM interests i
		WHERE i.id = $3
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		row.ID,
		row.UserID,
		row.InterestID,
		row.Position,
		row.CreatedAt,
	)
	if err != nil {
		log.Error("failed to add user interest",
			slog.String("error", err.Error()),
			slog.String("user_id", row.UserID.String()),
			slog.String("interest_id", row.InterestID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrInterestNotFound)
}
