package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/store"
)

// sampleSize caps how many of a user's interests a profile read returns.
const sampleSize = 10

// InterestService manages the interest catalog and each user's ordered set
// of interests.
type InterestService interface {
	// ListSample returns up to ten of the user's interests, chosen at
	// random, each carrying its stored position.
	ListSample(ctx context.Context, userID uuid.UUID) ([]*domain.UserInterest, error)

	// ReplaceInterests atomically swaps the user's interest set for the
	// union of the given IDs and names. Names not yet in the catalog are
	// created. IDs that reference no interest are skipped and reported in
	// the returned slice rather than failing the whole replacement.
	ReplaceInterests(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, names []string) (failed []string, err error)

	// CreateInterest adds a new interest to the catalog.
	CreateInterest(ctx context.Context, name string) (*domain.Interest, error)

	// GetInterest retrieves an interest by its ID.
	GetInterest(ctx context.Context, id uuid.UUID) (*domain.Interest, error)

	// ListInterests retrieves catalog interests, newest first.
	ListInterests(ctx context.Context, limit, offset int) ([]*domain.Interest, error)

	// UpdateInterest renames an existing interest.
	UpdateInterest(ctx context.Context, id uuid.UUID, name string) (*domain.Interest, error)

	// DeleteInterest removes an interest from the catalog, detaching it
	// from every user that referenced it.
	DeleteInterest(ctx context.Context, id uuid.UUID) error
}

// InterestServiceImpl implements the InterestService interface
type InterestServiceImpl struct {
	interestStore store.InterestStore
	db            *sql.DB
	logger        *slog.Logger

	// randFn picks sample indices; swapped out in tests for determinism.
	randFn func(n int) int
}

// NewInterestService creates a new InterestService.
func NewInterestService(interestStore store.InterestStore, db *sql.DB, logger *slog.Logger) InterestService {
	return &InterestServiceImpl{
		interestStore: interestStore,
		db:            db,
		logger:        logger.With("component", "interest_service"),
		randFn:        rand.Intn,
	}
}

// ListSample implements InterestService.ListSample
func (s *InterestServiceImpl) ListSample(ctx context.Context, userID uuid.UUID) ([]*domain.UserInterest, error) {
	rows, err := s.interestStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests for user: %w", err)
	}

	if len(rows) <= sampleSize {
		return rows, nil
	}

	// Partial Fisher-Yates: the first sampleSize slots end up holding a
	// uniform random sample.
	for i := 0; i < sampleSize; i++ {
		j := i + s.randFn(len(rows)-i)
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows[:sampleSize], nil
}

// ReplaceInterests implements InterestService.ReplaceInterests
func (s *InterestServiceImpl) ReplaceInterests(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, names []string) ([]string, error) {
	if len(ids) == 0 && len(names) == 0 {
		return nil, domain.NewValidationError(
			"interests", "at least one interest id or name is required", domain.ErrValidation)
	}

	failed := []string{}

	// Resolve names outside the transaction: creating missing catalog rows
	// is not part of the atomic swap, and a created interest staying
	// behind after a failed swap is harmless.
	resolved := make([]uuid.UUID, 0, len(ids)+len(names))
	resolved = append(resolved, ids...)
	for _, name := range names {
		interest, err := s.getOrCreateByName(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) ||
				errors.Is(err, domain.ErrEmptyInterestName) ||
				errors.Is(err, domain.ErrInterestNameTooLong) {
				return nil, err
			}
			s.logger.Warn("failed to resolve interest name",
				"error", err,
				"name", name)
			failed = append(failed, name)
			continue
		}
		resolved = append(resolved, interest.ID)
	}

	// Dedupe, keeping the first occurrence so earlier mentions win the
	// lower position.
	seen := make(map[uuid.UUID]struct{}, len(resolved))
	ordered := make([]uuid.UUID, 0, len(resolved))
	for _, id := range resolved {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.interestStore.WithTx(tx)

		if err := txStore.DeleteForUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to clear existing interests: %w", err)
		}

		position := 0
		for _, id := range ordered {
			row := domain.NewUserInterest(userID, id, position)
			if err := txStore.AddForUser(ctx, row); err != nil {
				if errors.Is(err, store.ErrInterestNotFound) {
					// The referenced catalog row vanished; report it and
					// keep the rest of the replacement intact.
					failed = append(failed, id.String())
					continue
				}
				return fmt.Errorf("failed to add interest: %w", err)
			}
			position++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user interests replaced",
		"user_id", userID,
		"count", len(ordered)-len(failed),
		"failed", len(failed))
	return failed, nil
}

// getOrCreateByName returns the catalog interest with the given name,
// creating it if absent. A create lost to a concurrent insert falls back to
// reading the winner's row.
func (s *InterestServiceImpl) getOrCreateByName(ctx context.Context, name string) (*domain.Interest, error) {
	interest, err := s.interestStore.GetByName(ctx, name)
	if err == nil {
		return interest, nil
	}
	if !errors.Is(err, store.ErrInterestNotFound) {
		return nil, fmt.Errorf("failed to look up interest by name: %w", err)
	}

	interest, err = domain.NewInterest(name)
	if err != nil {
		return nil, err
	}

	if err := s.interestStore.Create(ctx, interest); err != nil {
		if errors.Is(err, store.ErrInterestNameExists) {
			return s.interestStore.GetByName(ctx, name)
		}
		return nil, fmt.Errorf("failed to create interest: %w", err)
	}

	return interest, nil
}

// CreateInterest implements InterestService.CreateInterest
func (s *InterestServiceImpl) CreateInterest(ctx context.Context, name string) (*domain.Interest, error) {
	interest, err := domain.NewInterest(name)
	if err != nil {
		return nil, err
	}

	if err := s.interestStore.Create(ctx, interest); err != nil {
		return nil, fmt.Errorf("failed to create interest: %w", err)
	}

	s.logger.Info("interest created", "interest_id", interest.ID)
	return interest, nil
}

// GetInterest implements InterestService.GetInterest
func (s *InterestServiceImpl) GetInterest(ctx context.Context, id uuid.UUID) (*domain.Interest, error) {
	interest, err := s.interestStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve interest: %w", err)
	}
	return interest, nil
}

// ListInterests implements InterestService.ListInterests
func (s *InterestServiceImpl) ListInterests(ctx context.Context, limit, offset int) ([]*domain.Interest, error) {
	interests, err := s.interestStore.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	return interests, nil
}

// UpdateInterest implements InterestService.UpdateInterest
func (s *InterestServiceImpl) UpdateInterest(ctx context.Context, id uuid.UUID, name string) (*domain.Interest, error) {
	interest, err := s.interestStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve interest: %w", err)
	}

	interest.Name = name
	if err := interest.Validate(); err != nil {
		return nil, err
	}

	if err := s.interestStore.Update(ctx, interest); err != nil {
		return nil, fmt.Errorf("failed to update interest: %w", err)
	}

	s.logger.Info("interest updated", "interest_id", interest.ID)
	return interest, nil
}

// DeleteInterest implements InterestService.DeleteInterest
func (s *InterestServiceImpl) DeleteInterest(ctx context.Context, id uuid.UUID) error {
	if err := s.interestStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete interest: %w", err)
	}

	s.logger.Info("interest deleted", "interest_id", id)
	return nil
}
