package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyInterestID   = errors.New("interest ID cannot be empty")
	ErrEmptyInterestName = errors.New("interest name cannot be empty")
	ErrInterestNameTooLong = errors.New("interest name must be at most 100 characters long")
)

// Interest is a shared tag users attach to their profile. Rows are created
// lazily when first referenced by name and outlive any single user's
// reference to them.
type Interest struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInterest creates a new Interest with the given name.
// Returns an error if validation fails.
func NewInterest(name string) (*Interest, error) {
	interest := &Interest{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := interest.Validate(); err != nil {
		return nil, err
	}

	return interest, nil
}

// Validate checks if the Interest has valid data.
func (i *Interest) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyInterestID
	}

	if i.Name == "" {
		return ErrEmptyInterestName
	}

	if len(i.Name) > 100 {
		return ErrInterestNameTooLong
	}

	return nil
}

// UserInterest associates one User with one Interest. Position carries the
// caller-supplied ordering; the (user, interest) pair is unique. Rows are
// bulk-replaced rather than patched when a user updates their set.
type UserInterest struct {
	ID         uuid.UUID `json:"-"`
	UserID     uuid.UUID `json:"-"`
	InterestID uuid.UUID `json:"-"`
	Position   int       `json:"order"`
	CreatedAt  time.Time `json:"-"`

	// Interest is the joined row, populated on reads.
	Interest *Interest `json:"interest,omitempty"`
}

// NewUserInterest creates an association row between a user and an interest
// at the given position.
func NewUserInterest(userID, interestID uuid.UUID, position int) *UserInterest {
	return &UserInterest{
		ID:         uuid.New(),
		UserID:     userID,
		InterestID: interestID,
		Position:   position,
		CreatedAt:  time.Now().UTC(),
	}
}
