package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required"`
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token   string `json:"token"`
	Refresh string `json:"refresh"`
}

// RefreshRequest defines the payload for the logout and token refresh
// endpoints; both act on a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// UpdateProfileRequest defines the payload for the partial profile update
// endpoint. Absent fields are left unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// UpdateInterestsRequest defines the payload for the interest replacement
// endpoint. At least one of the two lists must be non-empty.
type UpdateInterestsRequest struct {
	InterestIDs   []uuid.UUID `json:"interest_ids,omitempty"`
	InterestNames []string    `json:"interest_names,omitempty"`
}

// UpdateInterestsResponse reports the outcome of an interest replacement.
// FailedInterests itemizes inputs that could not be resolved; the rest of
// the replacement still took effect.
type UpdateInterestsResponse struct {
	Message         string   `json:"message"`
	FailedInterests []string `json:"failed_interests,omitempty"`
}

// InterestRequest defines the payload for interest catalog create/update.
type InterestRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// MessageResponse defines a plain success message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse defines the public representation of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Active    bool      `json:"active"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user to its public representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Active:    user.Active,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserListResponse maps a slice of domain users.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
