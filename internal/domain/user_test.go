package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("test@example.com", "tester", "password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", user.Email)
	}

	if user.Username != "tester" {
		t.Errorf("Expected username tester, got %s", user.Username)
	}

	if user.Active {
		t.Error("Expected a freshly created user to be inactive")
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Invalid inputs
	if _, err := NewUser("", "tester", "password123"); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("Expected %v, got %v", ErrEmptyEmail, err)
	}

	if _, err := NewUser("invalidemail", "tester", "password123"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected %v, got %v", ErrInvalidEmail, err)
	}

	if _, err := NewUser("test@example.com", "", "password123"); !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("Expected %v, got %v", ErrEmptyUsername, err)
	}

	if _, err := NewUser("test@example.com", "tester", "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected %v, got %v", ErrPasswordTooShort, err)
	}
}

func TestUserValidateExistingUser(t *testing.T) {
	// A user loaded from the store has no plaintext password, only a hash.
	user := User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		Username:       "tester",
		HashedPassword: "somebcrypthash",
	}

	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Expected %v, got %v", ErrEmptyPassword, err)
	}
}

func TestValidEmailFormat(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.co", true},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{"user@nodot", false},
		{"user@.com", false},
		{"user@example.", false},
		{"user@exa mple.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidEmailFormat(tt.email); got != tt.want {
			t.Errorf("ValidEmailFormat(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
