package service

import "errors"

// Service-level errors. These mark outcomes of business rules rather than
// storage or transport failures, and the API layer maps each to a response
// status and safe message.
var (
	// ErrInvalidEmailFormat is returned when a registration email has no
	// local part or domain. Checked before any probe or store access.
	ErrInvalidEmailFormat = errors.New("invalid email format")

	// ErrEmailAlreadyRegistered is returned when an account with the given
	// email already exists.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrMailboxNotFound is returned when the live mailbox probe could not
	// confirm the address exists. Probe failures of any kind collapse here.
	ErrMailboxNotFound = errors.New("mailbox does not exist")

	// ErrActivationMailFailed is returned when the activation email could
	// not be dispatched after the account was created.
	ErrActivationMailFailed = errors.New("failed to send activation email")

	// ErrAccountNotActivated is returned on login attempts against an
	// account that has not completed email activation.
	ErrAccountNotActivated = errors.New("account is not activated")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongPassword is returned by ChangePassword when the old password
	// does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
)
