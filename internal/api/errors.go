package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/userhub-io/userhub/internal/api/shared"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/service"
	"github.com/userhub-io/userhub/internal/service/auth"
	"github.com/userhub-io/userhub/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients. Failures caused by external dependencies (mailbox
// probe, mail dispatch) and store conflicts surface as 4xx, never 5xx.
func MapErrorToStatusCode(err error) int {
	switch {
	// Access-token failures
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrInterestNotFound):
		return http.StatusNotFound

	// Registration / login / activation business failures
	case errors.Is(err, service.ErrInvalidEmailFormat),
		errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, service.ErrMailboxNotFound),
		errors.Is(err, service.ErrActivationMailFailed),
		errors.Is(err, service.ErrAccountNotActivated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, auth.ErrInvalidActivationToken):
		return http.StatusBadRequest

	// Store conflicts
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, store.ErrInterestNameExists),
		errors.Is(err, store.ErrTokenRevoked):
		return http.StatusBadRequest

	// Domain validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyInterestName),
		errors.Is(err, domain.ErrInterestNameTooLong):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	// Field-level validation errors carry only the field name and a short
	// message, both safe to expose.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, service.ErrInvalidEmailFormat):
		return "Invalid email format"

	case errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, service.ErrMailboxNotFound):
		return "Email address does not appear to exist"

	case errors.Is(err, service.ErrActivationMailFailed):
		return "Could not send activation email"

	case errors.Is(err, service.ErrAccountNotActivated):
		return "Account is not activated"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrWrongPassword):
		return "Wrong password"

	case errors.Is(err, auth.ErrInvalidActivationToken):
		return "Invalid or expired activation token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, store.ErrTokenRevoked):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrInterestNotFound):
		return "Interest not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already taken"

	case errors.Is(err, store.ErrInterestNameExists):
		return "Interest name already exists"

	case errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyInterestName),
		errors.Is(err, domain.ErrInterestNameTooLong):
		return err.Error()

	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message and writes
// the response. defaultMsg overrides the generic message for unrecognized
// errors; pass "" to keep the generic one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if defaultMsg != "" && status == http.StatusInternalServerError {
		msg = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}

// SanitizeValidationError turns a go-playground/validator error into a short
// user-facing message naming the offending field.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Format: "Key: 'LoginRequest.Email' Error:Field validation for
		// 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
