package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or its signature doesn't match
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrInvalidActivationToken indicates the activation token is malformed,
	// expired, or its signature doesn't match. Expiry is deliberately not
	// distinguished: the user-facing answer is the same either way.
	ErrInvalidActivationToken = errors.New("invalid or expired activation token")

	// ErrWrongTokenType indicates a token was presented in the wrong context,
	// e.g. an access token where a refresh token is expected
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")
)
