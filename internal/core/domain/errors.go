package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedProvider indicates an unknown provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// Credential and session errors.

	// ErrInvalidCredentials indicates a required credential field is missing or blank.
	// It is always returned before any network call is attempted.
	ErrInvalidCredentials = errors.New("invalid credentials format")

	// ErrNotInitialized indicates a provider service has no active session.
	ErrNotInitialized = errors.New("service not initialized, provide credentials first")

	// ErrAuthInvalid indicates the provider rejected the credentials (HTTP 401/403).
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrAuthExpired indicates stored OAuth tokens expired and could not be refreshed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// Provider response errors.

	// ErrMalformedResponse indicates a provider returned a body of unexpected shape.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrTransitionNotAvailable indicates the workflow has no edge to the requested status.
	ErrTransitionNotAvailable = errors.New("transition not available")

	// ErrAllStrategiesFailed indicates every request strategy was tried without success.
	ErrAllStrategiesFailed = errors.New("all request strategies failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
