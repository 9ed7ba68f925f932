package services

import "errors"

var (
	// ErrCacheMiss is returned by Get when the key is absent or expired
	ErrCacheMiss = errors.New("key not found")

	// ErrBatchTooLarge is returned when a batch exceeds the configured limit
	ErrBatchTooLarge = errors.New("batch too large")

	// ErrInvalidCredentials is returned when the login form is incomplete
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidDocument is returned when the login document does not validate
	ErrInvalidDocument = errors.New("invalid document or email")

	// ErrMissingDocument is returned when no document was informed
	ErrMissingDocument = errors.New("missing document or email")

	// ErrNotGeneratable is returned when asked to generate an email
	ErrNotGeneratable = errors.New("document type cannot be generated")
)
