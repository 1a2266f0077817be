package model

import (
	"errors"
	"strings"
)

// Sentinel error kinds. Driving adapters map these to user-visible notices.
var (
	// ErrValidation indicates malformed input: empty query, weak password,
	// mismatched confirmation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a bad credential pair or a missing session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller lacks admin privilege.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a duplicate signup identifier.
	ErrConflict = errors.New("conflict")

	// ErrConfiguration indicates a missing provider credential. It is scoped to
	// a single provider call and never fails a dispatch batch.
	ErrConfiguration = errors.New("configuration error")
)

// ValidationError carries every violated rule for a single input.
// errors.Is(err, ErrValidation) reports true for any *ValidationError.
type ValidationError struct {
	Problems []string
}

// NewValidationError returns a ValidationError for the given problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

// Is makes ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DeserializationError reports a stored blob that does not match the expected
// schema. Key names the storage key that failed to decode.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return "decode " + e.Key + ": " + e.Err.Error()
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a provider whose API key is absent.
// errors.Is(err, ErrConfiguration) reports true.
type ConfigurationError struct {
	Provider Provider
}

func (e *ConfigurationError) Error() string {
	return "API " + string(e.Provider) + " not configured"
}

// Is makes ConfigurationError match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
