package services

import (
	"errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Catalog errors
	ErrInvalidGrade = errors.New("invalid grade")
	ErrExamNotFound = errors.New("exam not found")

	// Attempt errors
	ErrAttemptExpired = errors.New("attempt time has expired")

	// Result errors
	ErrResultNotFound = errors.New("result not found")

	// Persistence errors
	ErrPersistence = errors.New("persistence failure")
)

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrResultNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidGrade)
}

// IsExpired checks if error represents an expired attempt; callers must
// restart the attempt rather than resume it.
func IsExpired(err error) bool {
	return errors.Is(err, ErrAttemptExpired)
}
