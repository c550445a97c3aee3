package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors surfaced before any computation runs
	ErrInsufficientData      = errors.New("insufficient data for analysis")
	ErrNoProtectedAttributes = errors.New("no protected attribute columns detected")

	// ErrComputation wraps any unexpected failure inside the pipeline
	ErrComputation = errors.New("bias computation failed")

	// Collaborator errors
	ErrNotFound         = errors.New("resource not found")
	ErrAnalysisNotFound = fmt.Errorf("%w: analysis", ErrNotFound)
	ErrSettingsNotFound = fmt.Errorf("%w: settings", ErrNotFound)
)

// Error constructors with context
func NewInsufficientDataError(records int) error {
	return fmt.Errorf("%w: dataset has %d records, need at least 2", ErrInsufficientData, records)
}

func NewComputationError(stage string, cause interface{}) error {
	return fmt.Errorf("%w in %s: %v", ErrComputation, stage, cause)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrNoProtectedAttributes)
}

func IsComputationError(err error) bool {
	return errors.Is(err, ErrComputation)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
