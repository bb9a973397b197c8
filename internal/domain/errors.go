package domain

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnsupported  = errors.New("unsupported operation")
	ErrInternal     = errors.New("internal error")
	ErrUnavailable  = errors.New("service unavailable")
)

// Specific errors.
var (
	ErrInvalidLatitude     = fmt.Errorf("latitude: %w", ErrInvalidInput)
	ErrInvalidLongitude    = fmt.Errorf("longitude: %w", ErrInvalidInput)
	ErrInvalidGeoJSON      = fmt.Errorf("geojson: %w", ErrInvalidInput)
	ErrCollectionNotFound  = fmt.Errorf("collection: %w", ErrNotFound)
	ErrFeatureNotFound     = fmt.Errorf("feature: %w", ErrNotFound)
	ErrUnsupportedGeometry = fmt.Errorf("geometry: %w", ErrUnsupported)
	ErrNotReady            = fmt.Errorf("service not ready: %w", ErrUnavailable)
	ErrStorageUnavailable  = fmt.Errorf("storage: %w", ErrUnavailable)
)

// ValidationError represents a detailed validation error.
type ValidationError struct {
	Field      string      // Field that failed validation
	Value      interface{} // The invalid value
	Constraint string      // The constraint that was violated
	Message    string      // Human-readable message
	Err        error       // Sentinel this error wraps
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v, constraint: %s)",
		e.Field, e.Message, e.Value, e.Constraint)
}

// Unwrap returns the underlying error type.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// QueryError represents an error during a query operation.
type QueryError struct {
	CollectionID string // Collection identifier
	Err          error  // Underlying error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error in collection %s: %v", e.CollectionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// StorageError represents an error during storage operations.
type StorageError struct {
	Operation string // Operation that failed (download, list, etc.)
	Key       string // Object key
	Err       error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage error during %s for %s: %v",
			e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// DecodeError represents a GeoJSON structural mismatch.
type DecodeError struct {
	Expected string // What the decoder expected
	Got      string // What it found instead
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("geojson decode error: expected %s, got %s", e.Expected, e.Got)
}

// Unwrap returns the underlying error type.
func (e *DecodeError) Unwrap() error {
	return ErrInvalidGeoJSON
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string // Configuration field
	Message string // Error message
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidInput
}
