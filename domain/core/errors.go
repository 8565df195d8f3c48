package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)

	// Mapping and validation errors
	ErrDuplicateMapping = errors.New("duplicate mapping target")
	ErrUnknownField     = errors.New("unknown canonical field")
	ErrMissingRequired  = errors.New("required column not mapped")
	ErrEmptyTable       = errors.New("table has no rows")

	// Ingestion errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoHeader          = errors.New("file has no header row")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewMissingRequiredError(fields []string) error {
	return fmt.Errorf("%w: %v", ErrMissingRequired, fields)
}

func NewDuplicateMappingError(canonical string, headers []string) error {
	return fmt.Errorf("%w: %v all map to %q", ErrDuplicateMapping, headers, canonical)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMappingError(err error) bool {
	return errors.Is(err, ErrDuplicateMapping) ||
		errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrMissingRequired)
}
