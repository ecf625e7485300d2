package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Preparation errors, fatal for the process
	ErrDataUnavailable = errors.New("dataset unavailable")
	ErrSchemaMismatch  = errors.New("dataset schema mismatch")

	// Caller errors, reported as invalid input
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrUnknownCategory = errors.New("unknown category")
)

// Error constructors with context
func NewMissingColumnsError(columns []string) error {
	return fmt.Errorf("%w: missing columns %v", ErrSchemaMismatch, columns)
}

func NewCellTypeError(row int, column, value, want string) error {
	return fmt.Errorf("%w: row %d column %s: %q is not a valid %s", ErrSchemaMismatch, row, column, value, want)
}

func NewUnknownCategoryError(column, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrUnknownCategory, column, value)
}

// Error checking helpers
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrUnknownColumn) || errors.Is(err, ErrUnknownCategory)
}

func IsPreparationError(err error) bool {
	return errors.Is(err, ErrDataUnavailable) || errors.Is(err, ErrSchemaMismatch)
}
