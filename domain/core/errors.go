package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Ingestion errors: the only failures the system can raise. Every
	// computation component downstream of ingestion is total.
	ErrNoCSVInArchive     = errors.New("archive contains no csv file")
	ErrUndecodablePayload = errors.New("payload is not decodable text")
	ErrEmptyDataset       = errors.New("dataset has no header row")

	// State errors
	ErrNoDataset = errors.New("no dataset has been ingested")

	// Validation errors
	ErrUnknownColumn = errors.New("column not present in dataset")
	ErrUnknownRole   = errors.New("unknown column role")
)

// Error constructors with context
func NewUnknownColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}

func NewUnknownRoleError(role string) error {
	return fmt.Errorf("%w: %q", ErrUnknownRole, role)
}

// IsIngestionError reports whether err is a fatal ingestion failure. The
// prior dataset must be left untouched when this returns true.
func IsIngestionError(err error) bool {
	return errors.Is(err, ErrNoCSVInArchive) ||
		errors.Is(err, ErrUndecodablePayload) ||
		errors.Is(err, ErrEmptyDataset)
}

// IsValidationError reports whether err stems from a bad caller request
// rather than a bad payload.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrUnknownRole)
}
