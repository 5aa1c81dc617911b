package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// DatasetID identifies a single ingested dataset generation. A fresh one is
// stamped on every successful ingestion, so consumers can detect that the
// dataset was replaced wholesale.
type DatasetID ID

// String returns the string representation
func (id DatasetID) String() string { return ID(id).String() }

// NewDatasetID creates a fresh dataset generation identifier
func NewDatasetID() DatasetID {
	return DatasetID(NewID())
}

// ParseDatasetID parses a string into a DatasetID
func ParseDatasetID(s string) (DatasetID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dataset ID cannot be empty")
	}
	return DatasetID(s), nil
}
