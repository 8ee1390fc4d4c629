package utils

import (
	"github.com/google/uuid"
)

// NewEntryID returns the id for a new watchlist entry
func NewEntryID() string {
	return uuid.New().String()
}

// NewRecordID returns the id for a new episode watch record
func NewRecordID() string {
	return uuid.New().String()
}
