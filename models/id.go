package models

import "github.com/google/uuid"

// NewID returns a fresh primary key for rows created without one.
// Imported rows keep the id they were exported with.
func NewID() string {
	return uuid.New().String()
}
