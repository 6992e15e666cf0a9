package utils

import "github.com/google/uuid"

// NewUID returns a random identifier for stored documents.
func NewUID() string {
	return uuid.NewString()
}
