package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new document id. Ids are uuid v4 strings in every backend.
func GenerateID() string {
	return uuid.New().String()
}

// IsValidID reports whether id is a well-formed uuid.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
