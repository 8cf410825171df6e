package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier, namespaced by prefix when given.
func GenerateID(prefix string) string {
	if prefix == "" {
		return uuid.New().String()
	}
	return prefix + "_" + uuid.New().String()
}
