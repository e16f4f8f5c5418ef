package id

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a fresh entity identifier.
func New() string {
	return uuid.NewString()
}

// Validate reports an error if s is not a well-formed identifier.
func Validate(s string) error {
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("invalid id %q: %w", s, err)
	}
	return nil
}
