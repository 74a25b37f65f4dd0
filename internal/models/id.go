package models

import (
	"fmt"

	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/google/uuid"
)

// GenerateID returns a new version-1 (time and node based) UUID string.
func GenerateID() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

// ValidateID accepts only the canonical 8-4-4-4-12 form of an RFC 4122 UUID
// of version 1 through 5.
func ValidateID(s string) error {
	if len(s) != 36 {
		return fmt.Errorf("%w: malformed id %q", common.ErrorValidation, s)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: malformed id %q: %v", common.ErrorValidation, s, err)
	}
	if id.Variant() != uuid.RFC4122 {
		return fmt.Errorf("%w: id %q is not an RFC 4122 uuid", common.ErrorValidation, s)
	}
	if v := id.Version(); v < 1 || v > 5 {
		return fmt.Errorf("%w: id %q has unsupported version %d", common.ErrorValidation, s, v)
	}
	return nil
}
