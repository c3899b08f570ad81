package utils

import (
	"strings"

	"github.com/google/uuid"
)

// SaleNumberPrefix prefixes every generated sale number
const SaleNumberPrefix = "SALE-"

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// GenerateSaleNumber generates a unique, opaque sale number.
// The full uuid is kept so numbers stay globally unique.
func GenerateSaleNumber() string {
	return SaleNumberPrefix + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
}
