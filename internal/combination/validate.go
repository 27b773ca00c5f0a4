package combination

import (
	"errors"

	"github.com/seatwise/floor-service/internal/models"
)

var (
	ErrNotCombinable   = errors.New("both tables must be marked combinable")
	ErrSameTable       = errors.New("a table cannot be combined with itself")
	ErrInvalidCapacity = errors.New("combined capacity must be at least 1")
)

// Validate checks a declared pairing of two tables. The combined capacity is
// operator-declared and deliberately not required to equal the arithmetic sum
// of the member capacities (shared aisle space may reduce it).
func Validate(primary, secondary models.Table, combinedCapacity int) error {
	if primary.ID == secondary.ID {
		return ErrSameTable
	}
	if !primary.IsCombinable || !secondary.IsCombinable {
		return ErrNotCombinable
	}
	if combinedCapacity < 1 {
		return ErrInvalidCapacity
	}
	return nil
}

// SuggestedCapacity is the arithmetic sum the UI offers as a starting point.
func SuggestedCapacity(primary, secondary models.Table) int {
	return primary.MaxCapacity + secondary.MaxCapacity
}
