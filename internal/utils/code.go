package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewCheckinCode returns a collision-resistant check-in code for a booking.
// A random UUID (without dashes, upper-cased) keeps the code opaque and
// scanner-friendly while remaining unique across concurrent bookings.
func NewCheckinCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
