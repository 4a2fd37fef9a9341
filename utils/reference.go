package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewBookingReference builds a short human-readable reference like
// "BK-20240315-7F3A9C". The uuid fragment keeps it collision-safe without a
// counter table.
func NewBookingReference(at time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("BK-%s-%s", at.Format("20060102"), id[:6])
}
