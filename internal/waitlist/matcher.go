package waitlist

import (
	"time"

	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/occupancy"
)

// HasAvailability reports whether at least one single table could seat the
// entry's party right now. Combinations are deliberately not considered here:
// a combined setup needs staff to physically move tables, so the matcher never
// promises one to a waiting guest.
func HasAvailability(entry models.WaitlistEntry, tables []models.Table, snap *occupancy.Snapshot) bool {
	for _, t := range tables {
		if occupancy.IsTableAvailable(t, entry.PartySize, snap) {
			return true
		}
	}
	return false
}

// AvailableSlots discretizes the entry's desired time range into 30-minute
// seating slots. Conversion to a booking must pick one of these, never an
// arbitrary instant.
func AvailableSlots(entry models.WaitlistEntry) ([]time.Time, error) {
	start, end, err := ParseTimeRange(entry.DesiredDate, entry.DesiredTimeRange)
	if err != nil {
		return nil, err
	}

	var slots []time.Time
	for t := start; t.Before(end); t = t.Add(30 * time.Minute) {
		slots = append(slots, t)
	}
	return slots, nil
}

// IsValidSlot reports whether the proposed seating time is one of the entry's
// discretized slots.
func IsValidSlot(entry models.WaitlistEntry, proposed time.Time) bool {
	slots, err := AvailableSlots(entry)
	if err != nil {
		return false
	}
	for _, s := range slots {
		if s.Equal(proposed) {
			return true
		}
	}
	return false
}
