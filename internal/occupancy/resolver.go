package occupancy

import (
	"math"
	"sort"
	"time"

	"github.com/seatwise/floor-service/internal/models"
)

const (
	maxUpcoming = 3
	maxHistory  = 3
)

// TableOccupancy is the derived state of a single table at one instant.
type TableOccupancy struct {
	Table         models.Table     `json:"table"`
	Current       *models.Booking  `json:"current,omitempty"`
	Upcoming      *models.Booking  `json:"upcoming,omitempty"`
	AllUpcoming   []models.Booking `json:"all_upcoming,omitempty"`
	RecentHistory []models.Booking `json:"recent_history,omitempty"`
}

// Anomaly records a data-integrity fault found while resolving: two
// physically-present bookings claiming the same table at once. The resolver
// tie-breaks deterministically and reports; it never drops data silently.
type Anomaly struct {
	TableID        uint   `json:"table_id"`
	KeptBookingID  uint   `json:"kept_booking_id"`
	LosingBookings []uint `json:"losing_bookings"`
}

// Snapshot is the full occupancy view of a restaurant floor at GeneratedAt.
type Snapshot struct {
	GeneratedAt    time.Time        `json:"generated_at"`
	Tables         []TableOccupancy `json:"tables"`
	OccupiedCount  int              `json:"occupied_count"`
	AvailableCount int              `json:"available_count"`
	OccupancyRate  int              `json:"occupancy_rate"`
	Anomalies      []Anomaly        `json:"anomalies,omitempty"`

	byTableID map[uint]int
}

// Resolve derives the occupancy snapshot from raw table and booking rows.
// It is a pure function of its inputs: the same rows and clock always produce
// the same snapshot, whether the rows arrived by poll or by push.
func Resolve(tables []models.Table, bookings []models.Booking, now time.Time) *Snapshot {
	snap := &Snapshot{
		GeneratedAt: now,
		byTableID:   make(map[uint]int),
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, table := range tables {
		if !table.IsActive {
			continue
		}

		to := TableOccupancy{Table: table}

		var present []models.Booking
		var scheduled []models.Booking

		for _, b := range bookings {
			if !b.OccupiesTable(table.ID) {
				continue
			}

			switch {
			case b.Status.IsPhysicallyPresent():
				present = append(present, b)
			case b.Status == models.StatusConfirmed || b.Status == models.StatusPending:
				start, end := b.Window()
				if b.Status == models.StatusConfirmed && !now.Before(start) && now.Before(end) {
					scheduled = append(scheduled, b)
				} else if b.BookingTime.After(now) {
					to.AllUpcoming = append(to.AllUpcoming, b)
				}
			case b.Status == models.StatusCompleted || b.Status == models.StatusNoShow:
				if !b.BookingTime.Before(startOfDay) && b.BookingTime.Before(now) {
					to.RecentHistory = append(to.RecentHistory, b)
				}
			}
		}

		// Staff-confirmed presence overrides the clock: any physically-present
		// booking wins over a scheduled-window match.
		switch {
		case len(present) == 1:
			to.Current = &present[0]
		case len(present) > 1:
			current, losers := tieBreak(present)
			to.Current = current
			snap.Anomalies = append(snap.Anomalies, Anomaly{
				TableID:        table.ID,
				KeptBookingID:  current.ID,
				LosingBookings: losers,
			})
		case len(scheduled) > 0:
			sort.Slice(scheduled, func(i, j int) bool {
				return scheduled[i].BookingTime.After(scheduled[j].BookingTime)
			})
			to.Current = &scheduled[0]
		}

		sort.Slice(to.AllUpcoming, func(i, j int) bool {
			return to.AllUpcoming[i].BookingTime.Before(to.AllUpcoming[j].BookingTime)
		})
		if len(to.AllUpcoming) > maxUpcoming {
			to.AllUpcoming = to.AllUpcoming[:maxUpcoming]
		}
		if len(to.AllUpcoming) > 0 {
			to.Upcoming = &to.AllUpcoming[0]
		}

		sort.Slice(to.RecentHistory, func(i, j int) bool {
			return to.RecentHistory[i].BookingTime.After(to.RecentHistory[j].BookingTime)
		})
		if len(to.RecentHistory) > maxHistory {
			to.RecentHistory = to.RecentHistory[:maxHistory]
		}

		if to.Current != nil {
			snap.OccupiedCount++
		} else {
			snap.AvailableCount++
		}

		snap.byTableID[table.ID] = len(snap.Tables)
		snap.Tables = append(snap.Tables, to)
	}

	if active := len(snap.Tables); active > 0 {
		snap.OccupancyRate = int(math.Round(100 * float64(snap.OccupiedCount) / float64(active)))
	}

	return snap
}

// tieBreak picks the current booking from >1 physically-present claimants:
// the latest booking_time wins.
func tieBreak(present []models.Booking) (*models.Booking, []uint) {
	winner := 0
	for i := 1; i < len(present); i++ {
		if present[i].BookingTime.After(present[winner].BookingTime) {
			winner = i
		}
	}
	var losers []uint
	for i := range present {
		if i != winner {
			losers = append(losers, present[i].ID)
		}
	}
	return &present[winner], losers
}

// TableState returns the resolved occupancy for one table, or nil if the
// table is inactive or unknown.
func (s *Snapshot) TableState(tableID uint) *TableOccupancy {
	idx, ok := s.byTableID[tableID]
	if !ok {
		return nil
	}
	return &s.Tables[idx]
}

// IsTableFree reports whether the table is active and has no current occupant.
func (s *Snapshot) IsTableFree(tableID uint) bool {
	to := s.TableState(tableID)
	return to != nil && to.Current == nil
}
