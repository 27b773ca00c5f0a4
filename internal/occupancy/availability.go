package occupancy

import (
	"sort"

	"github.com/seatwise/floor-service/internal/models"
)

// IsTableAvailable reports whether a single table can seat a party right now:
// active, big enough, and with no current occupant in the snapshot.
func IsTableAvailable(table models.Table, partySize int, snap *Snapshot) bool {
	if !table.IsActive || table.MaxCapacity < partySize {
		return false
	}
	return snap.IsTableFree(table.ID)
}

// FindCombinationFit returns the combination that seats an oversized party
// with the least wasted seats: candidates are ordered by declared combined
// capacity ascending, and the first one whose both member tables are free
// wins. Returns nil when nothing fits.
func FindCombinationFit(partySize int, combos []models.TableCombination, snap *Snapshot) *models.TableCombination {
	sorted := make([]models.TableCombination, len(combos))
	copy(sorted, combos)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CombinedCapacity < sorted[j].CombinedCapacity
	})

	for i := range sorted {
		c := &sorted[i]
		if c.CombinedCapacity < partySize {
			continue
		}
		if snap.IsTableFree(c.PrimaryTableID) && snap.IsTableFree(c.SecondaryTableID) {
			return c
		}
	}
	return nil
}

// BestSingleTableFit picks the free table with minimal capacity overage for
// the party, used by the simplified waitlist-conversion flow that auto-picks
// instead of asking the actor to choose.
func BestSingleTableFit(tables []models.Table, partySize int, snap *Snapshot) *models.Table {
	var best *models.Table
	for i := range tables {
		t := &tables[i]
		if !IsTableAvailable(*t, partySize, snap) {
			continue
		}
		if best == nil || t.MaxCapacity < best.MaxCapacity {
			best = t
		}
	}
	return best
}
