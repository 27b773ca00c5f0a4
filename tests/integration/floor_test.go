//go:build integration

package integration

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/repository"
	"github.com/seatwise/floor-service/internal/service"
	"github.com/seatwise/floor-service/internal/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTable(t *testing.T, number string, maxCapacity int) *models.Table {
	t.Helper()
	table := &models.Table{
		RestaurantID: 1,
		TableNumber:  number,
		MinCapacity:  1,
		MaxCapacity:  maxCapacity,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(table).Error)
	return table
}

func newServices() (service.BookingService, service.WaitlistService, service.FloorService) {
	tableRepo := repository.NewTableRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)
	waitlistRepo := repository.NewWaitlistRepository(testDB)

	floor := service.NewFloorService(tableRepo, bookingRepo)
	bookings := service.NewBookingService(bookingRepo, tableRepo, nil)
	entries := service.NewWaitlistService(waitlistRepo, tableRepo, bookingRepo, floor, nil)
	return bookings, entries, floor
}

// Walk-in guest joins the waitlist, gets notified, converts to a booking, and
// dines through the full status lifecycle while the floor snapshot tracks it.
func TestWaitlistToSeatedFlow(t *testing.T) {
	cleanTables()
	table := createTestTable(t, "T1", 4)
	createTestTable(t, "T2", 2)
	bookings, entries, floor := newServices()
	ctx := t.Context()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	entry := &models.WaitlistEntry{
		RestaurantID:     1,
		GuestName:        "Walk-in",
		GuestPhone:       "555-0100",
		DesiredDate:      today,
		DesiredTimeRange: "00:00-23:30",
		PartySize:        3,
	}
	require.NoError(t, entries.CreateEntry(ctx, entry))
	assert.Equal(t, models.WaitlistActive, entry.Status)

	notified, err := entries.Notify(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistNotified, notified.Status)
	require.NotNil(t, notified.NotificationExpiresAt)
	assert.Equal(t,
		notified.NotifiedAt.Add(models.NotificationWindow),
		*notified.NotificationExpiresAt,
	)

	booking, err := entries.Convert(ctx, entry.ID, service.ConvertInput{
		SlotTime: today.Add(19 * time.Hour),
		TableIDs: []uint{table.ID},
		ActorID:  "host-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Regexp(t, `^RSV-[0-9A-F]{8}$`, booking.ConfirmationCode)

	converted, err := entries.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistBooked, converted.Status)

	for _, next := range []models.DiningStatus{models.StatusArrived, models.StatusSeated} {
		booking, err = bookings.TransitionStatus(ctx, booking.ID, next, "host-1")
		require.NoError(t, err)
	}
	assert.Equal(t, models.StatusSeated, booking.Status)

	// Seated presence holds the table regardless of the scheduled slot.
	snap, err := floor.Snapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.OccupiedCount)
	assert.Equal(t, 1, snap.AvailableCount)
	state := snap.TableState(table.ID)
	require.NotNil(t, state)
	require.NotNil(t, state.Current)
	assert.Equal(t, booking.ID, state.Current.ID)

	history, err := bookings.StatusHistory(ctx, booking.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	// Skipping ahead is rejected and leaves no trace.
	_, err = bookings.TransitionStatus(ctx, booking.ID, models.StatusCompleted, "host-1")
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	history, err = bookings.StatusHistory(ctx, booking.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

// The partial unique index keeps one open entry per guest phone per restaurant.
func TestWaitlistDuplicateGuestRejected(t *testing.T) {
	cleanTables()
	_, entries, _ := newServices()
	ctx := t.Context()

	today := time.Now().Truncate(24 * time.Hour)
	first := &models.WaitlistEntry{
		RestaurantID:     1,
		GuestName:        "Repeat",
		GuestPhone:       "555-0199",
		DesiredDate:      today,
		DesiredTimeRange: "19:00-21:00",
		PartySize:        2,
	}
	require.NoError(t, entries.CreateEntry(ctx, first))

	second := &models.WaitlistEntry{
		RestaurantID:     1,
		GuestName:        "Repeat",
		GuestPhone:       "555-0199",
		DesiredDate:      today,
		DesiredTimeRange: "20:00-22:00",
		PartySize:        2,
	}
	assert.Error(t, entries.CreateEntry(ctx, second))
}

// Concurrent sweeps over the same lapsed notification expire it exactly once.
func TestConcurrentSweepIdempotent(t *testing.T) {
	cleanTables()
	_, entries, _ := newServices()
	ctx := t.Context()

	notifiedAt := time.Now().Add(-time.Hour)
	expiresAt := notifiedAt.Add(models.NotificationWindow)
	lapsed := &models.WaitlistEntry{
		RestaurantID:          1,
		GuestName:             "Lapsed",
		GuestPhone:            "555-0150",
		DesiredDate:           time.Now(),
		DesiredTimeRange:      "19:00-21:00",
		PartySize:             2,
		Status:                models.WaitlistNotified,
		NotifiedAt:            &notifiedAt,
		NotificationExpiresAt: &expiresAt,
	}
	require.NoError(t, testDB.Create(lapsed).Error)

	var total int64
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			n, err := entries.Sweep(ctx)
			assert.NoError(t, err)
			atomic.AddInt64(&total, n)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, total)

	var stored models.WaitlistEntry
	require.NoError(t, testDB.First(&stored, lapsed.ID).Error)
	assert.Equal(t, models.WaitlistExpired, stored.Status)
}
