package service

import (
	"context"
	"time"

	"github.com/seatwise/floor-service/internal/occupancy"
	"github.com/seatwise/floor-service/internal/repository"
	"github.com/seatwise/floor-service/pkg/logger"
)

type FloorService interface {
	Snapshot(ctx context.Context, restaurantID uint) (*occupancy.Snapshot, error)
	SnapshotAt(ctx context.Context, restaurantID uint, now time.Time) (*occupancy.Snapshot, error)
}

type floorService struct {
	tableRepo   repository.TableRepository
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

func NewFloorService(tableRepo repository.TableRepository, bookingRepo repository.BookingRepository) FloorService {
	return &floorService{
		tableRepo:   tableRepo,
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

func (s *floorService) Snapshot(ctx context.Context, restaurantID uint) (*occupancy.Snapshot, error) {
	return s.SnapshotAt(ctx, restaurantID, s.now())
}

// SnapshotAt fetches the day's raw rows and resolves them against the given
// clock. Every caller (HTTP read, poll tick, push-delta reconcile) goes
// through the same pure resolver.
func (s *floorService) SnapshotAt(ctx context.Context, restaurantID uint, now time.Time) (*occupancy.Snapshot, error) {
	tables, err := s.tableRepo.FindActiveByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.bookingRepo.FindByRestaurantAndRange(ctx, restaurantID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	snap := occupancy.Resolve(tables, bookings, now)

	// Double-present bookings on one table are a data-integrity fault. The
	// resolver tie-breaks deterministically; we report instead of swallowing.
	for _, a := range snap.Anomalies {
		logger.Error.Errorf("occupancy anomaly: table %d claimed by bookings %v, kept %d",
			a.TableID, a.LosingBookings, a.KeptBookingID)
	}

	return snap, nil
}
