package service

import (
	"context"
	"errors"
	"time"

	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/repository"
	"github.com/seatwise/floor-service/internal/statemachine"
	"github.com/seatwise/floor-service/pkg/logger"
	"gorm.io/gorm"
)

// EventPublisher is the outbound event hook; *rabbitmq.Publisher satisfies it.
// Publishing is fire-and-forget: a failed publish is logged, never surfaced to
// the caller.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

func publishEvent(p EventPublisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		logger.Error.Errorf("publish %s failed: %v", routingKey, err)
	}
}

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrTableNotFound   = errors.New("one or more tables not found")
	ErrInactiveTable   = errors.New("cannot assign an inactive table")
	ErrNoTablesGiven   = errors.New("at least one table id is required")
)

type BookingService interface {
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.Booking, error)
	TransitionStatus(ctx context.Context, bookingID uint, newStatus models.DiningStatus, actorID string) (*models.Booking, error)
	AssignTables(ctx context.Context, bookingID uint, tableIDs []uint) (*models.Booking, error)
	StatusHistory(ctx context.Context, bookingID uint) ([]models.BookingStatusHistory, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	tableRepo   repository.TableRepository
	publisher   EventPublisher
	now         func() time.Time
}

func NewBookingService(bookingRepo repository.BookingRepository, tableRepo repository.TableRepository, publisher EventPublisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		tableRepo:   tableRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.Booking, error) {
	return s.bookingRepo.FindByRestaurantAndRange(ctx, restaurantID, from, to)
}

// TransitionStatus moves a booking through the dining lifecycle. The status
// update and its audit row land in one transaction: an invalid transition
// leaves no partial state behind.
func (s *bookingService) TransitionStatus(ctx context.Context, bookingID uint, newStatus models.DiningStatus, actorID string) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}

		if err := statemachine.CanTransition(booking.Status, newStatus); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, bookingID, newStatus); err != nil {
			return err
		}

		record := &models.BookingStatusHistory{
			BookingID: bookingID,
			OldStatus: booking.Status,
			NewStatus: newStatus,
			ChangedAt: s.now(),
			ChangedBy: actorID,
		}
		if err := s.bookingRepo.AppendStatusHistory(ctx, tx, record); err != nil {
			return err
		}

		booking.Status = newStatus
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, "booking.status_changed", result)

	return result, nil
}

// AssignTables replaces a booking's table assignment. Double-booking a table
// is not blocked here: writes race against polling reads, and the resolver
// surfaces the conflict on the next snapshot.
func (s *bookingService) AssignTables(ctx context.Context, bookingID uint, tableIDs []uint) (*models.Booking, error) {
	if len(tableIDs) == 0 {
		return nil, ErrNoTablesGiven
	}

	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}

		tables, err := s.tableRepo.FindByIDs(ctx, tableIDs)
		if err != nil {
			return err
		}
		if len(tables) != len(tableIDs) {
			return ErrTableNotFound
		}
		for _, t := range tables {
			if !t.IsActive {
				return ErrInactiveTable
			}
		}

		if err := s.bookingRepo.ReplaceTables(ctx, tx, booking, tables); err != nil {
			return err
		}

		booking.Tables = tables
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, "booking.tables_assigned", result)

	return result, nil
}

func (s *bookingService) StatusHistory(ctx context.Context, bookingID uint) ([]models.BookingStatusHistory, error) {
	if _, err := s.bookingRepo.FindByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return s.bookingRepo.FindStatusHistory(ctx, bookingID)
}
