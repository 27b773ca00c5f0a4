package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/occupancy"
	"github.com/seatwise/floor-service/internal/repository"
	"github.com/seatwise/floor-service/internal/waitlist"
	"github.com/seatwise/floor-service/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound    = errors.New("waitlist entry not found")
	ErrEntryNotActive   = errors.New("waitlist entry is not active")
	ErrEntryClosed      = errors.New("waitlist entry is already closed")
	ErrNoTableAvailable = errors.New("no suitable table is currently available")
	ErrInvalidSlot      = errors.New("seating time is not a valid slot within the desired range")
)

// ConvertInput is the actor's explicit conversion choice: one discretized slot
// from the entry's desired range, plus either a table selection or a request
// to auto-pick the best-fitting single table.
type ConvertInput struct {
	SlotTime   time.Time
	TableIDs   []uint
	AutoAssign bool
	ActorID    string
}

type WaitlistService interface {
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) error
	GetEntry(ctx context.Context, id uint) (*models.WaitlistEntry, error)
	ListForDate(ctx context.Context, restaurantID uint, date time.Time) ([]models.WaitlistEntry, error)
	Notify(ctx context.Context, entryID uint) (*models.WaitlistEntry, error)
	Cancel(ctx context.Context, entryID uint) (*models.WaitlistEntry, error)
	Convert(ctx context.Context, entryID uint, input ConvertInput) (*models.Booking, error)
	Sweep(ctx context.Context) (int64, error)
}

type waitlistService struct {
	waitlistRepo repository.WaitlistRepository
	tableRepo    repository.TableRepository
	bookingRepo  repository.BookingRepository
	floor        FloorService
	publisher    EventPublisher
	now          func() time.Time
}

func NewWaitlistService(
	waitlistRepo repository.WaitlistRepository,
	tableRepo repository.TableRepository,
	bookingRepo repository.BookingRepository,
	floor FloorService,
	publisher EventPublisher,
) WaitlistService {
	return &waitlistService{
		waitlistRepo: waitlistRepo,
		tableRepo:    tableRepo,
		bookingRepo:  bookingRepo,
		floor:        floor,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *waitlistService) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	entry.Status = models.WaitlistActive
	return s.waitlistRepo.Create(ctx, entry)
}

func (s *waitlistService) GetEntry(ctx context.Context, id uint) (*models.WaitlistEntry, error) {
	entry, err := s.waitlistRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListForDate sweeps lapsed notifications first, so no caller ever sees an
// entry still notified past its window.
func (s *waitlistService) ListForDate(ctx context.Context, restaurantID uint, date time.Time) ([]models.WaitlistEntry, error) {
	if _, err := s.Sweep(ctx); err != nil {
		return nil, err
	}
	return s.waitlistRepo.FindByRestaurantAndDate(ctx, restaurantID, date)
}

// Notify marks an entry as notified, only when a suitable table is free right
// now. The response window is exactly models.NotificationWindow.
func (s *waitlistService) Notify(ctx context.Context, entryID uint) (*models.WaitlistEntry, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != models.WaitlistActive {
		return nil, ErrEntryNotActive
	}

	snap, err := s.floor.Snapshot(ctx, entry.RestaurantID)
	if err != nil {
		return nil, err
	}
	tables := snapshotTables(snap)
	if !waitlist.HasAvailability(*entry, tables, snap) {
		return nil, ErrNoTableAvailable
	}

	notifiedAt := s.now()
	expiresAt := notifiedAt.Add(models.NotificationWindow)
	if err := s.waitlistRepo.MarkNotified(ctx, s.waitlistRepo.GetDB(), entryID, notifiedAt, expiresAt); err != nil {
		return nil, err
	}

	entry.Status = models.WaitlistNotified
	entry.NotifiedAt = &notifiedAt
	entry.NotificationExpiresAt = &expiresAt

	publishEvent(s.publisher, "waitlist.notified", entry)

	return entry, nil
}

func (s *waitlistService) Cancel(ctx context.Context, entryID uint) (*models.WaitlistEntry, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == models.WaitlistBooked || entry.Status == models.WaitlistCancelled {
		return nil, ErrEntryClosed
	}

	if err := s.waitlistRepo.UpdateStatus(ctx, s.waitlistRepo.GetDB(), entryID, models.WaitlistCancelled); err != nil {
		return nil, err
	}

	entry.Status = models.WaitlistCancelled
	return entry, nil
}

// Convert turns a waitlist entry into a confirmed booking. The slot must come
// from the entry's desired range discretized to 30-minute increments, and the
// table choice is the actor's; AutoAssign is the simplified variant that picks
// the free table with minimal capacity overage.
func (s *waitlistService) Convert(ctx context.Context, entryID uint, input ConvertInput) (*models.Booking, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	// A lapsed notification is reclassified expired before the entry can be
	// considered again.
	if entry.NotificationExpired(s.now()) {
		if err := s.waitlistRepo.UpdateStatus(ctx, s.waitlistRepo.GetDB(), entryID, models.WaitlistExpired); err != nil {
			return nil, err
		}
		return nil, ErrEntryNotActive
	}

	if entry.Status != models.WaitlistActive && entry.Status != models.WaitlistNotified {
		return nil, ErrEntryNotActive
	}

	if !waitlist.IsValidSlot(*entry, input.SlotTime) {
		return nil, ErrInvalidSlot
	}

	tableIDs := input.TableIDs
	if len(tableIDs) == 0 {
		if !input.AutoAssign {
			return nil, ErrNoTablesGiven
		}
		snap, err := s.floor.Snapshot(ctx, entry.RestaurantID)
		if err != nil {
			return nil, err
		}
		best := occupancy.BestSingleTableFit(snapshotTables(snap), entry.PartySize, snap)
		if best == nil {
			return nil, ErrNoTableAvailable
		}
		tableIDs = []uint{best.ID}
	}

	var result *models.Booking

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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

		// Waitlist conversions are staff-vetted: the booking starts confirmed,
		// never pending.
		booking := &models.Booking{
			RestaurantID:     entry.RestaurantID,
			UserID:           entry.UserID,
			GuestName:        entry.GuestName,
			GuestPhone:       entry.GuestPhone,
			GuestEmail:       entry.GuestEmail,
			BookingTime:      input.SlotTime,
			TurnTimeMinutes:  models.DefaultTurnTimeMinutes,
			PartySize:        entry.PartySize,
			Status:           models.StatusConfirmed,
			ConfirmationCode: generateConfirmationCode(),
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		if err := s.bookingRepo.ReplaceTables(ctx, tx, booking, tables); err != nil {
			return err
		}

		if err := s.waitlistRepo.UpdateStatus(ctx, tx, entryID, models.WaitlistBooked); err != nil {
			return err
		}

		booking.Tables = tables
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.publisher, "waitlist.converted", result)

	return result, nil
}

// Sweep reclassifies every notified entry whose window has lapsed to expired.
// Idempotent; runs on every poll tick and every waitlist read.
func (s *waitlistService) Sweep(ctx context.Context) (int64, error) {
	expired, err := s.waitlistRepo.ExpireOverdueNotifications(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logger.Info.Infof("waitlist sweep: expired %d lapsed notifications", expired)
	}
	return expired, nil
}

func snapshotTables(snap *occupancy.Snapshot) []models.Table {
	tables := make([]models.Table, len(snap.Tables))
	for i, to := range snap.Tables {
		tables[i] = to.Table
	}
	return tables
}

// generateConfirmationCode returns a short human-readable code like
// RSV-9F21C04A.
func generateConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "RSV-" + strings.ToUpper(raw[:8])
}
