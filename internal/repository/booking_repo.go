package repository

import (
	"context"
	"time"

	"github.com/seatwise/floor-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByRestaurantAndRange(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.DiningStatus) error
	AppendStatusHistory(ctx context.Context, tx *gorm.DB, record *models.BookingStatusHistory) error
	FindStatusHistory(ctx context.Context, bookingID uint) ([]models.BookingStatusHistory, error)
	ReplaceTables(ctx context.Context, tx *gorm.DB, booking *models.Booking, tables []models.Table) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Tables").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByRestaurantAndRange returns bookings whose scheduled start falls in
// [from, to), with their table assignments joined in.
func (r *bookingRepository) FindByRestaurantAndRange(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Tables").
		Where("restaurant_id = ? AND booking_time >= ? AND booking_time < ?", restaurantID, from, to).
		Order("booking_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.DiningStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

// AppendStatusHistory inserts an audit row. History is append-only: there is
// deliberately no update or delete counterpart.
func (r *bookingRepository) AppendStatusHistory(ctx context.Context, tx *gorm.DB, record *models.BookingStatusHistory) error {
	return tx.WithContext(ctx).Create(record).Error
}

func (r *bookingRepository) FindStatusHistory(ctx context.Context, bookingID uint) ([]models.BookingStatusHistory, error) {
	var records []models.BookingStatusHistory
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("changed_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *bookingRepository) ReplaceTables(ctx context.Context, tx *gorm.DB, booking *models.Booking, tables []models.Table) error {
	return tx.WithContext(ctx).Model(booking).Association("Tables").Replace(tables)
}
