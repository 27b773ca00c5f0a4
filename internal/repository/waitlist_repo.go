package repository

import (
	"context"
	"time"

	"github.com/seatwise/floor-service/internal/models"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	FindByID(ctx context.Context, id uint) (*models.WaitlistEntry, error)
	FindByRestaurantAndDate(ctx context.Context, restaurantID uint, date time.Time) ([]models.WaitlistEntry, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, entryID uint, status models.WaitlistStatus) error
	MarkNotified(ctx context.Context, tx *gorm.DB, entryID uint, notifiedAt, expiresAt time.Time) error
	ExpireOverdueNotifications(ctx context.Context, now time.Time) (int64, error)
	GetDB() *gorm.DB
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (r *waitlistRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *waitlistRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *waitlistRepository) FindByID(ctx context.Context, id uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *waitlistRepository) FindByRestaurantAndDate(ctx context.Context, restaurantID uint, date time.Time) ([]models.WaitlistEntry, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var entries []models.WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND desired_date >= ? AND desired_date < ?", restaurantID, dayStart, dayEnd).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *waitlistRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, entryID uint, status models.WaitlistStatus) error {
	return tx.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ?", entryID).
		Update("status", status).Error
}

func (r *waitlistRepository) MarkNotified(ctx context.Context, tx *gorm.DB, entryID uint, notifiedAt, expiresAt time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{
			"status":                  models.WaitlistNotified,
			"notified_at":             notifiedAt,
			"notification_expires_at": expiresAt,
		}).Error
}

// ExpireOverdueNotifications flips every notified entry whose response window
// has elapsed to expired. Safe to re-run on every poll tick.
func (r *waitlistRepository) ExpireOverdueNotifications(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("status = ? AND notification_expires_at < ?", models.WaitlistNotified, now).
		Update("status", models.WaitlistExpired)
	return result.RowsAffected, result.Error
}
