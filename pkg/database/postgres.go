package database

import (
	"log"

	"github.com/seatwise/floor-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Table{},
		&models.Booking{},
		&models.BookingStatusHistory{},
		&models.WaitlistEntry{},
		&models.TableCombination{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: one open waitlist entry per guest phone per
	// restaurant. Closed entries (booked/expired/cancelled) don't count.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_waitlist_open_guest
		ON waitlist_entries (restaurant_id, guest_phone)
		WHERE status IN ('active', 'notified') AND guest_phone <> ''
	`)

	return db
}
