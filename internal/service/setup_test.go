package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/seatwise/floor-service/internal/models"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. cache=shared keeps the data
// alive across the pool's connections for the duration of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Table{},
		&models.Booking{},
		&models.BookingStatusHistory{},
		&models.WaitlistEntry{},
		&models.TableCombination{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

func seedTable(t *testing.T, db *gorm.DB, table models.Table) models.Table {
	t.Helper()
	if table.MinCapacity == 0 {
		table.MinCapacity = 1
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return table
}

func seedBooking(t *testing.T, db *gorm.DB, booking models.Booking) models.Booking {
	t.Helper()
	if booking.TurnTimeMinutes == 0 {
		booking.TurnTimeMinutes = models.DefaultTurnTimeMinutes
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}

func seedEntry(t *testing.T, db *gorm.DB, entry models.WaitlistEntry) models.WaitlistEntry {
	t.Helper()
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed waitlist entry: %v", err)
	}
	return entry
}

// serviceNow is the frozen clock the fixtures are arranged around: dinner
// service on 2026-03-14, half past six.
var serviceNow = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return serviceNow }

// stubPublisher records routing keys and fails with err when set.
type stubPublisher struct {
	keys []string
	err  error
}

func (p *stubPublisher) Publish(routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	return p.err
}
