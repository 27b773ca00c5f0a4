package consumer

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/seatwise/floor-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingDeltaConsumer ingests booking rows pushed by external reservation
// channels (online booking site, POS). Deltas land in the same tables the
// poll path reads, so the next snapshot reflects them with no special casing.
type BookingDeltaConsumer struct {
	db *gorm.DB
}

func NewBookingDeltaConsumer(db *gorm.DB) *BookingDeltaConsumer {
	return &BookingDeltaConsumer{db: db}
}

func (bc *BookingDeltaConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			bc.handleMessage(msg)
		}
		log.Println("[BookingDeltaConsumer] channel closed, stopping consumer")
	}()
}

func (bc *BookingDeltaConsumer) handleMessage(msg amqp.Delivery) {
	var booking models.Booking
	if err := json.Unmarshal(msg.Body, &booking); err != nil {
		log.Printf("[BookingDeltaConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if !booking.Status.Valid() {
		log.Printf("[BookingDeltaConsumer] booking %d carries unknown status %q, dropping", booking.ID, booking.Status)
		msg.Nack(false, false)
		return
	}

	// Upsert: insert or update on conflict (same ID from the pushing channel)
	result := bc.db.Omit("Tables").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"booking_time", "turn_time_minutes", "party_size", "status", "updated_at"}),
	}).Create(&booking)

	if result.Error != nil {
		log.Printf("[BookingDeltaConsumer] failed to upsert booking %d: %v", booking.ID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[BookingDeltaConsumer] synced booking %d (status=%s)", booking.ID, booking.Status)
	msg.Ack(false)
}
