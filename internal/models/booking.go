package models

import "time"

const DefaultTurnTimeMinutes = 120

type Booking struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"not null;index" json:"restaurant_id"`

	// Exactly one identity channel is populated: a registered user id, or the
	// guest contact fields.
	UserID     *string `gorm:"index" json:"user_id,omitempty"`
	GuestName  string  `json:"guest_name,omitempty"`
	GuestPhone string  `json:"guest_phone,omitempty"`
	GuestEmail string  `json:"guest_email,omitempty"`

	BookingTime      time.Time    `gorm:"not null;index" json:"booking_time"`
	TurnTimeMinutes  int          `gorm:"not null;default:120" json:"turn_time_minutes"`
	PartySize        int          `gorm:"not null" json:"party_size"`
	Status           DiningStatus `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	ConfirmationCode string       `gorm:"type:varchar(20);index" json:"confirmation_code,omitempty"`

	Tables []Table `gorm:"many2many:booking_tables" json:"tables,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Window returns the scheduled occupancy window [start, end).
func (b *Booking) Window() (time.Time, time.Time) {
	turn := b.TurnTimeMinutes
	if turn <= 0 {
		turn = DefaultTurnTimeMinutes
	}
	return b.BookingTime, b.BookingTime.Add(time.Duration(turn) * time.Minute)
}

// OccupiesTable reports whether tableID is in the booking's assignment set.
func (b *Booking) OccupiesTable(tableID uint) bool {
	for _, t := range b.Tables {
		if t.ID == tableID {
			return true
		}
	}
	return false
}

// HasGuestIdentity reports whether the booking carries guest contact fields
// rather than a registered user id.
func (b *Booking) HasGuestIdentity() bool {
	return b.UserID == nil
}
