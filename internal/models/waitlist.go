package models

import "time"

type WaitlistStatus string

const (
	WaitlistActive    WaitlistStatus = "active"
	WaitlistNotified  WaitlistStatus = "notified"
	WaitlistBooked    WaitlistStatus = "booked"
	WaitlistExpired   WaitlistStatus = "expired"
	WaitlistCancelled WaitlistStatus = "cancelled"
)

// NotificationWindow is how long a notified guest has to respond before the
// entry expires. NotificationExpiresAt is always NotifiedAt plus exactly this.
const NotificationWindow = 15 * time.Minute

// TableTypeAny means the guest takes whatever table type frees up first.
const TableTypeAny = "any"

type WaitlistEntry struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"not null;index" json:"restaurant_id"`

	// Same identity rule as Booking: user id XOR guest contact.
	UserID     *string `gorm:"index" json:"user_id,omitempty"`
	GuestName  string  `json:"guest_name,omitempty"`
	GuestPhone string  `json:"guest_phone,omitempty"`
	GuestEmail string  `json:"guest_email,omitempty"`

	DesiredDate      time.Time `gorm:"not null;index" json:"desired_date"`
	DesiredTimeRange string    `gorm:"type:varchar(11);not null" json:"desired_time_range"` // "HH:MM-HH:MM"
	PartySize        int       `gorm:"not null" json:"party_size"`
	TableType        string    `gorm:"type:varchar(20);not null;default:'any'" json:"table_type"`

	Status                WaitlistStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	NotifiedAt            *time.Time     `json:"notified_at,omitempty"`
	NotificationExpiresAt *time.Time     `json:"notification_expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationExpired reports whether the entry is still notified past its
// response window.
func (w *WaitlistEntry) NotificationExpired(now time.Time) bool {
	return w.Status == WaitlistNotified &&
		w.NotificationExpiresAt != nil &&
		now.After(*w.NotificationExpiresAt)
}
