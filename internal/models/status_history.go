package models

import "time"

// BookingStatusHistory is an append-only audit log. Rows are never updated or
// deleted once written.
type BookingStatusHistory struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	BookingID uint         `gorm:"not null;index" json:"booking_id"`
	OldStatus DiningStatus `gorm:"type:varchar(30);not null" json:"old_status"`
	NewStatus DiningStatus `gorm:"type:varchar(30);not null" json:"new_status"`
	ChangedAt time.Time    `gorm:"not null" json:"changed_at"`
	ChangedBy string       `gorm:"not null" json:"changed_by"`
}
