package dto

import (
	"time"

	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/occupancy"
	"github.com/seatwise/floor-service/internal/waitlist"
)

type BookingResponse struct {
	ID               uint                `json:"id"`
	RestaurantID     uint                `json:"restaurant_id"`
	UserID           *string             `json:"user_id,omitempty"`
	GuestName        string              `json:"guest_name,omitempty"`
	GuestPhone       string              `json:"guest_phone,omitempty"`
	BookingTime      time.Time           `json:"booking_time"`
	TurnTimeMinutes  int                 `json:"turn_time_minutes"`
	PartySize        int                 `json:"party_size"`
	Status           models.DiningStatus `json:"status"`
	ConfirmationCode string              `json:"confirmation_code,omitempty"`
	TableIDs         []uint              `json:"table_ids,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		RestaurantID:     b.RestaurantID,
		UserID:           b.UserID,
		GuestName:        b.GuestName,
		GuestPhone:       b.GuestPhone,
		BookingTime:      b.BookingTime,
		TurnTimeMinutes:  b.TurnTimeMinutes,
		PartySize:        b.PartySize,
		Status:           b.Status,
		ConfirmationCode: b.ConfirmationCode,
		CreatedAt:        b.CreatedAt,
	}
	for _, t := range b.Tables {
		resp.TableIDs = append(resp.TableIDs, t.ID)
	}
	return resp
}

type WaitlistEntryResponse struct {
	ID                    uint                  `json:"id"`
	RestaurantID          uint                  `json:"restaurant_id"`
	UserID                *string               `json:"user_id,omitempty"`
	GuestName             string                `json:"guest_name,omitempty"`
	GuestPhone            string                `json:"guest_phone,omitempty"`
	DesiredDate           time.Time             `json:"desired_date"`
	DesiredTimeRange      string                `json:"desired_time_range"`
	PartySize             int                   `json:"party_size"`
	TableType             string                `json:"table_type"`
	Status                models.WaitlistStatus `json:"status"`
	Urgency               waitlist.Urgency      `json:"urgency"`
	HasAvailability       bool                  `json:"has_availability"`
	NotifiedAt            *time.Time            `json:"notified_at,omitempty"`
	NotificationExpiresAt *time.Time            `json:"notification_expires_at,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
}

func ToWaitlistEntryResponse(e *models.WaitlistEntry, urgency waitlist.Urgency, hasAvailability bool) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		ID:                    e.ID,
		RestaurantID:          e.RestaurantID,
		UserID:                e.UserID,
		GuestName:             e.GuestName,
		GuestPhone:            e.GuestPhone,
		DesiredDate:           e.DesiredDate,
		DesiredTimeRange:      e.DesiredTimeRange,
		PartySize:             e.PartySize,
		TableType:             e.TableType,
		Status:                e.Status,
		Urgency:               urgency,
		HasAvailability:       hasAvailability,
		NotifiedAt:            e.NotifiedAt,
		NotificationExpiresAt: e.NotificationExpiresAt,
		CreatedAt:             e.CreatedAt,
	}
}

type FloorResponse struct {
	GeneratedAt    time.Time                  `json:"generated_at"`
	Tables         []occupancy.TableOccupancy `json:"tables"`
	OccupiedCount  int                        `json:"occupied_count"`
	AvailableCount int                        `json:"available_count"`
	OccupancyRate  int                        `json:"occupancy_rate"`
	AnomalyCount   int                        `json:"anomaly_count"`
}

func ToFloorResponse(snap *occupancy.Snapshot) FloorResponse {
	return FloorResponse{
		GeneratedAt:    snap.GeneratedAt,
		Tables:         snap.Tables,
		OccupiedCount:  snap.OccupiedCount,
		AvailableCount: snap.AvailableCount,
		OccupancyRate:  snap.OccupancyRate,
		AnomalyCount:   len(snap.Anomalies),
	}
}

type CombinationResponse struct {
	ID               uint `json:"id"`
	RestaurantID     uint `json:"restaurant_id"`
	PrimaryTableID   uint `json:"primary_table_id"`
	SecondaryTableID uint `json:"secondary_table_id"`
	CombinedCapacity int  `json:"combined_capacity"`
}

func ToCombinationResponse(c *models.TableCombination) CombinationResponse {
	return CombinationResponse{
		ID:               c.ID,
		RestaurantID:     c.RestaurantID,
		PrimaryTableID:   c.PrimaryTableID,
		SecondaryTableID: c.SecondaryTableID,
		CombinedCapacity: c.CombinedCapacity,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}
