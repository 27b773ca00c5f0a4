package dto

import "time"

type TransitionRequest struct {
	Status  string `json:"status"`
	ActorID string `json:"actor_id"`
}

type AssignTablesRequest struct {
	TableIDs []uint `json:"table_ids"`
}

type CreateWaitlistRequest struct {
	RestaurantID     uint      `json:"restaurant_id"`
	UserID           *string   `json:"user_id,omitempty"`
	GuestName        string    `json:"guest_name,omitempty"`
	GuestPhone       string    `json:"guest_phone,omitempty"`
	GuestEmail       string    `json:"guest_email,omitempty"`
	DesiredDate      time.Time `json:"desired_date"`
	DesiredTimeRange string    `json:"desired_time_range"`
	PartySize        int       `json:"party_size"`
	TableType        string    `json:"table_type,omitempty"`
}

type ConvertWaitlistRequest struct {
	SlotTime   time.Time `json:"slot_time"`
	TableIDs   []uint    `json:"table_ids,omitempty"`
	AutoAssign bool      `json:"auto_assign,omitempty"`
	ActorID    string    `json:"actor_id"`
}

type CreateCombinationRequest struct {
	RestaurantID     uint `json:"restaurant_id"`
	PrimaryTableID   uint `json:"primary_table_id"`
	SecondaryTableID uint `json:"secondary_table_id"`
	CombinedCapacity int  `json:"combined_capacity"`
}
