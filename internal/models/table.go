package models

import "time"

type TableType string

const (
	TableTypeStandard TableType = "standard"
	TableTypeBooth    TableType = "booth"
	TableTypeWindow   TableType = "window"
	TableTypePatio    TableType = "patio"
	TableTypeBar      TableType = "bar"
	TableTypePrivate  TableType = "private"
)

type TableShape string

const (
	ShapeRectangle TableShape = "rectangle"
	ShapeCircle    TableShape = "circle"
)

type Table struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RestaurantID uint   `gorm:"not null;index;uniqueIndex:idx_table_number" json:"restaurant_id"`
	TableNumber  string `gorm:"not null;uniqueIndex:idx_table_number" json:"table_number"`

	MinCapacity int `gorm:"not null" json:"min_capacity"`
	MaxCapacity int `gorm:"not null" json:"max_capacity"`

	// Geometry matters only to floor-plan rendering, never to occupancy.
	PosX     float64    `gorm:"not null;default:0" json:"pos_x"`
	PosY     float64    `gorm:"not null;default:0" json:"pos_y"`
	Width    float64    `gorm:"not null;default:0" json:"width"`
	Height   float64    `gorm:"not null;default:0" json:"height"`
	Shape    TableShape `gorm:"type:varchar(20);not null;default:'rectangle'" json:"shape"`
	Rotation float64    `gorm:"not null;default:0" json:"rotation"`

	TableType    TableType `gorm:"type:varchar(20);not null;default:'standard'" json:"table_type"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	IsCombinable bool      `gorm:"not null;default:false" json:"is_combinable"`

	CombinableWith []Table `gorm:"many2many:table_combinable_links;joinForeignKey:TableID;joinReferences:PartnerID" json:"combinable_with,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
