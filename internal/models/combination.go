package models

import "time"

// TableCombination declares a pairing of two combinable tables seated as one
// larger unit. CombinedCapacity is operator-declared and may differ from the
// arithmetic sum of the member capacities.
type TableCombination struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	RestaurantID     uint `gorm:"not null;index" json:"restaurant_id"`
	PrimaryTableID   uint `gorm:"not null;uniqueIndex:idx_combination_pair" json:"primary_table_id"`
	SecondaryTableID uint `gorm:"not null;uniqueIndex:idx_combination_pair" json:"secondary_table_id"`
	CombinedCapacity int  `gorm:"not null" json:"combined_capacity"`

	PrimaryTable   *Table `gorm:"foreignKey:PrimaryTableID" json:"primary_table,omitempty"`
	SecondaryTable *Table `gorm:"foreignKey:SecondaryTableID" json:"secondary_table,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
