package models

import "time"

type Table struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_tables_restaurant_number;index:idx_tables_restaurant_capacity" json:"restaurant_id"`
	TableNumber  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_tables_restaurant_number" json:"table_number"`
	Capacity     int       `gorm:"not null;index:idx_tables_restaurant_capacity" json:"capacity"`
	Location     *string   `gorm:"type:varchar(100)" json:"location,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// LocationOrEmpty saves nil checks at the scoring call sites.
func (t *Table) LocationOrEmpty() string {
	if t.Location == nil {
		return ""
	}
	return *t.Location
}
