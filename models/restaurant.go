package models

import "time"

type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	OpeningTime string    `gorm:"type:varchar(8);not null" json:"opening_time"`
	ClosingTime string    `gorm:"type:varchar(8);not null" json:"closing_time"`
	TotalTables int       `gorm:"not null" json:"total_tables"`
	Address     *string   `gorm:"type:text" json:"address,omitempty"`
	Phone       *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email       *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	Tables      []Table   `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"tables,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
