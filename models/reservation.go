package models

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusNoShow    ReservationStatus = "no_show"
)

// Valid reports whether s is one of the known reservation statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCompleted, ReservationStatusCancelled,
		ReservationStatusNoShow:
		return true
	}
	return false
}

// Terminal statuses accept no further modification.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusCompleted
}

// CountsAgainstAvailability reports whether a reservation in this status
// still holds its table. Cancelled and no-show reservations do not.
func (s ReservationStatus) CountsAgainstAvailability() bool {
	return s != ReservationStatusCancelled && s != ReservationStatusNoShow
}

type Reservation struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	RestaurantID     uint              `gorm:"not null;index:idx_reservations_restaurant_date" json:"restaurant_id"`
	TableID          uint              `gorm:"not null;index:idx_reservations_table_date" json:"table_id"`
	CustomerName     string            `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone    string            `gorm:"type:varchar(20);not null;index" json:"customer_phone"`
	CustomerEmail    *string           `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	PartySize        int               `gorm:"not null" json:"party_size"`
	ReservationDate  string            `gorm:"type:varchar(10);not null;index:idx_reservations_restaurant_date;index:idx_reservations_table_date" json:"reservation_date"`
	StartTime        string            `gorm:"type:varchar(8);not null;index:idx_reservations_table_date" json:"start_time"`
	EndTime          string            `gorm:"type:varchar(8);not null" json:"end_time"`
	Duration         int               `gorm:"not null" json:"duration"`
	Status           ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SpecialRequests  *string           `gorm:"type:text" json:"special_requests,omitempty"`
	Notes            *string           `gorm:"type:text" json:"notes,omitempty"`
	ConfirmationCode string            `gorm:"type:varchar(100)" json:"confirmation_code"`
	CreatedAt        time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null" json:"updated_at"`
}
