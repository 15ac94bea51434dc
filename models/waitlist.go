package models

import "time"

type WaitlistStatus string

const (
	WaitlistStatusWaiting   WaitlistStatus = "waiting"
	WaitlistStatusNotified  WaitlistStatus = "notified"
	WaitlistStatusSeated    WaitlistStatus = "seated"
	WaitlistStatusCancelled WaitlistStatus = "cancelled"
	WaitlistStatusExpired   WaitlistStatus = "expired"
)

func (s WaitlistStatus) Valid() bool {
	switch s {
	case WaitlistStatusWaiting, WaitlistStatusNotified, WaitlistStatusSeated,
		WaitlistStatusCancelled, WaitlistStatusExpired:
		return true
	}
	return false
}

// LeavesQueue reports whether a transition into this status vacates the
// waiting line, which requires the remaining positions to be reflowed.
func (s WaitlistStatus) LeavesQueue() bool {
	return s == WaitlistStatusSeated || s == WaitlistStatusCancelled
}

type Waitlist struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	RestaurantID  uint           `gorm:"not null;index:idx_waitlists_restaurant_date_status" json:"restaurant_id"`
	CustomerName  string         `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string         `gorm:"type:varchar(20);not null;index" json:"customer_phone"`
	CustomerEmail *string        `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	PartySize     int            `gorm:"not null" json:"party_size"`
	WaitlistDate  string         `gorm:"type:varchar(10);not null;index:idx_waitlists_restaurant_date_status" json:"waitlist_date"`
	PreferredTime *string        `gorm:"type:varchar(8)" json:"preferred_time,omitempty"`
	Status        WaitlistStatus `gorm:"type:varchar(20);not null;default:'waiting';index:idx_waitlists_restaurant_date_status" json:"status"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	NotifiedAt    *time.Time     `json:"notified_at,omitempty"`
	Position      int            `gorm:"not null;default:0" json:"position"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}
