package models

import "time"

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCanceled  = "canceled"
	BookingStatusCompleted = "completed"
)

type Booking struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	UserID           uint               `gorm:"not null;index" json:"user_id"`
	User             User               `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	RestaurantID     uint               `gorm:"not null;index" json:"restaurant_id"`
	Restaurant       Restaurant         `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	LayoutID         uint               `gorm:"not null;index" json:"layout_id"`
	Layout           Layout             `gorm:"foreignKey:LayoutID;references:ID" json:"-"`
	Date             time.Time          `gorm:"not null;index" json:"date"`
	NumGuests        int                `gorm:"default:1" json:"num_guests"`
	SpecialRequests  *string            `gorm:"type:varchar(300)" json:"special_requests"`
	Status           string             `gorm:"type:varchar(50);not null;default:'confirmed'" json:"status"`
	ConfirmationCode string             `gorm:"type:varchar(36)" json:"confirmation_code"`
	MenuOrders       []BookingMenuOrder `gorm:"foreignKey:BookingID" json:"menu_orders"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// Occupies reports whether this booking's occupancy interval intersects
// [start, start+duration). Intervals are half-open, so a booking ending
// exactly when another starts does not collide.
func (b *Booking) Occupies(start time.Time, duration time.Duration) bool {
	end := start.Add(duration)
	bookingEnd := b.Date.Add(duration)
	return b.Date.Before(end) && bookingEnd.After(start)
}

type BookingMenuOrder struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BookingID  uint     `gorm:"not null;index" json:"booking_id"`
	Booking    Booking  `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity   int      `gorm:"not null;default:1" json:"quantity"`
}
