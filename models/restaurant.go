package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultBookingDuration is applied wherever a restaurant has no explicit
// booking_duration configured.
const DefaultBookingDuration = 120 * time.Minute

type Restaurant struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(200);not null" json:"name"`
	Location     string         `gorm:"type:varchar(200);not null" json:"location"`
	Cuisine      string         `gorm:"type:varchar(100);not null" json:"cuisine"`
	Promo        *string        `gorm:"type:varchar(200)" json:"promo"`
	Lat          *float64       `json:"lat"`
	Lon          *float64       `json:"lon"`
	OpeningTime  *string        `gorm:"type:varchar(5)" json:"opening_time"`
	ClosingTime  *string        `gorm:"type:varchar(5)" json:"closing_time"`
	Capacity     int            `gorm:"default:50" json:"capacity"`
	AveragePrice *float64       `json:"average_price"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	Features     datatypes.JSON `json:"features"`

	// Minutes per booking; nil falls back to DefaultBookingDuration.
	BookingDuration *int `json:"booking_duration"`

	Images    []RestaurantImage `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"images"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SlotDuration resolves the configured booking duration for this restaurant.
func (r *Restaurant) SlotDuration() time.Duration {
	if r.BookingDuration == nil || *r.BookingDuration <= 0 {
		return DefaultBookingDuration
	}
	return time.Duration(*r.BookingDuration) * time.Minute
}

type RestaurantImage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RestaurantID uint   `gorm:"not null;index" json:"restaurant_id"`
	ImageURL     string `gorm:"type:varchar(300);not null" json:"image_url"`
}
