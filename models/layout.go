package models

import "time"

const (
	LayoutTypeTable     = "table"
	LayoutTypeFurniture = "furniture"
)

// Layout is a single placed item (table or furniture) in a restaurant's
// floor plan. Coordinates are percentages of the canvas; only the [20,80]
// band of the canvas is used for tables. Furniture carries width/height/color
// and never participates in booking.
type Layout struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Type         string     `gorm:"type:varchar(20);not null;default:'table'" json:"type"`
	TableNumber  *int       `json:"table_number,omitempty"`
	XCoordinate  float64    `gorm:"column:x_coordinate;not null" json:"x"`
	YCoordinate  float64    `gorm:"column:y_coordinate;not null" json:"y"`
	Shape        *string    `gorm:"type:varchar(50)" json:"shape,omitempty"`
	Capacity     *int       `json:"capacity,omitempty"`
	TableType    *string    `gorm:"type:varchar(50)" json:"table_type,omitempty"`
	Name         *string    `gorm:"type:varchar(100)" json:"name,omitempty"`
	Width        *float64   `json:"width,omitempty"`
	Height       *float64   `json:"height,omitempty"`
	Color        *string    `gorm:"type:varchar(20)" json:"color,omitempty"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

// IsTable reports whether this slot can be booked.
func (l *Layout) IsTable() bool {
	return l.Type == LayoutTypeTable
}
