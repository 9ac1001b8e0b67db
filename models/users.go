package models

import "time"

type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"type:varchar(100);not null" json:"name"`
	Email         string `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password      string `gorm:"type:varchar(200);not null" json:"-"`
	IsAdmin       bool   `gorm:"default:false" json:"is_admin"`
	LoyaltyPoints int    `gorm:"default:0" json:"loyalty_points"`
	LoyaltyTier   string `gorm:"type:varchar(50);default:'Basic'" json:"loyalty_tier"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
