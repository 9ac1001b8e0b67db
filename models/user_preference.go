package models

type UserPreference struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	UserID              uint    `gorm:"not null;index" json:"user_id"`
	User                User    `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PreferredCuisine    *string `gorm:"type:varchar(100)" json:"preferred_cuisine"`
	DietaryRestrictions *string `gorm:"type:varchar(200)" json:"dietary_restrictions"`
	AmbiancePreference  *string `gorm:"type:varchar(100)" json:"ambiance_preference"`
}
