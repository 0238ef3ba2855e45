package models

import "time"

// Admin is a dashboard account. Every admin belongs to exactly one restaurant,
// which becomes the scope of all its admin operations.
type Admin struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null" json:"-"`
	RestaurantID uint        `gorm:"not null;index" json:"restaurantId"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
