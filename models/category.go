package models

import "time"

type Category struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RestaurantID uint        `gorm:"not null;index" json:"restaurantId"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name         string      `gorm:"type:varchar(100);not null" json:"name"`
	NameAr       *string     `gorm:"type:varchar(100)" json:"nameAr"`
	ImageURL     *string     `gorm:"type:varchar(255)" json:"imageUrl"`
	DisplayOrder int         `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool        `gorm:"not null" json:"isActive"`
	Items        []Item      `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
	CreatedAt    time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updatedAt"`
}
