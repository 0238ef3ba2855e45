package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a sellable menu entry. Its price is read at order time and copied
// onto the order line, so later edits never touch placed orders.
type Item struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CategoryID   uint            `gorm:"not null;index" json:"categoryId"`
	Category     *Category       `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	NameAr       *string         `gorm:"type:varchar(255)" json:"nameAr"`
	Description  *string         `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL     *string         `gorm:"type:varchar(255)" json:"imageUrl"`
	IsAvailable  bool            `gorm:"not null" json:"isAvailable"`
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	Modifiers    []Modifier      `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"modifiers,omitempty"`
	CreatedAt    time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updatedAt"`
}
