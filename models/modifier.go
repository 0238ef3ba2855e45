package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ModifierType string

const (
	ModifierSize       ModifierType = "SIZE"
	ModifierSauce      ModifierType = "SAUCE"
	ModifierSupplement ModifierType = "SUPPLEMENT"
	ModifierDrink      ModifierType = "DRINK"
	ModifierCooking    ModifierType = "COOKING"
	ModifierNote       ModifierType = "NOTE"
)

// Modifier is a customization axis of an item (size, sauce, ...).
type Modifier struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	ItemID       uint             `gorm:"not null;index" json:"itemId"`
	Name         string           `gorm:"type:varchar(100);not null" json:"name"`
	NameAr       *string          `gorm:"type:varchar(100)" json:"nameAr"`
	Type         ModifierType     `gorm:"type:varchar(20);not null" json:"type"`
	IsRequired   bool             `gorm:"not null" json:"isRequired"`
	DisplayOrder int              `gorm:"not null;default:0" json:"displayOrder"`
	Options      []ModifierOption `gorm:"foreignKey:ModifierID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"options,omitempty"`
	CreatedAt    time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time        `gorm:"not null" json:"updatedAt"`
}

// ModifierOption is one selectable value of a modifier. Price is a delta
// added to the item's unit price and may be zero.
type ModifierOption struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ModifierID   uint            `gorm:"not null;index" json:"modifierId"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	NameAr       *string         `gorm:"type:varchar(100)" json:"nameAr"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable  bool            `gorm:"not null" json:"isAvailable"`
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	CreatedAt    time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updatedAt"`
}
