package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a priced order line. UnitPrice and ItemName are copied from the
// item when the order is placed.
type OrderItem struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	OrderID    string              `gorm:"type:varchar(36);not null;index" json:"orderId"`
	ItemID     uint                `gorm:"not null;index" json:"itemId"`
	Item       *Item               `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"item,omitempty"`
	ItemName   string              `gorm:"type:varchar(255);not null" json:"itemName"`
	Quantity   int                 `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	Notes      *string             `gorm:"type:text" json:"notes"`
	Modifiers  []OrderItemModifier `gorm:"foreignKey:OrderItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"modifiers"`
	CreatedAt  time.Time           `gorm:"not null" json:"createdAt"`
}

type OrderItemModifier struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OrderItemID      uint            `gorm:"not null;index" json:"orderItemId"`
	ModifierOptionID uint            `gorm:"not null;index" json:"modifierOptionId"`
	ModifierOption   *ModifierOption `gorm:"foreignKey:ModifierOptionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"modifierOption,omitempty"`
	OptionName       string          `gorm:"type:varchar(100);not null" json:"optionName"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	CreatedAt        time.Time       `gorm:"not null" json:"createdAt"`
}
