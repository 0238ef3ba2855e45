package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// money goes over the wire as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Order is immutable after creation except for Status.
type Order struct {
	ID            string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID  uint            `gorm:"not null;index:idx_orders_restaurant_phone,priority:1" json:"restaurantId"`
	Restaurant    *Restaurant     `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CustomerName  string          `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerPhone string          `gorm:"type:varchar(50);not null;index:idx_orders_restaurant_phone,priority:2" json:"customerPhone"`
	OrderType     OrderType       `gorm:"type:varchar(20);not null" json:"orderType"`
	PickupTime    *time.Time      `json:"pickupTime"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"items"`
	CreatedAt     time.Time       `gorm:"not null;precision:6;index" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns a UUIDv7. Ids increase with creation time within the
// process and break created_at ties when listing.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	o.ID = id.String()
	return nil
}

// ShortCode is the short reference printed on tickets and read out to
// customers. It is the random tail of the id; the head is a timestamp.
func (o *Order) ShortCode() string {
	if len(o.ID) < 8 {
		return o.ID
	}
	return o.ID[len(o.ID)-8:]
}
