package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	OrderID  uint            `gorm:"not null;index" json:"order_id"`
	ItemID   uint            `gorm:"not null" json:"item_id"`
	ItemName string          `gorm:"type:varchar(255);not null" json:"item_name"`
	UnitName string          `gorm:"type:varchar(50);not null" json:"unit_name"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity int             `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal is price times quantity for this line.
func (oi OrderItem) Subtotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
