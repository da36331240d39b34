package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStock tracks the on-hand quantity of an item in its base unit.
// Quantity never goes below zero; the ledger clamps on decrement.
type ItemStock struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	RestaurantID   uint            `gorm:"not null;uniqueIndex:idx_stock_item_restaurant" json:"restaurant_id"`
	Restaurant     Restaurant      `gorm:"foreignKey:RestaurantID" json:"-"`
	ItemID         uint            `gorm:"not null;uniqueIndex:idx_stock_item_restaurant" json:"item_id"`
	Item           Item            `gorm:"foreignKey:ItemID" json:"item"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity"`
	AutoDecrement  bool            `gorm:"not null;default:true" json:"auto_decrement"`
	AlertThreshold decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"alert_threshold"`
	UpdatedBy      *uint           `json:"updated_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
