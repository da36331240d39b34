package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant is the tenant boundary. Every other row carries a
// RestaurantID and queries are always scoped by it.
type Restaurant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`

	DefaultVatPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"default_vat_percent"`
	DefaultDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"default_discount_percent"`
	Currency               string          `gorm:"type:varchar(10);not null;default:'BDT'" json:"currency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
