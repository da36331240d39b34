package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the customer-facing record produced at checkout.
type Receipt struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RestaurantID  uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	OrderID       uint       `gorm:"not null;index" json:"order_id"`
	ReceiptNumber string     `gorm:"type:varchar(100);not null" json:"receipt_number"`

	ItemsTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"items_total"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	VatAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vat_amount"`
	DeliveryCharge decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"delivery_charge"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"paid_amount"`
	DueAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"due_amount"`
	PaymentStatus  string          `gorm:"type:varchar(20);not null" json:"payment_status"`
	PaymentMethod  string          `gorm:"type:varchar(50)" json:"payment_method"`
	CustomerName   string          `gorm:"type:varchar(255)" json:"customer_name"`

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReceiptItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ReceiptID uint            `gorm:"not null;index" json:"receipt_id"`
	ItemName  string          `gorm:"type:varchar(255);not null" json:"item_name"`
	UnitName  string          `gorm:"type:varchar(50);not null" json:"unit_name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
