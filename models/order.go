package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeDelivery = "delivery"
)

const (
	OrderStatusActive     = "active"
	OrderStatusCancelled  = "cancelled"
	OrderStatusCheckedOut = "checkedout"
)

const (
	PaymentPaid   = "Paid"
	PaymentDue    = "Due"
	PaymentCredit = "Credit"
)

// Order is identified per restaurant by OrderNo, issued by the order
// counter. Money fields always satisfy
// finalAmount = itemsTotal - discount + vat + deliveryCharge and
// paidAmount + dueAmount = finalAmount once payment is applied.
type Order struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;uniqueIndex:idx_orders_restaurant_no" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	OrderNo      int64      `gorm:"not null;uniqueIndex:idx_orders_restaurant_no" json:"order_no"`

	OrderType string `gorm:"type:varchar(20);not null" json:"order_type"`
	TableID   *uint  `json:"table_id,omitempty"`
	Table     *Table `gorm:"foreignKey:TableID" json:"table,omitempty"`
	AreaID    *uint  `json:"area_id,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	ItemsTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"items_total"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	VatPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"vat_percent"`
	VatAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"vat_amount"`
	DeliveryCharge  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"delivery_charge"`
	FinalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"final_amount"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	DueAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"due_amount"`

	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'Due'" json:"payment_status"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method"`
	CashAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cash_amount"`
	OnlineAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"online_amount"`

	CustomerName string `gorm:"type:varchar(255)" json:"customer_name"`
	Note         string `gorm:"type:text" json:"note"`

	Status       string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CancelReason string     `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`
	CheckedOut   bool       `gorm:"not null;default:false" json:"checked_out"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`

	// StockApplied records that inventory was decremented for this order,
	// so retries and terminal transitions never double-apply stock.
	StockApplied bool `gorm:"not null;default:false" json:"stock_applied"`

	CreatedBy uint      `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) IsActive() bool {
	return o.Status == OrderStatusActive
}
