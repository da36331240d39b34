package models

import "time"

const (
	KOTNew    = "NEW"
	KOTUpdate = "UPDATE"
	KOTVoid   = "VOID"
)

const (
	KOTItemAdded   = "ADDED"
	KOTItemVoided  = "VOIDED"
	KOTItemUpdated = "UPDATED"
	KOTItemCancel  = "CANCEL"
)

// KOT is an immutable kitchen order ticket, created once per meaningful
// order mutation and consumed by the printer.
type KOT struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RestaurantID  uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	OrderID       uint       `gorm:"not null;index" json:"order_id"`
	Order         Order      `gorm:"foreignKey:OrderID" json:"-"`
	TableID       *uint      `json:"table_id,omitempty"`
	TableName     string     `gorm:"type:varchar(100)" json:"table_name"`
	Type          string     `gorm:"type:varchar(10);not null" json:"type"`
	Note          string     `gorm:"type:text" json:"note,omitempty"`
	Items         []KOTItem  `gorm:"foreignKey:KOTID" json:"items"`
	CreatedBy     uint       `json:"created_by"`
	CreatedByRole string     `gorm:"type:varchar(50)" json:"created_by_role"`
	CreatedAt     time.Time  `json:"created_at"`
}

type KOTItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	KOTID       uint   `gorm:"not null;index" json:"kot_id"`
	ItemID      uint   `json:"item_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	UnitName    string `gorm:"type:varchar(50);not null" json:"unit_name"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	OldQuantity *int   `json:"old_quantity,omitempty"`
	ChangeType  string `gorm:"type:varchar(20);not null" json:"change_type"`
}
