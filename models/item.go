package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a sellable menu entry. An item is priced per unit; each unit
// carries a conversion factor relative to the item's base stock unit
// (e.g. "glass" = 0.25 of a "bottle").
type Item struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	CategoryID   uint       `gorm:"not null" json:"category_id"`
	Category     Category   `gorm:"foreignKey:CategoryID" json:"category"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	IsAvailable  bool       `gorm:"not null;default:true" json:"is_available"`
	ImagePath    string     `gorm:"type:varchar(255)" json:"image_path"`
	Units        []ItemUnit `gorm:"foreignKey:ItemID" json:"units"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ItemUnit struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ItemID           uint            `gorm:"not null;index" json:"item_id"`
	UnitName         string          `gorm:"type:varchar(50);not null" json:"unit_name"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ConversionFactor decimal.Decimal `gorm:"type:decimal(12,4);not null;default:1" json:"conversion_factor"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
