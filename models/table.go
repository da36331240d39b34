package models

import "time"

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
)

// Table is occupied iff CurrentOrderID points at an active order.
type Table struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RestaurantID   uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant     Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	AreaID         uint       `gorm:"not null" json:"area_id"`
	Area           Area       `gorm:"foreignKey:AreaID" json:"area"`
	Name           string     `gorm:"type:varchar(100);not null" json:"name"`
	Capacity       int        `gorm:"not null;default:4" json:"capacity"`
	Status         string     `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CurrentOrderID *uint      `json:"current_order_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
