package models

import "time"

// OrderCounter holds the last order number issued for a restaurant.
// One row per restaurant, incremented atomically on order creation.
type OrderCounter struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;uniqueIndex" json:"restaurant_id"`
	Seq          int64     `gorm:"not null;default:0" json:"seq"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
