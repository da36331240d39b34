package services

import (
	"fmt"

	"github.com/restohub/restopos/models"
	"gorm.io/gorm"
)

// NextOrderNumber issues the next order number for a restaurant,
// starting at 1. It must run inside the order-creation transaction:
// the UPDATE takes a row lock on the counter, so concurrent creations
// serialize and never share a number. If the counter cannot be
// advanced, order creation is aborted.
func NextOrderNumber(tx *gorm.DB, restaurantID uint) (int64, error) {
	res := tx.Model(&models.OrderCounter{}).
		Where("restaurant_id = ?", restaurantID).
		Update("seq", gorm.Expr("seq + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("increment order counter: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		counter := models.OrderCounter{RestaurantID: restaurantID, Seq: 1}
		if err := tx.Create(&counter).Error; err == nil {
			return 1, nil
		}
		// Lost the race creating the first counter row; the row exists
		// now, so advance it.
		res = tx.Model(&models.OrderCounter{}).
			Where("restaurant_id = ?", restaurantID).
			Update("seq", gorm.Expr("seq + 1"))
		if res.Error != nil || res.RowsAffected == 0 {
			return 0, fmt.Errorf("increment order counter after create race: %w", res.Error)
		}
	}

	var counter models.OrderCounter
	if err := tx.Where("restaurant_id = ?", restaurantID).First(&counter).Error; err != nil {
		return 0, fmt.Errorf("read order counter: %w", err)
	}
	return counter.Seq, nil
}
