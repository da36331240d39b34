package services

import (
	"errors"
	"fmt"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryLedger is the single code path for stock mutation. Order
// create/update/cancel/checkout and the manual adjustment endpoint all
// go through it, so the non-negative invariant lives in one place.
type InventoryLedger struct {
	publisher Publisher
}

func NewInventoryLedger(publisher Publisher) *InventoryLedger {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &InventoryLedger{publisher: publisher}
}

// Decrement subtracts each line's quantity, converted to the item's
// base stock unit, from that item's counter. Items without a stock row
// (or with auto-decrement disabled) are skipped: stock tracking is
// optional per item. The counter clamps at zero.
func (l *InventoryLedger) Decrement(tx *gorm.DB, restaurantID uint, items []models.OrderItem) error {
	for _, it := range items {
		qty, ok, err := convertedQty(tx, it)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		res := tx.Model(&models.ItemStock{}).
			Where("restaurant_id = ? AND item_id = ? AND auto_decrement = ?", restaurantID, it.ItemID, true).
			Update("quantity", gorm.Expr("CASE WHEN quantity > ? THEN quantity - ? ELSE 0 END", qty, qty))
		if res.Error != nil {
			return fmt.Errorf("decrement stock for item %d: %w", it.ItemID, res.Error)
		}
		if res.RowsAffected == 0 {
			continue
		}

		l.checkThreshold(tx, restaurantID, it.ItemID)
	}
	return nil
}

// Restore is the inverse of Decrement, used when a stock-affecting
// order is cancelled or its items are replaced.
func (l *InventoryLedger) Restore(tx *gorm.DB, restaurantID uint, items []models.OrderItem) error {
	for _, it := range items {
		qty, ok, err := convertedQty(tx, it)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		res := tx.Model(&models.ItemStock{}).
			Where("restaurant_id = ? AND item_id = ? AND auto_decrement = ?", restaurantID, it.ItemID, true).
			Update("quantity", gorm.Expr("quantity + ?", qty))
		if res.Error != nil {
			return fmt.Errorf("restore stock for item %d: %w", it.ItemID, res.Error)
		}
	}
	return nil
}

// Adjust applies a manual delta from the stock endpoint. Negative
// deltas clamp at zero like order-driven decrements.
func (l *InventoryLedger) Adjust(tx *gorm.DB, restaurantID, itemID uint, delta decimal.Decimal, updatedBy uint) (*models.ItemStock, error) {
	var stock models.ItemStock
	err := tx.Where("restaurant_id = ? AND item_id = ?", restaurantID, itemID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stock = models.ItemStock{
			RestaurantID: restaurantID,
			ItemID:       itemID,
			Quantity:     decimal.Zero,
			UpdatedBy:    &updatedBy,
		}
		if err := tx.Create(&stock).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	next := stock.Quantity.Add(delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	if err := tx.Model(&stock).Updates(map[string]interface{}{
		"quantity":   next,
		"updated_by": updatedBy,
	}).Error; err != nil {
		return nil, err
	}
	stock.Quantity = next
	return &stock, nil
}

// convertedQty resolves the line's unit conversion factor and returns
// the quantity expressed in the item's base stock unit. ok is false
// when the unit is unknown, mirroring the skip-on-missing contract.
func convertedQty(tx *gorm.DB, it models.OrderItem) (decimal.Decimal, bool, error) {
	var unit models.ItemUnit
	err := tx.Where("item_id = ? AND unit_name = ?", it.ItemID, it.UnitName).First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("resolve unit %q for item %d: %w", it.UnitName, it.ItemID, err)
	}

	factor := unit.ConversionFactor
	if factor.IsZero() {
		factor = decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(it.Quantity)).Mul(factor), true, nil
}

func (l *InventoryLedger) checkThreshold(tx *gorm.DB, restaurantID, itemID uint) {
	var stock models.ItemStock
	if err := tx.Where("restaurant_id = ? AND item_id = ?", restaurantID, itemID).First(&stock).Error; err != nil {
		return
	}
	if stock.Quantity.LessThanOrEqual(stock.AlertThreshold) {
		utils.ErrorLogger.Printf("stock low: restaurant=%d item=%d quantity=%s", restaurantID, itemID, stock.Quantity)
		l.publisher.Publish(restaurantID, EventStockLow, stock)
	}
}
