package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restohub/restopos/models"
)

func line(itemID uint, name, unit string, qty int) models.OrderItem {
	return models.OrderItem{ItemID: itemID, ItemName: name, UnitName: unit, Quantity: qty}
}

func TestDiffItemsIdenticalListsAreEmpty(t *testing.T) {
	items := []models.OrderItem{
		line(1, "Beef Burger", "plate", 2),
		line(2, "Cold Coffee", "glass", 1),
	}
	delta := DiffItems(items, items)
	assert.True(t, delta.Empty())
}

func TestDiffItemsAddRemoveChange(t *testing.T) {
	oldItems := []models.OrderItem{
		line(1, "Beef Burger", "plate", 2),
		line(2, "Cold Coffee", "glass", 1),
	}
	newItems := []models.OrderItem{
		line(1, "Beef Burger", "plate", 3), // changed
		line(3, "Fries", "plate", 1),       // added
	}

	delta := DiffItems(oldItems, newItems)
	assert.Len(t, delta.Added, 1)
	assert.Equal(t, uint(3), delta.Added[0].ItemID)
	assert.Len(t, delta.Removed, 1)
	assert.Equal(t, uint(2), delta.Removed[0].ItemID)
	assert.Len(t, delta.Changed, 1)
	assert.Equal(t, 2, delta.Changed[0].OldQuantity)
	assert.Equal(t, 3, delta.Changed[0].Item.Quantity)
}

func TestDiffItemsSameItemDifferentUnit(t *testing.T) {
	// The same item sold in two units is two independent kitchen lines.
	oldItems := []models.OrderItem{line(1, "Cold Coffee", "glass", 2)}
	newItems := []models.OrderItem{line(1, "Cold Coffee", "mug", 2)}

	delta := DiffItems(oldItems, newItems)
	assert.Len(t, delta.Added, 1)
	assert.Len(t, delta.Removed, 1)
	assert.Empty(t, delta.Changed)
}

func TestBuildUpdateKOTCarriesOldQuantity(t *testing.T) {
	order := &models.Order{RestaurantID: 1, OrderType: models.OrderTypeDineIn}
	p := Principal{UserID: 7, RestaurantID: 1, Role: models.RoleStaff}

	delta := DiffItems(
		[]models.OrderItem{line(1, "Beef Burger", "plate", 2)},
		[]models.OrderItem{line(1, "Beef Burger", "plate", 4)},
	)
	kot := BuildUpdateKOT(order, "T1", delta, p)

	assert.Equal(t, models.KOTUpdate, kot.Type)
	assert.Equal(t, "T1", kot.TableName)
	assert.Len(t, kot.Items, 1)
	assert.Equal(t, models.KOTItemUpdated, kot.Items[0].ChangeType)
	if assert.NotNil(t, kot.Items[0].OldQuantity) {
		assert.Equal(t, 2, *kot.Items[0].OldQuantity)
	}
	assert.Equal(t, 4, kot.Items[0].Quantity)
}

func TestBuildVoidKOTTagsEveryLineCancel(t *testing.T) {
	order := &models.Order{
		RestaurantID: 1,
		Items: []models.OrderItem{
			line(1, "Beef Burger", "plate", 2),
			line(2, "Cold Coffee", "glass", 1),
		},
	}
	kot := BuildVoidKOT(order, "T2", Principal{UserID: 1, Role: models.RoleManager})

	assert.Equal(t, models.KOTVoid, kot.Type)
	assert.Len(t, kot.Items, 2)
	for _, it := range kot.Items {
		assert.Equal(t, models.KOTItemCancel, it.ChangeType)
	}
}
