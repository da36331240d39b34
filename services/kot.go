package services

import "github.com/restohub/restopos/models"

// QtyChange is a line whose quantity changed between two revisions.
type QtyChange struct {
	Item        models.OrderItem
	OldQuantity int
}

// ItemDelta is the kitchen-relevant difference between two item lists.
type ItemDelta struct {
	Added   []models.OrderItem
	Removed []models.OrderItem
	Changed []QtyChange
}

func (d ItemDelta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

type itemKey struct {
	itemID   uint
	unitName string
}

// DiffItems compares two item lists keyed by (item, unit). Unmatched
// new lines are added, unmatched old lines removed, and matched lines
// with a different quantity carry both quantities. Unchanged lines are
// dropped so the kitchen never re-receives them.
func DiffItems(oldItems, newItems []models.OrderItem) ItemDelta {
	oldByKey := make(map[itemKey]models.OrderItem, len(oldItems))
	for _, it := range oldItems {
		oldByKey[itemKey{it.ItemID, it.UnitName}] = it
	}

	var delta ItemDelta
	seen := make(map[itemKey]bool, len(newItems))
	for _, it := range newItems {
		key := itemKey{it.ItemID, it.UnitName}
		seen[key] = true
		old, exists := oldByKey[key]
		if !exists {
			delta.Added = append(delta.Added, it)
			continue
		}
		if old.Quantity != it.Quantity {
			delta.Changed = append(delta.Changed, QtyChange{Item: it, OldQuantity: old.Quantity})
		}
	}

	for _, it := range oldItems {
		if !seen[itemKey{it.ItemID, it.UnitName}] {
			delta.Removed = append(delta.Removed, it)
		}
	}
	return delta
}

// BuildNewKOT lists every line of a freshly created order.
func BuildNewKOT(order *models.Order, tableName string, p Principal) *models.KOT {
	kot := baseKOT(order, tableName, models.KOTNew, p)
	for _, it := range order.Items {
		kot.Items = append(kot.Items, models.KOTItem{
			ItemID:     it.ItemID,
			Name:       it.ItemName,
			UnitName:   it.UnitName,
			Quantity:   it.Quantity,
			ChangeType: models.KOTItemAdded,
		})
	}
	return kot
}

// BuildUpdateKOT lists only the diffed lines, tagged by change type.
func BuildUpdateKOT(order *models.Order, tableName string, delta ItemDelta, p Principal) *models.KOT {
	kot := baseKOT(order, tableName, models.KOTUpdate, p)
	for _, it := range delta.Added {
		kot.Items = append(kot.Items, models.KOTItem{
			ItemID:     it.ItemID,
			Name:       it.ItemName,
			UnitName:   it.UnitName,
			Quantity:   it.Quantity,
			ChangeType: models.KOTItemAdded,
		})
	}
	for _, it := range delta.Removed {
		kot.Items = append(kot.Items, models.KOTItem{
			ItemID:     it.ItemID,
			Name:       it.ItemName,
			UnitName:   it.UnitName,
			Quantity:   it.Quantity,
			ChangeType: models.KOTItemVoided,
		})
	}
	for _, ch := range delta.Changed {
		old := ch.OldQuantity
		kot.Items = append(kot.Items, models.KOTItem{
			ItemID:      ch.Item.ItemID,
			Name:        ch.Item.ItemName,
			UnitName:    ch.Item.UnitName,
			Quantity:    ch.Item.Quantity,
			OldQuantity: &old,
			ChangeType:  models.KOTItemUpdated,
		})
	}
	return kot
}

// BuildVoidKOT lists every line of a cancelled order tagged CANCEL.
func BuildVoidKOT(order *models.Order, tableName string, p Principal) *models.KOT {
	kot := baseKOT(order, tableName, models.KOTVoid, p)
	for _, it := range order.Items {
		kot.Items = append(kot.Items, models.KOTItem{
			ItemID:     it.ItemID,
			Name:       it.ItemName,
			UnitName:   it.UnitName,
			Quantity:   it.Quantity,
			ChangeType: models.KOTItemCancel,
		})
	}
	return kot
}

func baseKOT(order *models.Order, tableName, typ string, p Principal) *models.KOT {
	return &models.KOT{
		RestaurantID:  order.RestaurantID,
		OrderID:       order.ID,
		TableID:       order.TableID,
		TableName:     tableName,
		Type:          typ,
		Note:          order.Note,
		CreatedBy:     p.UserID,
		CreatedByRole: p.Role,
	}
}
