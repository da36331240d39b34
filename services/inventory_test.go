package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Area{},
		&models.Table{},
		&models.Category{},
		&models.Item{},
		&models.ItemUnit{},
		&models.ItemStock{},
		&models.OrderCounter{},
		&models.Order{},
		&models.OrderItem{},
		&models.KOT{},
		&models.KOTItem{},
		&models.Receipt{},
		&models.ReceiptItem{},
	)
	require.NoError(t, err)
	return db
}

// seedDrink creates a drink sold by the glass (0.25 of a bottle) and by
// the bottle, with stock tracked in bottles.
func seedDrink(t *testing.T, db *gorm.DB, stockQty string) models.Item {
	t.Helper()

	restaurant := models.Restaurant{Name: "Test Cafe"}
	require.NoError(t, db.FirstOrCreate(&restaurant, models.Restaurant{Name: "Test Cafe"}).Error)

	category := models.Category{RestaurantID: restaurant.ID, Name: "Drinks"}
	require.NoError(t, db.Create(&category).Error)

	item := models.Item{
		RestaurantID: restaurant.ID,
		CategoryID:   category.ID,
		Name:         "Borhani",
		IsAvailable:  true,
		Units: []models.ItemUnit{
			{UnitName: "glass", Price: dec("30"), ConversionFactor: dec("0.25")},
			{UnitName: "bottle", Price: dec("100"), ConversionFactor: dec("1")},
		},
	}
	require.NoError(t, db.Create(&item).Error)

	stock := models.ItemStock{
		RestaurantID:  restaurant.ID,
		ItemID:        item.ID,
		Quantity:      dec(stockQty),
		AutoDecrement: true,
	}
	require.NoError(t, db.Create(&stock).Error)
	return item
}

func stockQty(t *testing.T, db *gorm.DB, itemID uint) decimal.Decimal {
	t.Helper()
	var stock models.ItemStock
	require.NoError(t, db.Where("item_id = ?", itemID).First(&stock).Error)
	return stock.Quantity
}

func TestDecrementConvertsUnits(t *testing.T) {
	db := newTestDB(t)
	item := seedDrink(t, db, "10")
	ledger := NewInventoryLedger(nil)

	// 4 glasses at 0.25 each = 1 bottle.
	err := ledger.Decrement(db, item.RestaurantID, []models.OrderItem{
		{ItemID: item.ID, UnitName: "glass", Quantity: 4},
	})
	assert.NoError(t, err)
	assert.True(t, stockQty(t, db, item.ID).Equal(dec("9")), "got %s", stockQty(t, db, item.ID))
}

func TestDecrementClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	item := seedDrink(t, db, "2")
	ledger := NewInventoryLedger(nil)

	err := ledger.Decrement(db, item.RestaurantID, []models.OrderItem{
		{ItemID: item.ID, UnitName: "bottle", Quantity: 5},
	})
	assert.NoError(t, err)
	assert.True(t, stockQty(t, db, item.ID).IsZero())
}

func TestDecrementSkipsUntrackedItems(t *testing.T) {
	db := newTestDB(t)
	item := seedDrink(t, db, "10")
	ledger := NewInventoryLedger(nil)

	// Unknown unit and unknown item are both silently skipped.
	err := ledger.Decrement(db, item.RestaurantID, []models.OrderItem{
		{ItemID: item.ID, UnitName: "barrel", Quantity: 1},
		{ItemID: 9999, UnitName: "plate", Quantity: 1},
	})
	assert.NoError(t, err)
	assert.True(t, stockQty(t, db, item.ID).Equal(dec("10")))
}

func TestDecrementRespectsAutoDecrementFlag(t *testing.T) {
	db := newTestDB(t)
	item := seedDrink(t, db, "10")
	require.NoError(t, db.Model(&models.ItemStock{}).
		Where("item_id = ?", item.ID).
		Update("auto_decrement", false).Error)

	ledger := NewInventoryLedger(nil)
	err := ledger.Decrement(db, item.RestaurantID, []models.OrderItem{
		{ItemID: item.ID, UnitName: "bottle", Quantity: 3},
	})
	assert.NoError(t, err)
	assert.True(t, stockQty(t, db, item.ID).Equal(dec("10")))
}

func TestRestoreRoundTrip(t *testing.T) {
	db := newTestDB(t)
	item := seedDrink(t, db, "10")
	ledger := NewInventoryLedger(nil)

	items := []models.OrderItem{{ItemID: item.ID, UnitName: "glass", Quantity: 2}}
	require.NoError(t, ledger.Decrement(db, item.RestaurantID, items))
	assert.True(t, stockQty(t, db, item.ID).Equal(dec("9.5")))

	require.NoError(t, ledger.Restore(db, item.RestaurantID, items))
	assert.True(t, stockQty(t, db, item.ID).Equal(dec("10")))
}

func TestAdjustCreatesRowAndClamps(t *testing.T) {
	db := newTestDB(t)
	item := seedDrink(t, db, "5")
	require.NoError(t, db.Where("item_id = ?", item.ID).Delete(&models.ItemStock{}).Error)

	ledger := NewInventoryLedger(nil)

	stock, err := ledger.Adjust(db, item.RestaurantID, item.ID, dec("12"), 1)
	assert.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec("12")))

	stock, err = ledger.Adjust(db, item.RestaurantID, item.ID, dec("-20"), 1)
	assert.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
}

func TestStockLowEventOnThreshold(t *testing.T) {
	db := newTestDB(t)
	item := seedDrink(t, db, "3")
	require.NoError(t, db.Model(&models.ItemStock{}).
		Where("item_id = ?", item.ID).
		Update("alert_threshold", dec("2.5")).Error)

	pub := &recordingPublisher{}
	ledger := NewInventoryLedger(pub)

	err := ledger.Decrement(db, item.RestaurantID, []models.OrderItem{
		{ItemID: item.ID, UnitName: "bottle", Quantity: 1},
	})
	assert.NoError(t, err)
	assert.Contains(t, pub.events, EventStockLow)
}

type recordingPublisher struct {
	events []string
}

func (r *recordingPublisher) Publish(_ uint, event string, _ interface{}) {
	r.events = append(r.events, event)
}
