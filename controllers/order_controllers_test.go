package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/restohub/restopos/controllers"
	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/services"
	"github.com/restohub/restopos/utils"
)

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	t.Helper()
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

func seedMenu(t *testing.T, db *gorm.DB) (models.Restaurant, models.Table, models.Item) {
	t.Helper()

	restaurant := models.Restaurant{Name: "Test Restaurant"}
	require.NoError(t, db.Create(&restaurant).Error)
	area := models.Area{RestaurantID: restaurant.ID, Name: "Main Hall"}
	require.NoError(t, db.Create(&area).Error)
	table := models.Table{RestaurantID: restaurant.ID, AreaID: area.ID, Name: "T1", Capacity: 4, Status: models.TableAvailable}
	require.NoError(t, db.Create(&table).Error)
	category := models.Category{RestaurantID: restaurant.ID, Name: "Mains"}
	require.NoError(t, db.Create(&category).Error)

	price, _ := decimal.NewFromString("120")
	one, _ := decimal.NewFromString("1")
	item := models.Item{
		RestaurantID: restaurant.ID,
		CategoryID:   category.ID,
		Name:         "Beef Burger",
		IsAvailable:  true,
		Units:        []models.ItemUnit{{UnitName: "plate", Price: price, ConversionFactor: one}},
	}
	require.NoError(t, db.Create(&item).Error)
	return restaurant, table, item
}

// fakeAuth stands in for the JWT middleware so tests exercise the
// handlers directly.
func fakeAuth(restaurantID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("restaurant_id", restaurantID)
		c.Set("role", models.RoleStaff)
		c.Next()
	}
}

func setupOrderRouter(db *gorm.DB, restaurantID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	svc := services.NewOrderService(db, nil, nil)
	ctrl := controllers.NewOrderController(db, svc)

	auth := fakeAuth(restaurantID)
	r.POST("/orders", auth, ctrl.CreateOrder)
	r.GET("/orders", auth, ctrl.GetAllOrders)
	r.GET("/orders/:order_id", auth, ctrl.GetOrderByID)
	r.PATCH("/orders/:order_id/cancel", auth, ctrl.CancelOrder)
	r.PATCH("/orders/:order_id/checkout", auth, ctrl.CheckoutOrder)
	r.POST("/orders/checkout-bulk", auth, ctrl.BulkCheckout)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndFetchOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	restaurant, table, item := seedMenu(t, db)
	r := setupOrderRouter(db, restaurant.ID)

	w := doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"order_type": "dine-in",
		"table_id":   table.ID,
		"items": []map[string]interface{}{
			{"item_id": item.ID, "unit_name": "plate", "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "Order created", resp.Message)

	w = doJSON(t, r, http.MethodGet, "/orders/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/orders?status=active", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateOrderRejectsBadPayload(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	restaurant, _, item := seedMenu(t, db)
	r := setupOrderRouter(db, restaurant.ID)

	w := doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"order_type": "drive-thru",
		"items": []map[string]interface{}{
			{"item_id": item.ID, "unit_name": "plate", "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"order_type": "takeaway",
		"items":      []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutConflictOnDue(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	restaurant, table, item := seedMenu(t, db)
	r := setupOrderRouter(db, restaurant.ID)

	w := doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"order_type": "dine-in",
		"table_id":   table.ID,
		"items": []map[string]interface{}{
			{"item_id": item.ID, "unit_name": "plate", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/orders/1/checkout", map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/orders/1/checkout", map[string]interface{}{"force": true})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Checked-out orders cannot be cancelled.
	w = doJSON(t, r, http.MethodPatch, "/orders/1/cancel", map[string]interface{}{"reason": "late"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBulkCheckoutEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	restaurant, _, item := seedMenu(t, db)
	r := setupOrderRouter(db, restaurant.ID)

	w := doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"order_type":     "takeaway",
		"payment_status": "Paid",
		"items": []map[string]interface{}{
			{"item_id": item.ID, "unit_name": "plate", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/orders/checkout-bulk", map[string]interface{}{
		"order_ids": []uint{1, 999},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			OK      int `json:"ok"`
			Failed  int `json:"failed"`
			Results []struct {
				OrderID uint `json:"order_id"`
				OK      bool `json:"ok"`
			} `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.OK)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Results, 2)
}

func TestOrderNotFoundAcrossTenants(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	restaurant, table, item := seedMenu(t, db)
	r := setupOrderRouter(db, restaurant.ID)

	w := doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"order_type": "dine-in",
		"table_id":   table.ID,
		"items": []map[string]interface{}{
			{"item_id": item.ID, "unit_name": "plate", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	other := setupOrderRouter(db, restaurant.ID+100)
	w = doJSON(t, other, http.MethodGet, "/orders/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
