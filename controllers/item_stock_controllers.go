package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/services"
	"github.com/restohub/restopos/utils"
)

// ItemStockController routes manual stock adjustments through the same
// inventory ledger the order lifecycle uses.
type ItemStockController struct {
	DB     *gorm.DB
	Ledger *services.InventoryLedger
}

func NewItemStockController(db *gorm.DB, ledger *services.InventoryLedger) *ItemStockController {
	return &ItemStockController{DB: db, Ledger: ledger}
}

func (sc *ItemStockController) GetItemStocks(c *gin.Context) {
	p := principalFrom(c)

	query := sc.DB.Preload("Item").Preload("Item.Units").
		Where("restaurant_id = ?", p.RestaurantID).
		Order("updated_at desc")
	if itemID := c.Query("item_id"); itemID != "" {
		query = query.Where("item_id = ?", itemID)
	}

	var stocks []models.ItemStock
	if err := query.Find(&stocks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of stocks", stocks)
}

func (sc *ItemStockController) GetItemStockByID(c *gin.Context) {
	p := principalFrom(c)

	var stock models.ItemStock
	if err := sc.DB.Preload("Item").Preload("Item.Units").
		Where("id = ? AND restaurant_id = ?", c.Param("stock_id"), p.RestaurantID).
		First(&stock).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("stock not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock detail", stock)
}

// AdjustItemStock -> POST /item-stocks, applies a signed delta.
func (sc *ItemStockController) AdjustItemStock(c *gin.Context) {
	p := principalFrom(c)

	var body struct {
		ItemID uint            `json:"item_id" binding:"required"`
		Delta  decimal.Decimal `json:"delta"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.Item
	if err := sc.DB.Where("id = ? AND restaurant_id = ?", body.ItemID, p.RestaurantID).
		First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not found"))
		return
	}

	var stock *models.ItemStock
	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		stock, err = sc.Ledger.Adjust(tx, p.RestaurantID, item.ID, body.Delta, p.UserID)
		return err
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Stock updated", stock)
}

// UpdateItemStock -> PATCH /item-stocks/:stock_id, sets absolute
// quantity and tracking options.
func (sc *ItemStockController) UpdateItemStock(c *gin.Context) {
	p := principalFrom(c)

	var stock models.ItemStock
	if err := sc.DB.Where("id = ? AND restaurant_id = ?", c.Param("stock_id"), p.RestaurantID).
		First(&stock).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("stock not found"))
		return
	}

	var body struct {
		Quantity       *decimal.Decimal `json:"quantity"`
		AutoDecrement  *bool            `json:"auto_decrement"`
		AlertThreshold *decimal.Decimal `json:"alert_threshold"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Quantity != nil {
		if body.Quantity.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("quantity must be >= 0"))
			return
		}
		stock.Quantity = *body.Quantity
	}
	if body.AutoDecrement != nil {
		stock.AutoDecrement = *body.AutoDecrement
	}
	if body.AlertThreshold != nil {
		stock.AlertThreshold = *body.AlertThreshold
	}
	stock.UpdatedBy = &p.UserID

	if err := sc.DB.Save(&stock).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock updated", stock)
}

func (sc *ItemStockController) DeleteItemStock(c *gin.Context) {
	p := principalFrom(c)

	res := sc.DB.Where("id = ? AND restaurant_id = ?", c.Param("stock_id"), p.RestaurantID).
		Delete(&models.ItemStock{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("stock not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock deleted", nil)
}
