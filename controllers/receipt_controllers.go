package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/services"
	"github.com/restohub/restopos/utils"
)

type ReceiptController struct {
	DB      *gorm.DB
	Printer services.TicketPrinter
}

func NewReceiptController(db *gorm.DB, printer services.TicketPrinter) *ReceiptController {
	return &ReceiptController{DB: db, Printer: printer}
}

func (rc *ReceiptController) GetAllReceipts(c *gin.Context) {
	p := principalFrom(c)

	query := rc.DB.Preload("Items").
		Where("restaurant_id = ?", p.RestaurantID).
		Order("created_at desc").
		Limit(200)
	if orderID := c.Query("order_id"); orderID != "" {
		query = query.Where("order_id = ?", orderID)
	}
	if from, to, err := dateRange(c); err == nil {
		query = query.Where("created_at >= ? AND created_at < ?", from, to)
	}

	var receipts []models.Receipt
	if err := query.Find(&receipts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of receipts", receipts)
}

func (rc *ReceiptController) GetReceiptByID(c *gin.Context) {
	p := principalFrom(c)

	var receipt models.Receipt
	if err := rc.DB.Preload("Items").
		Where("id = ? AND restaurant_id = ?", c.Param("receipt_id"), p.RestaurantID).
		First(&receipt).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("receipt not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt detail", receipt)
}

func (rc *ReceiptController) ReprintReceipt(c *gin.Context) {
	p := principalFrom(c)

	var receipt models.Receipt
	if err := rc.DB.Preload("Items").
		Where("id = ? AND restaurant_id = ?", c.Param("receipt_id"), p.RestaurantID).
		First(&receipt).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("receipt not found"))
		return
	}

	if rc.Printer == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("printer not configured"))
		return
	}
	if err := rc.Printer.PrintReceipt(&receipt); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt sent to printer", gin.H{"receipt_id": receipt.ID})
}

// dateRange parses ?from=YYYY-MM-DD&to=YYYY-MM-DD. Defaults to the
// last 30 days; `to` is exclusive at next midnight.
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	const layout = "2006-01-02"
	now := time.Now()
	from := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
	to := now

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(layout, v)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(layout, v)
		if err != nil {
			return from, to, err
		}
		to = t.AddDate(0, 0, 1)
	}
	return from, to, nil
}
