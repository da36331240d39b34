package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/services"
	"github.com/restohub/restopos/utils"
)

// KOTController reads the kitchen ticket log. Tickets are written by
// the order lifecycle only; this surface never mutates them.
type KOTController struct {
	DB      *gorm.DB
	Printer services.TicketPrinter
}

func NewKOTController(db *gorm.DB, printer services.TicketPrinter) *KOTController {
	return &KOTController{DB: db, Printer: printer}
}

func (kc *KOTController) GetAllKOTs(c *gin.Context) {
	p := principalFrom(c)

	query := kc.DB.Preload("Items").
		Where("restaurant_id = ?", p.RestaurantID).
		Order("created_at desc").
		Limit(200)
	if orderID := c.Query("order_id"); orderID != "" {
		query = query.Where("order_id = ?", orderID)
	}
	if kotType := c.Query("type"); kotType != "" {
		query = query.Where("type = ?", kotType)
	}

	var kots []models.KOT
	if err := query.Find(&kots).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of KOTs", kots)
}

func (kc *KOTController) GetKOTByID(c *gin.Context) {
	p := principalFrom(c)

	var kot models.KOT
	if err := kc.DB.Preload("Items").
		Where("id = ? AND restaurant_id = ?", c.Param("kot_id"), p.RestaurantID).
		First(&kot).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("kot not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "KOT detail", kot)
}

// ReprintKOT re-sends an existing ticket to the printer, e.g. when the
// kitchen copy is lost.
func (kc *KOTController) ReprintKOT(c *gin.Context) {
	p := principalFrom(c)

	var kot models.KOT
	if err := kc.DB.Preload("Items").
		Where("id = ? AND restaurant_id = ?", c.Param("kot_id"), p.RestaurantID).
		First(&kot).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("kot not found"))
		return
	}

	if kc.Printer == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("printer not configured"))
		return
	}
	if err := kc.Printer.PrintKOT(&kot); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "KOT sent to printer", gin.H{"kot_id": kot.ID})
}
