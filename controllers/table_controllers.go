package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	p := principalFrom(c)

	query := tc.DB.Preload("Area").Where("restaurant_id = ?", p.RestaurantID)
	if areaID := c.Query("area_id"); areaID != "" {
		query = query.Where("area_id = ?", areaID)
	}

	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	p := principalFrom(c)

	var body struct {
		Name     string `json:"name" binding:"required"`
		Capacity int    `json:"capacity"`
		AreaID   uint   `json:"area_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var area models.Area
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", body.AreaID, p.RestaurantID).
		First(&area).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("area not found"))
		return
	}

	if body.Capacity <= 0 {
		body.Capacity = 4
	}
	table := models.Table{
		RestaurantID: p.RestaurantID,
		AreaID:       area.ID,
		Name:         body.Name,
		Capacity:     body.Capacity,
		Status:       models.TableAvailable,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTable edits name/capacity/area, and allows a manual move
// between available and reserved. Occupied is owned by the order core.
func (tc *TableController) UpdateTable(c *gin.Context) {
	p := principalFrom(c)

	var table models.Table
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", c.Param("table_id"), p.RestaurantID).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	var body struct {
		Name     *string `json:"name"`
		Capacity *int    `json:"capacity"`
		AreaID   *uint   `json:"area_id"`
		Status   *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		table.Name = *body.Name
	}
	if body.Capacity != nil && *body.Capacity > 0 {
		table.Capacity = *body.Capacity
	}
	if body.AreaID != nil {
		table.AreaID = *body.AreaID
	}
	if body.Status != nil {
		if table.Status == models.TableOccupied || *body.Status == models.TableOccupied {
			utils.RespondError(c, http.StatusConflict, errors.New("occupied status is managed by orders"))
			return
		}
		switch *body.Status {
		case models.TableAvailable, models.TableReserved:
			table.Status = *body.Status
		default:
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table status"))
			return
		}
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	p := principalFrom(c)

	var table models.Table
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", c.Param("table_id"), p.RestaurantID).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	if table.Status == models.TableOccupied {
		utils.RespondError(c, http.StatusConflict, errors.New("table is occupied"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", nil)
}
