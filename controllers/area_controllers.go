package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
)

type AreaController struct {
	DB *gorm.DB
}

func NewAreaController(db *gorm.DB) *AreaController {
	return &AreaController{DB: db}
}

func (ac *AreaController) GetAllAreas(c *gin.Context) {
	p := principalFrom(c)

	var areas []models.Area
	if err := ac.DB.Where("restaurant_id = ?", p.RestaurantID).Find(&areas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of areas", areas)
}

func (ac *AreaController) CreateArea(c *gin.Context) {
	p := principalFrom(c)

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	area := models.Area{RestaurantID: p.RestaurantID, Name: body.Name}
	if err := ac.DB.Create(&area).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Area created", area)
}

func (ac *AreaController) UpdateArea(c *gin.Context) {
	p := principalFrom(c)

	var area models.Area
	if err := ac.DB.Where("id = ? AND restaurant_id = ?", c.Param("area_id"), p.RestaurantID).
		First(&area).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("area not found"))
		return
	}

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	area.Name = body.Name
	if err := ac.DB.Save(&area).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Area updated", area)
}

func (ac *AreaController) DeleteArea(c *gin.Context) {
	p := principalFrom(c)

	var count int64
	ac.DB.Model(&models.Table{}).
		Where("area_id = ? AND restaurant_id = ?", c.Param("area_id"), p.RestaurantID).
		Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("area still has tables"))
		return
	}

	res := ac.DB.Where("id = ? AND restaurant_id = ?", c.Param("area_id"), p.RestaurantID).
		Delete(&models.Area{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("area not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Area deleted", nil)
}
