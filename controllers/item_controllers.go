package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

type itemUnitBody struct {
	UnitName         string          `json:"unit_name" binding:"required"`
	Price            decimal.Decimal `json:"price"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
}

func (ic *ItemController) GetAllItems(c *gin.Context) {
	p := principalFrom(c)

	query := ic.DB.Preload("Units").Preload("Category").
		Where("restaurant_id = ?", p.RestaurantID)
	if catID := c.Query("category_id"); catID != "" {
		query = query.Where("category_id = ?", catID)
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of items", items)
}

func (ic *ItemController) GetItemByID(c *gin.Context) {
	p := principalFrom(c)

	var item models.Item
	if err := ic.DB.Preload("Units").Preload("Category").
		Where("id = ? AND restaurant_id = ?", c.Param("item_id"), p.RestaurantID).
		First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item detail", item)
}

func (ic *ItemController) CreateItem(c *gin.Context) {
	p := principalFrom(c)

	var body struct {
		Name       string         `json:"name" binding:"required"`
		CategoryID uint           `json:"category_id" binding:"required"`
		Units      []itemUnitBody `json:"units" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := ic.DB.Where("id = ? AND restaurant_id = ?", body.CategoryID, p.RestaurantID).
		First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	units, err := buildUnits(body.Units)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.Item{
		RestaurantID: p.RestaurantID,
		CategoryID:   category.ID,
		Name:         body.Name,
		IsAvailable:  true,
		Units:        units,
	}
	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

// UpdateItem replaces the unit list when one is provided.
func (ic *ItemController) UpdateItem(c *gin.Context) {
	p := principalFrom(c)

	var item models.Item
	if err := ic.DB.Preload("Units").
		Where("id = ? AND restaurant_id = ?", c.Param("item_id"), p.RestaurantID).
		First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not found"))
		return
	}

	var body struct {
		Name        *string        `json:"name"`
		CategoryID  *uint          `json:"category_id"`
		IsAvailable *bool          `json:"is_available"`
		Units       []itemUnitBody `json:"units"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.CategoryID != nil {
			item.CategoryID = *body.CategoryID
		}
		if body.IsAvailable != nil {
			item.IsAvailable = *body.IsAvailable
		}
		if body.Units != nil {
			if len(body.Units) == 0 {
				return errors.New("units cannot be empty")
			}
			units, err := buildUnits(body.Units)
			if err != nil {
				return err
			}
			if err := tx.Where("item_id = ?", item.ID).Delete(&models.ItemUnit{}).Error; err != nil {
				return err
			}
			for i := range units {
				units[i].ItemID = item.ID
			}
			if err := tx.Create(&units).Error; err != nil {
				return err
			}
			item.Units = units
		}
		return tx.Omit("Units").Save(&item).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item updated", item)
}

func (ic *ItemController) DeleteItem(c *gin.Context) {
	p := principalFrom(c)

	var item models.Item
	if err := ic.DB.Where("id = ? AND restaurant_id = ?", c.Param("item_id"), p.RestaurantID).
		First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not found"))
		return
	}

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.ItemUnit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ? AND restaurant_id = ?", item.ID, p.RestaurantID).
			Delete(&models.ItemStock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item deleted", nil)
}

func buildUnits(bodies []itemUnitBody) ([]models.ItemUnit, error) {
	units := make([]models.ItemUnit, 0, len(bodies))
	for _, u := range bodies {
		if u.Price.IsNegative() {
			return nil, errors.New("unit price must be >= 0")
		}
		factor := u.ConversionFactor
		if factor.IsZero() {
			factor = decimal.NewFromInt(1)
		}
		if factor.IsNegative() {
			return nil, errors.New("conversion factor must be > 0")
		}
		units = append(units, models.ItemUnit{
			UnitName:         u.UnitName,
			Price:            u.Price,
			ConversionFactor: factor,
		})
	}
	return units, nil
}
