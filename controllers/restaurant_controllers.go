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

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

func (rc *RestaurantController) GetRestaurant(c *gin.Context) {
	p := principalFrom(c)

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, p.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// UpdateRestaurant edits profile and billing defaults. The defaults
// are advisory for clients; the order core always takes percentages
// from the request payload.
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	p := principalFrom(c)

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, p.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}

	var body struct {
		Name                   *string          `json:"name"`
		Address                *string          `json:"address"`
		Phone                  *string          `json:"phone"`
		Currency               *string          `json:"currency"`
		DefaultVatPercent      *decimal.Decimal `json:"default_vat_percent"`
		DefaultDiscountPercent *decimal.Decimal `json:"default_discount_percent"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		restaurant.Name = *body.Name
	}
	if body.Address != nil {
		restaurant.Address = *body.Address
	}
	if body.Phone != nil {
		restaurant.Phone = *body.Phone
	}
	if body.Currency != nil {
		restaurant.Currency = *body.Currency
	}
	if body.DefaultVatPercent != nil {
		if !percentInRange(*body.DefaultVatPercent) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("default_vat_percent must be between 0 and 100"))
			return
		}
		restaurant.DefaultVatPercent = *body.DefaultVatPercent
	}
	if body.DefaultDiscountPercent != nil {
		if !percentInRange(*body.DefaultDiscountPercent) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("default_discount_percent must be between 0 and 100"))
			return
		}
		restaurant.DefaultDiscountPercent = *body.DefaultDiscountPercent
	}

	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", restaurant)
}

func percentInRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(decimal.NewFromInt(100))
}
