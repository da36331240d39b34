package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restohub/restopos/services"
)

var ErrNoPermission = errors.New("you do not have permission to perform this action")

// principalFrom rebuilds the caller identity set by the auth middleware.
func principalFrom(c *gin.Context) services.Principal {
	userID, _ := c.Get("user_id")
	restaurantID, _ := c.Get("restaurant_id")
	role, _ := c.Get("role")

	p := services.Principal{}
	if v, ok := userID.(uint); ok {
		p.UserID = v
	}
	if v, ok := restaurantID.(uint); ok {
		p.RestaurantID = v
	}
	if v, ok := role.(string); ok {
		p.Role = v
	}
	return p
}

// statusForServiceError maps lifecycle errors onto the HTTP taxonomy:
// validation 400, not found 404, state conflicts 409.
func statusForServiceError(err error) int {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrTableOccupied),
		errors.Is(err, services.ErrOrderCheckedOut),
		errors.Is(err, services.ErrOrderNotActive),
		errors.Is(err, services.ErrHasDue):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmptyItems),
		errors.Is(err, services.ErrInvalidOrderType),
		errors.Is(err, services.ErrTableRequired),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrUnitNotFound),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrNegativePrice),
		errors.Is(err, services.ErrInvalidPercent),
		errors.Is(err, services.ErrNegativeCharge),
		errors.Is(err, services.ErrCustomerNameRequired),
		errors.Is(err, services.ErrInvalidPaymentStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
