package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/services"
	"github.com/restohub/restopos/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB, service *services.OrderService) *OrderController {
	return &OrderController{DB: db, Service: service}
}

// CreateOrder -> POST /orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.Create(principalFrom(c), req)
	if err != nil {
		utils.RespondError(c, statusForServiceError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> GET /orders, newest first, optional status/type filters
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	p := principalFrom(c)

	query := oc.DB.Preload("Items").Preload("Table").
		Where("restaurant_id = ?", p.RestaurantID).
		Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if orderType := c.Query("order_type"); orderType != "" {
		query = query.Where("order_type = ?", orderType)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> GET /orders/:order_id
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	p := principalFrom(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Table").
		Where("id = ? AND restaurant_id = ?", id, p.RestaurantID).
		First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> PUT /orders/:order_id
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.Update(principalFrom(c), uint(id), req)
	if err != nil {
		utils.RespondError(c, statusForServiceError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// CancelOrder -> PATCH /orders/:order_id/cancel
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	order, err := oc.Service.Cancel(principalFrom(c), uint(id), body.Reason)
	if err != nil {
		utils.RespondError(c, statusForServiceError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// CheckoutOrder -> PATCH /orders/:order_id/checkout
func (oc *OrderController) CheckoutOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.Checkout(principalFrom(c), uint(id), req)
	if err != nil {
		utils.RespondError(c, statusForServiceError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order checked out", order)
}

// BulkCheckout -> POST /orders/checkout-bulk
func (oc *OrderController) BulkCheckout(c *gin.Context) {
	var body struct {
		OrderIDs []uint                   `json:"order_ids" binding:"required"`
		Options  services.CheckoutRequest `json:"options"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	results := oc.Service.BulkCheckout(principalFrom(c), body.OrderIDs, body.Options)

	ok, failed := 0, 0
	for _, r := range results {
		if r.OK {
			ok++
		} else {
			failed++
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Bulk checkout finished", gin.H{
		"ok":      ok,
		"failed":  failed,
		"results": results,
	})
}

// DeleteOrder -> DELETE /orders/:order_id (admin/manager)
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	if err := oc.Service.Delete(principalFrom(c), uint(id)); err != nil {
		utils.RespondError(c, statusForServiceError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
