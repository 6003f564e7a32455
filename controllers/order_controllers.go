package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

// OrderController is read-plus-fulfilment only: orders are created solely
// by the cart checkout procedure.
type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> staff listing for the caller's tenant.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var orders []models.Order
	query := oc.DB.Preload("OrderItems").Where("tenant_id = ?", tenantID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("id = ? AND tenant_id = ?", orderID, tenantID).
		First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> staff moves an order through fulfilment.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	orderID := c.Param("order_id")

	var body struct {
		Status string `json:"status" binding:"required,oneof=placed preparing ready completed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.Where("id = ? AND tenant_id = ?", orderID, tenantID).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}
