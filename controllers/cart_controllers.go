package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/events"
	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/services"
	"github.com/tabletap/ordering-app/utils"
)

type CartController struct {
	DB       *gorm.DB
	Carts    *services.CartService
	Checkout *services.CheckoutService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{
		DB:       db,
		Carts:    services.NewCartService(db),
		Checkout: services.NewCheckoutService(db),
	}
}

// mutationStatus maps the engine's failure kinds to HTTP codes.
var mutationStatus = map[error]int{
	services.ErrCartNotFound:     http.StatusNotFound,
	services.ErrInvalidItem:      http.StatusUnprocessableEntity,
	services.ErrItemUnavailable:  http.StatusConflict,
	services.ErrInvalidItemPrice: http.StatusUnprocessableEntity,
	services.ErrCartNotOpen:      http.StatusConflict,
	services.ErrCartEmpty:        http.StatusConflict,
	services.ErrMutationFailed:   http.StatusInternalServerError,
	services.ErrCheckoutFailed:   http.StatusBadGateway,
}

// EnsureCart -> idempotent get-or-create of the active cart for a session.
func (cc *CartController) EnsureCart(c *gin.Context) {
	tenantID, err := paramUint(c, "tenant_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		CustomerID uint    `json:"customer_id" binding:"required"`
		Mode       string  `json:"mode"`
		TableCode  *string `json:"table_code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.Carts.EnsureCart(tenantID, body.CustomerID, body.Mode, body.TableCode)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart ready", cart)
}

// ApplyItems -> apply a batch of quantity changes under set or increment mode.
func (cc *CartController) ApplyItems(c *gin.Context) {
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	var body struct {
		Mode  string                   `json:"mode"`
		Items []services.CartLineInput `json:"items" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	mode := services.ApplyModeSet
	switch body.Mode {
	case "", string(services.ApplyModeSet):
	case string(services.ApplyModeIncrement):
		mode = services.ApplyModeIncrement
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown mode %q", body.Mode))
		return
	}

	summary, err := cc.Carts.ApplyItems(cart, body.Items, mode)
	if err != nil {
		utils.RespondMappedError(c, err, mutationStatus)
		return
	}

	events.BroadcastCartUpdate(cart.TenantID, summary)

	utils.RespondJSON(c, http.StatusOK, "Cart updated", summary)
}

// GetSummary -> items plus subtotal/tax/total under the tenant's tax policy.
func (cc *CartController) GetSummary(c *gin.Context) {
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	summary, err := cc.Carts.Summary(cart)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart summary", summary)
}

// CheckoutCart -> the only path from an open cart to an order.
func (cc *CartController) CheckoutCart(c *gin.Context) {
	cart, ok := cc.loadCart(c)
	if !ok {
		return
	}

	var body struct {
		PaymentIntentRef *string `json:"payment_intent_ref"`
		Notes            string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := cc.Checkout.Checkout(cart.TenantID, cart.CustomerID, cart.ID, body.PaymentIntentRef, body.Notes)
	if err != nil {
		utils.RespondMappedError(c, err, mutationStatus)
		return
	}

	// Secondary effects; the order itself is already committed.
	var order models.Order
	if err := cc.DB.Preload("OrderItems").First(&order, result.OrderID).Error; err == nil {
		events.BroadcastOrderCreated(order.TenantID, order)
	}
	notifyStaffOrderPlaced(cc.DB, cart.TenantID, result)

	utils.RespondJSON(c, http.StatusCreated, "Order placed", result)
}

// loadCart resolves :tenant_id/:cart_id and answers 404 on a miss.
func (cc *CartController) loadCart(c *gin.Context) (*models.Cart, bool) {
	tenantID, err := paramUint(c, "tenant_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return nil, false
	}
	cartID, err := paramUint(c, "cart_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return nil, false
	}

	cart, err := cc.Carts.GetCart(tenantID, cartID)
	if err != nil {
		utils.RespondMappedError(c, err, mutationStatus)
		return nil, false
	}
	return cart, true
}

func notifyStaffOrderPlaced(db *gorm.DB, tenantID uint, result *services.CheckoutResult) {
	message := fmt.Sprintf("Order %s placed, total %s",
		result.OrderNumber, utils.FormatCurrencyIDR(result.TotalAmount))

	notif := models.Notification{
		TenantID: tenantID,
		Message:  message,
	}
	if err := db.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("failed to store order notification: %v", err)
	}
	events.BroadcastStaffNotification(tenantID, message)
}

func paramUint(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(val), nil
}
