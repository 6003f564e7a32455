package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/models"
)

// CheckoutResult carries the monetary figures exactly as the checkout
// procedure produced them; the gate never recomputes them.
type CheckoutResult struct {
	OrderID     uint            `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
}

// CheckoutProcedure is the single atomic transition from an open cart to an
// order: it must validate ownership and status, copy the lines into an order
// and make the cart terminal, all within one transaction.
type CheckoutProcedure interface {
	Execute(tenantID, customerID, cartID uint, paymentIntentRef *string, notes string) (*CheckoutResult, error)
}

// CheckoutService is the only allowed path from a cart to an order. It
// delegates to the procedure and translates its failure signals; no retry
// is attempted here, retry policy belongs to the caller.
type CheckoutService struct {
	Procedure CheckoutProcedure
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{
		Procedure: &txCheckoutProcedure{db: db, tax: NewTaxService(db)},
	}
}

func (s *CheckoutService) Checkout(tenantID, customerID, cartID uint, paymentIntentRef *string, notes string) (*CheckoutResult, error) {
	result, err := s.Procedure.Execute(tenantID, customerID, cartID, paymentIntentRef, notes)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, ErrCartNotOpen) || errors.Is(err, ErrCartEmpty) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
}

// txCheckoutProcedure implements the checkout procedure as one database
// transaction.
type txCheckoutProcedure struct {
	db  *gorm.DB
	tax *TaxService
}

func (p *txCheckoutProcedure) Execute(tenantID, customerID, cartID uint, paymentIntentRef *string, notes string) (*CheckoutResult, error) {
	var result *CheckoutResult

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.
			Where("id = ? AND tenant_id = ? AND customer_id = ?", cartID, tenantID, customerID).
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotOpen
			}
			return err
		}
		if cart.Status != models.CartStatusOpen {
			return ErrCartNotOpen
		}

		var items []models.CartItem
		if err := tx.
			Where("tenant_id = ? AND cart_id = ?", tenantID, cart.ID).
			Order("menu_id asc").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		cfg := p.tax.Resolve(tenantID)
		totals := ComputeTotals(items, cfg)

		order := models.Order{
			TenantID:         tenantID,
			CustomerID:       customerID,
			CartID:           cart.ID,
			OrderNumber:      newOrderNumber(),
			Status:           models.OrderStatusPlaced,
			Subtotal:         totals.Subtotal,
			TaxAmount:        totals.Tax,
			TotalAmount:      totals.Total,
			Currency:         cfg.Currency,
			PaymentIntentRef: paymentIntentRef,
			Notes:            notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:  order.ID,
				TenantID: tenantID,
				MenuID:   it.MenuID,
				ItemName: it.ItemName,
				Quantity: it.Quantity,
				Price:    it.Price,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Cart{}).
			Where("id = ? AND tenant_id = ?", cart.ID, tenantID).
			Update("status", models.CartStatusCheckedOut).Error; err != nil {
			return err
		}

		result = &CheckoutResult{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Subtotal:    order.Subtotal,
			TaxAmount:   order.TaxAmount,
			TotalAmount: order.TotalAmount,
			Currency:    order.Currency,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func newOrderNumber() string {
	ref := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("ORD/%s/%s", time.Now().Format("20060102"), ref)
}
