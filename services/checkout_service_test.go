package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabletap/ordering-app/models"
)

func TestCheckoutHappyPath(t *testing.T) {
	db := newCartTestDB(t, "checkouthappy")
	seedCatalog(t, db)
	carts := NewCartService(db)
	checkout := NewCheckoutService(db)

	cart, _ := carts.EnsureCart(1, 1, models.CartModeTakeaway, nil)
	summary, err := carts.ApplyItems(cart, []CartLineInput{
		{MenuID: 1, Quantity: 2},
		{MenuID: 2, Quantity: 1},
	}, ApplyModeSet)
	assert.NoError(t, err)

	result, err := checkout.Checkout(1, 1, cart.ID, nil, "no onions")
	assert.NoError(t, err)

	// The gate passes the procedure's figures through verbatim, so they must
	// match what the cart summary showed the diner.
	assert.True(t, result.Subtotal.Equal(summary.Totals.Subtotal))
	assert.True(t, result.TaxAmount.Equal(summary.Totals.Tax))
	assert.True(t, result.TotalAmount.Equal(summary.Totals.Total))
	assert.Equal(t, "IDR", result.Currency)
	assert.NotEmpty(t, result.OrderNumber)

	var order models.Order
	assert.NoError(t, db.First(&order, result.OrderID).Error)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, "no onions", order.Notes)

	var lineCount int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&lineCount)
	assert.Equal(t, int64(2), lineCount)

	var reloaded models.Cart
	assert.NoError(t, db.First(&reloaded, cart.ID).Error)
	assert.Equal(t, models.CartStatusCheckedOut, reloaded.Status)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newCartTestDB(t, "checkoutempty")
	seedCatalog(t, db)
	carts := NewCartService(db)
	checkout := NewCheckoutService(db)

	cart, _ := carts.EnsureCart(1, 1, models.CartModeTakeaway, nil)

	_, err := checkout.Checkout(1, 1, cart.ID, nil, "")
	assert.ErrorIs(t, err, ErrCartEmpty)

	// Nothing must have been written.
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var reloaded models.Cart
	assert.NoError(t, db.First(&reloaded, cart.ID).Error)
	assert.Equal(t, models.CartStatusOpen, reloaded.Status)
}

func TestCheckoutTwiceRejected(t *testing.T) {
	db := newCartTestDB(t, "checkouttwice")
	seedCatalog(t, db)
	carts := NewCartService(db)
	checkout := NewCheckoutService(db)

	cart, _ := carts.EnsureCart(1, 1, models.CartModeTakeaway, nil)
	_, err := carts.ApplyItems(cart, []CartLineInput{{MenuID: 1, Quantity: 1}}, ApplyModeSet)
	assert.NoError(t, err)

	_, err = checkout.Checkout(1, 1, cart.ID, nil, "")
	assert.NoError(t, err)

	_, err = checkout.Checkout(1, 1, cart.ID, nil, "")
	assert.ErrorIs(t, err, ErrCartNotOpen)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(1), orders)
}

func TestCheckoutWrongCustomerRejected(t *testing.T) {
	db := newCartTestDB(t, "checkoutowner")
	seedCatalog(t, db)
	carts := NewCartService(db)
	checkout := NewCheckoutService(db)

	cart, _ := carts.EnsureCart(1, 1, models.CartModeTakeaway, nil)
	_, err := carts.ApplyItems(cart, []CartLineInput{{MenuID: 1, Quantity: 1}}, ApplyModeSet)
	assert.NoError(t, err)

	_, err = checkout.Checkout(1, 99, cart.ID, nil, "")
	assert.ErrorIs(t, err, ErrCartNotOpen)
}

func TestCheckedOutCartRejectsMutation(t *testing.T) {
	db := newCartTestDB(t, "checkoutfrozen")
	seedCatalog(t, db)
	carts := NewCartService(db)
	checkout := NewCheckoutService(db)

	cart, _ := carts.EnsureCart(1, 1, models.CartModeTakeaway, nil)
	_, err := carts.ApplyItems(cart, []CartLineInput{{MenuID: 1, Quantity: 1}}, ApplyModeSet)
	assert.NoError(t, err)

	_, err = checkout.Checkout(1, 1, cart.ID, nil, "")
	assert.NoError(t, err)

	reloaded, err := carts.GetCart(1, cart.ID)
	assert.NoError(t, err)
	_, err = carts.ApplyItems(reloaded, []CartLineInput{{MenuID: 2, Quantity: 1}}, ApplyModeSet)
	assert.ErrorIs(t, err, ErrCartNotOpen)
}
