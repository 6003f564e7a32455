package services

import "errors"

// Stable machine-readable failure kinds. Store error text may be attached
// as wrapped detail but is never part of the contract.
var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrInvalidItem      = errors.New("menu item not found in catalog")
	ErrItemUnavailable  = errors.New("menu item is not available")
	ErrInvalidItemPrice = errors.New("menu item has an invalid price")
	ErrMutationFailed   = errors.New("cart mutation failed")
	ErrCartNotOpen      = errors.New("cart is not open")
	ErrCartEmpty        = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutFailed   = errors.New("checkout failed")
)
