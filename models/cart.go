package models

import "time"

// CartStatus is the lifecycle flag of a cart.
type CartStatus string

const (
	// CartStatusOpen -> cart is mutable and can be checked out.
	CartStatusOpen CartStatus = "open"
	// CartStatusLocked -> cart is temporarily frozen by staff.
	CartStatusLocked CartStatus = "locked"
	// CartStatusCheckedOut -> terminal; the checkout procedure materialized
	// an order from this cart. No further mutation is allowed.
	CartStatusCheckedOut CartStatus = "checked_out"
)

// Named rule: there is no "empty"/"inactive" status. A cart that receives
// its first item is forced to open; a cart emptied back to zero items keeps
// whatever status it had, so an open cart with zero lines is a valid state.
func (s CartStatus) Terminal() bool {
	return s == CartStatusCheckedOut
}

// Cart order modes.
const (
	CartModeDineIn   = "dine_in"
	CartModeTakeaway = "takeaway"
)

type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TenantID   uint       `gorm:"not null;index" json:"tenant_id"`
	Tenant     Tenant     `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CustomerID uint       `gorm:"not null;index" json:"customer_id"`
	Customer   Customer   `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Mode       string     `gorm:"type:varchar(20);not null;default:'dine_in'" json:"mode"`
	TableCode  *string    `gorm:"type:varchar(50)" json:"table_code,omitempty"`
	Status     CartStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Items      []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}
