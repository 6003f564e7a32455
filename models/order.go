package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. An order row is only ever created by the checkout
// procedure, never by direct API writes.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	TenantID         uint            `gorm:"not null;index" json:"tenant_id"`
	CustomerID       uint            `gorm:"not null;index" json:"customer_id"`
	CartID           uint            `gorm:"not null;index" json:"cart_id"`
	OrderNumber      string          `gorm:"type:varchar(64);unique;not null" json:"order_number"`
	Status           string          `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(16,6);not null" json:"subtotal"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(16,6);not null" json:"tax_amount"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(16,6);not null" json:"total_amount"`
	Currency         string          `gorm:"type:varchar(8);not null" json:"currency"`
	PaymentIntentRef *string         `gorm:"type:varchar(100)" json:"payment_intent_ref,omitempty"`
	Notes            string          `gorm:"type:text" json:"notes"`
	OrderItems       []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}
