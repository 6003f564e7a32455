package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a frozen copy of a cart line taken at checkout.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order     Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TenantID  uint            `gorm:"not null;index" json:"tenant_id"`
	MenuID    uint            `gorm:"not null" json:"menu_id"`
	ItemName  string          `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
