package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (menu item, quantity) line in a cart. Price and name are
// snapshotted at mutation time, never live-joined from the menu table.
// A quantity of zero is never stored; the line is deleted instead.
type CartItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CartID   uint `gorm:"not null;uniqueIndex:idx_cart_menu" json:"cart_id"`
	Cart     Cart `gorm:"foreignKey:CartID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`
	MenuID   uint `gorm:"not null;uniqueIndex:idx_cart_menu" json:"menu_id"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ItemName  string          `gorm:"type:varchar(255);not null" json:"item_name"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
