package models

import (
	"time"
)

// Customer is an anonymous diner session, created when a table QR is
// scanned (dine-in) or a takeaway session is opened.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	TableID    *uint     `gorm:"index" json:"table_id,omitempty"`
	Table      Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SessionKey *string   `gorm:"type:varchar(255)" json:"session_key,omitempty"`
	Status     string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
