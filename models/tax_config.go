package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tax modes and inclusion flags.
const (
	TaxModeSingle    = "single"
	TaxModeComposite = "composite"

	TaxInclusive = "inclusive"
	TaxExclusive = "exclusive"
)

// TaxComponent is one named slice of a composite rate (e.g. CGST, SGST).
type TaxComponent struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// TaxComponentList is stored as a JSON text column.
type TaxComponentList []TaxComponent

func (l TaxComponentList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *TaxComponentList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TaxComponentList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// TaxConfig is the per-tenant tax policy. When Breakdown is non-empty its
// rates are expected to sum to EffectiveRate; that is validated by the admin
// endpoint that writes it, readers trust the stored row as-is.
type TaxConfig struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	TenantID      uint             `gorm:"not null;unique" json:"tenant_id"`
	EffectiveRate decimal.Decimal  `gorm:"type:decimal(8,6);not null" json:"effective_rate"`
	Mode          string           `gorm:"type:varchar(20);not null;default:'single'" json:"mode"`
	Inclusion     string           `gorm:"type:varchar(20);not null;default:'inclusive'" json:"inclusion"`
	Currency      string           `gorm:"type:varchar(8);not null" json:"currency"`
	Breakdown     TaxComponentList `gorm:"type:text" json:"breakdown"`
	CreatedAt     time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null" json:"updated_at"`
}
