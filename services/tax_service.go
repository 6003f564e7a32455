package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

// FallbackCurrency is used when neither a tax config row nor the tenant row
// can provide one.
const FallbackCurrency = "IDR"

// defaultTaxRate is the platform-wide default applied when a tenant has no
// tax configuration of its own.
var defaultTaxRate = decimal.NewFromFloat(0.08)

type TaxService struct {
	DB *gorm.DB
}

func NewTaxService(db *gorm.DB) *TaxService {
	return &TaxService{DB: db}
}

// Resolve returns the effective tax policy for a tenant. A missing or
// unreadable config never blocks cart operations: the safe default is an
// 8% single inclusive "Tax" component in the tenant's default currency.
func (ts *TaxService) Resolve(tenantID uint) models.TaxConfig {
	var cfg models.TaxConfig
	err := ts.DB.Where("tenant_id = ?", tenantID).First(&cfg).Error
	if err == nil {
		if cfg.Currency == "" {
			cfg.Currency = ts.defaultCurrency(tenantID)
		}
		return cfg
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorLogger.Printf("tax config lookup failed for tenant %d: %v", tenantID, err)
	}
	return ts.defaultConfig(tenantID)
}

func (ts *TaxService) defaultConfig(tenantID uint) models.TaxConfig {
	return models.TaxConfig{
		TenantID:      tenantID,
		EffectiveRate: defaultTaxRate,
		Mode:          models.TaxModeSingle,
		Inclusion:     models.TaxInclusive,
		Currency:      ts.defaultCurrency(tenantID),
	}
}

func (ts *TaxService) defaultCurrency(tenantID uint) string {
	var tenant models.Tenant
	if err := ts.DB.First(&tenant, tenantID).Error; err != nil || tenant.DefaultCurrency == "" {
		return FallbackCurrency
	}
	return tenant.DefaultCurrency
}
