package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tabletap/ordering-app/models"
)

func TestResolveFallsBackToDefaultPolicy(t *testing.T) {
	db := newCartTestDB(t, "taxdefault")
	seedCatalog(t, db)
	svc := NewTaxService(db)

	cfg := svc.Resolve(1)

	assert.Equal(t, "0.08", cfg.EffectiveRate.String())
	assert.Equal(t, models.TaxModeSingle, cfg.Mode)
	assert.Equal(t, models.TaxInclusive, cfg.Inclusion)
	assert.Equal(t, "IDR", cfg.Currency)
}

func TestResolveUsesTenantCurrencyForDefault(t *testing.T) {
	db := newCartTestDB(t, "taxtenantccy")
	tenant := models.Tenant{Name: "Mumbai Branch", Slug: "mumbai", DefaultCurrency: "INR"}
	assert.NoError(t, db.Create(&tenant).Error)

	cfg := NewTaxService(db).Resolve(tenant.ID)
	assert.Equal(t, "INR", cfg.Currency)
}

func TestResolveReturnsStoredConfig(t *testing.T) {
	db := newCartTestDB(t, "taxstored")
	seedCatalog(t, db)

	stored := models.TaxConfig{
		TenantID:      1,
		EffectiveRate: decimal.RequireFromString("0.05"),
		Mode:          models.TaxModeComposite,
		Inclusion:     models.TaxExclusive,
		Currency:      "INR",
		Breakdown: models.TaxComponentList{
			{Name: "CGST", Rate: decimal.RequireFromString("0.025")},
			{Name: "SGST", Rate: decimal.RequireFromString("0.025")},
		},
	}
	assert.NoError(t, db.Create(&stored).Error)

	cfg := NewTaxService(db).Resolve(1)

	assert.True(t, cfg.EffectiveRate.Equal(stored.EffectiveRate))
	assert.Equal(t, models.TaxExclusive, cfg.Inclusion)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Len(t, cfg.Breakdown, 2)
	assert.Equal(t, "CGST", cfg.Breakdown[0].Name)
}

func TestResolveBackfillsMissingCurrency(t *testing.T) {
	db := newCartTestDB(t, "taxbackfill")
	tenant := models.Tenant{Name: "Jakarta Branch", Slug: "jakarta", DefaultCurrency: "IDR"}
	assert.NoError(t, db.Create(&tenant).Error)

	stored := models.TaxConfig{
		TenantID:      tenant.ID,
		EffectiveRate: decimal.RequireFromString("0.1"),
		Mode:          models.TaxModeSingle,
		Inclusion:     models.TaxInclusive,
	}
	assert.NoError(t, db.Create(&stored).Error)

	cfg := NewTaxService(db).Resolve(tenant.ID)
	assert.Equal(t, "IDR", cfg.Currency)
}
