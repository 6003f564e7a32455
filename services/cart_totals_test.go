package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tabletap/ordering-app/models"
)

func lines(pairs ...[2]string) []models.CartItem {
	items := make([]models.CartItem, 0, len(pairs))
	for _, p := range pairs {
		price := decimal.RequireFromString(p[0])
		qty := decimal.RequireFromString(p[1])
		items = append(items, models.CartItem{Price: price, Quantity: int(qty.IntPart())})
	}
	return items
}

func TestComputeTotalsInclusiveSingleComponent(t *testing.T) {
	cfg := models.TaxConfig{
		EffectiveRate: decimal.RequireFromString("0.08"),
		Inclusion:     models.TaxInclusive,
		Breakdown: models.TaxComponentList{
			{Name: "GST", Rate: decimal.RequireFromString("0.08")},
		},
	}

	tot := ComputeTotals(lines([2]string{"10", "2"}, [2]string{"5", "1"}), cfg)

	assert.Equal(t, "25", tot.Total.String())
	assert.Equal(t, "23.148148", tot.Subtotal.String())
	assert.Equal(t, "1.851852", tot.Tax.String())
	assert.Equal(t, PricingModeInclusive, tot.PricingMode)

	assert.Len(t, tot.TaxBreakdown, 1)
	assert.Equal(t, "GST", tot.TaxBreakdown[0].Name)
	assert.True(t, tot.TaxBreakdown[0].Amount.Equal(tot.Tax))
}

func TestComputeTotalsExclusiveTwoComponents(t *testing.T) {
	cfg := models.TaxConfig{
		EffectiveRate: decimal.RequireFromString("0.05"),
		Inclusion:     models.TaxExclusive,
		Breakdown: models.TaxComponentList{
			{Name: "CGST", Rate: decimal.RequireFromString("0.025")},
			{Name: "SGST", Rate: decimal.RequireFromString("0.025")},
		},
	}

	tot := ComputeTotals(lines([2]string{"10", "2"}, [2]string{"5", "1"}), cfg)

	assert.Equal(t, "25", tot.Subtotal.String())
	assert.Equal(t, "1.25", tot.Tax.String())
	assert.Equal(t, "26.25", tot.Total.String())
	assert.Equal(t, PricingModeExclusive, tot.PricingMode)

	assert.Len(t, tot.TaxBreakdown, 2)
	assert.Equal(t, "0.625", tot.TaxBreakdown[0].Amount.String())
	assert.Equal(t, "0.625", tot.TaxBreakdown[1].Amount.String())
}

// subtotal + tax must equal total exactly in both modes, whatever the rate.
func TestComputeTotalsSplitIsExact(t *testing.T) {
	rates := []string{"0", "0.05", "0.08", "0.1", "0.18", "0.33333"}
	prices := [][2]string{{"9.99", "3"}, {"0.01", "7"}, {"123.45", "1"}}

	for _, rate := range rates {
		for _, inclusion := range []string{models.TaxInclusive, models.TaxExclusive} {
			cfg := models.TaxConfig{
				EffectiveRate: decimal.RequireFromString(rate),
				Inclusion:     inclusion,
			}
			tot := ComputeTotals(lines(prices...), cfg)
			assert.True(t, tot.Subtotal.Add(tot.Tax).Equal(tot.Total),
				"rate=%s inclusion=%s: %s + %s != %s", rate, inclusion,
				tot.Subtotal, tot.Tax, tot.Total)
		}
	}
}

// Component amounts must sum to the tax exactly; the last listed component
// absorbs the rounding remainder.
func TestBreakdownAmountsSumToTax(t *testing.T) {
	cfg := models.TaxConfig{
		EffectiveRate: decimal.RequireFromString("0.1"),
		Inclusion:     models.TaxInclusive,
		Breakdown: models.TaxComponentList{
			{Name: "A", Rate: decimal.RequireFromString("0.0333")},
			{Name: "B", Rate: decimal.RequireFromString("0.0333")},
			{Name: "C", Rate: decimal.RequireFromString("0.0334")},
		},
	}

	tot := ComputeTotals(lines([2]string{"7.77", "13"}), cfg)

	sum := decimal.Zero
	for _, comp := range tot.TaxBreakdown {
		sum = sum.Add(comp.Amount)
	}
	assert.True(t, sum.Equal(tot.Tax), "breakdown sums to %s, tax is %s", sum, tot.Tax)
}

func TestEmptyBreakdownGetsSyntheticComponent(t *testing.T) {
	cfg := models.TaxConfig{
		EffectiveRate: decimal.RequireFromString("0.08"),
		Inclusion:     models.TaxExclusive,
	}

	tot := ComputeTotals(lines([2]string{"10", "1"}), cfg)

	assert.Len(t, tot.TaxBreakdown, 1)
	assert.Equal(t, "Tax", tot.TaxBreakdown[0].Name)
	assert.True(t, tot.TaxBreakdown[0].Rate.Equal(cfg.EffectiveRate))
	assert.True(t, tot.TaxBreakdown[0].Amount.Equal(tot.Tax))
}

func TestComputeTotalsNoLines(t *testing.T) {
	cfg := models.TaxConfig{
		EffectiveRate: decimal.RequireFromString("0.08"),
		Inclusion:     models.TaxInclusive,
	}

	tot := ComputeTotals(nil, cfg)

	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.Tax.IsZero())
	assert.True(t, tot.Total.IsZero())
}

func TestComputeTotalsZeroRateBreakdown(t *testing.T) {
	cfg := models.TaxConfig{
		EffectiveRate: decimal.Zero,
		Inclusion:     models.TaxExclusive,
		Breakdown: models.TaxComponentList{
			{Name: "A", Rate: decimal.Zero},
			{Name: "B", Rate: decimal.Zero},
		},
	}

	tot := ComputeTotals(lines([2]string{"10", "2"}), cfg)

	assert.Equal(t, "20", tot.Total.String())
	assert.True(t, tot.Tax.IsZero())
	sum := decimal.Zero
	for _, comp := range tot.TaxBreakdown {
		sum = sum.Add(comp.Amount)
	}
	assert.True(t, sum.IsZero())
}
