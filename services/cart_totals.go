package services

import (
	"github.com/shopspring/decimal"

	"github.com/tabletap/ordering-app/models"
)

// Pricing modes reported on a summary.
const (
	PricingModeInclusive = "tax_inclusive"
	PricingModeExclusive = "tax_exclusive"
)

// moneyPrecision is the internal decimal precision; presentation rounding
// is the caller's concern.
const moneyPrecision = 6

// TaxBreakdownLine is one component's share of the tax amount.
type TaxBreakdownLine struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// CartTotals is the money result of pricing a set of cart lines.
// Subtotal + Tax == Total holds exactly in both pricing modes.
type CartTotals struct {
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Tax          decimal.Decimal    `json:"tax"`
	Total        decimal.Decimal    `json:"total"`
	PricingMode  string             `json:"pricing_mode"`
	TaxBreakdown []TaxBreakdownLine `json:"tax_breakdown"`
}

// ComputeTotals prices the given lines under the resolved tax config.
// Pure function, no I/O.
//
// Inclusive mode: line prices already contain tax, so the gross sum is the
// total and the subtotal is derived by dividing out the effective rate.
// Exclusive mode: the gross sum is the subtotal and tax is added on top.
func ComputeTotals(items []models.CartItem, cfg models.TaxConfig) CartTotals {
	gross := decimal.Zero
	for _, it := range items {
		gross = gross.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	rate := effectiveRate(cfg)

	var subtotal, tax, total decimal.Decimal
	var mode string
	if cfg.Inclusion == models.TaxExclusive {
		subtotal = gross
		tax = subtotal.Mul(rate).Round(moneyPrecision)
		total = subtotal.Add(tax)
		mode = PricingModeExclusive
	} else {
		total = gross
		subtotal = total.Div(decimal.NewFromInt(1).Add(rate)).Round(moneyPrecision)
		tax = total.Sub(subtotal)
		mode = PricingModeInclusive
	}

	return CartTotals{
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        total,
		PricingMode:  mode,
		TaxBreakdown: allocateBreakdown(tax, rate, cfg.Breakdown),
	}
}

// effectiveRate sums the breakdown component rates when present, otherwise
// falls back to the configured single rate.
func effectiveRate(cfg models.TaxConfig) decimal.Decimal {
	if len(cfg.Breakdown) == 0 {
		return cfg.EffectiveRate
	}
	sum := decimal.Zero
	for _, comp := range cfg.Breakdown {
		sum = sum.Add(comp.Rate)
	}
	return sum
}

// allocateBreakdown splits the tax amount across breakdown components in
// proportion to their rates. Every component but the last is rounded to the
// internal precision; the last listed component absorbs the remainder so the
// allocated amounts always sum to tax exactly.
func allocateBreakdown(tax, rate decimal.Decimal, breakdown models.TaxComponentList) []TaxBreakdownLine {
	if len(breakdown) == 0 {
		return []TaxBreakdownLine{{Name: "Tax", Rate: rate, Amount: tax}}
	}

	sumRates := decimal.Zero
	for _, comp := range breakdown {
		sumRates = sumRates.Add(comp.Rate)
	}

	lines := make([]TaxBreakdownLine, len(breakdown))
	allocated := decimal.Zero
	for i, comp := range breakdown {
		var amount decimal.Decimal
		switch {
		case i == len(breakdown)-1:
			amount = tax.Sub(allocated)
		case sumRates.IsZero():
			amount = decimal.Zero
		default:
			amount = tax.Mul(comp.Rate).Div(sumRates).Round(moneyPrecision)
		}
		allocated = allocated.Add(amount)
		lines[i] = TaxBreakdownLine{Name: comp.Name, Rate: comp.Rate, Amount: amount}
	}
	return lines
}
