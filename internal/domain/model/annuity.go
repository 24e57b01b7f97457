package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Powers of (1+r) are evaluated in float64 and converted back to decimal for
// the monetary multiplication, so identical inputs always yield identical
// decimals.

// MonthlyRate converts an annual rate (e.g. 0.04) to a monthly float64 rate.
func MonthlyRate(annualRate decimal.Decimal) float64 {
	return annualRate.InexactFloat64() / 12.0
}

// PresentValue returns the principal that a level monthly payment services
// over the given number of periods:
//
//	PV = |pmt| * (1 - (1+r)^-n) / r
//
// Non-positive periods yield zero; a zero rate degrades to pmt * n.
func PresentValue(payment decimal.Decimal, monthlyRate float64, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	if monthlyRate == 0 {
		return payment.Abs().Mul(decimal.NewFromInt(int64(periods)))
	}
	factor := (1 - math.Pow(1+monthlyRate, -float64(periods))) / monthlyRate
	return payment.Abs().Mul(decimal.NewFromFloat(factor))
}

// AmortizedPayment returns the level monthly payment that repays principal
// over the given number of periods:
//
//	payment = |P * r * (1+r)^n / ((1+r)^n - 1)|
//
// A non-positive principal or period count yields zero; a zero rate degrades
// to an even split.
func AmortizedPayment(principal decimal.Decimal, monthlyRate float64, periods int) decimal.Decimal {
	if periods <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(periods)))
	}
	growth := math.Pow(1+monthlyRate, float64(periods))
	return principal.Mul(decimal.NewFromFloat(monthlyRate * growth / (growth - 1))).Abs()
}
