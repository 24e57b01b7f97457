package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// SGD is the currency every eligibility figure is quoted in.
var SGD = Currency{code: "SGD"}

var symbols = map[string]string{
	"SGD": "S$",
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// Symbol returns the display prefix for the currency.
func (c Currency) Symbol() string {
	if s, ok := symbols[c.code]; ok {
		return s
	}
	return c.code + " "
}

// Money represents an immutable monetary amount with currency.
// Fields are unexported to enforce immutability.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Zero returns a Money value of zero in the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Parse reads a user-entered amount such as "1,200,000", "S$8,000.50" or
// "SGD 500". Grouping commas and a leading symbol or code for the given
// currency are ignored. An empty string is zero.
func Parse(raw string, currency Currency) (Money, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, currency.code)
	if sym, ok := symbols[currency.code]; ok {
		s = strings.TrimPrefix(s, sym)
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Zero(currency), nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q", raw)
	}
	return Money{amount: d, currency: currency}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Round returns m rounded half away from zero to the currency's minor unit.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(2), currency: m.currency}
}

// Format renders the amount for display with grouping, e.g. "S$1,234,567.89".
func (m Money) Format() string {
	fixed := m.amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if m.amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(m.currency.Symbol())
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
