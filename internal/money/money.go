package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units (cents for USD) paired with an
// ISO 4217 currency code. All internal arithmetic happens in minor units;
// providers that want major-unit strings convert at their own boundary.
type Money struct {
	amount   int64
	currency string
}

func New(minorUnits int64, currency string) Money {
	return Money{amount: minorUnits, currency: currency}
}

// FromMajorUnits converts a major-unit amount (e.g. 2850.00 USD) into Money,
// rounding half away from zero at the second decimal place.
func FromMajorUnits(v float64, currency string) Money {
	minor := decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0)
	return Money{amount: minor.IntPart(), currency: currency}
}

func FromMajorString(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	minor := d.Mul(decimal.NewFromInt(100)).Round(0)
	return Money{amount: minor.IntPart(), currency: currency}, nil
}

func (m Money) MinorUnits() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// MajorString renders the amount in major units with two decimal places,
// the form PayPal's orders API expects ("2850.00").
func (m Money) MajorString() string {
	return decimal.New(m.amount, -2).StringFixed(2)
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}

	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

func (m Money) Mul(n int64) Money {
	return Money{amount: m.amount * n, currency: m.currency}
}

func (m Money) IsPositive() bool {
	return m.amount > 0
}

func (m Money) Equal(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.MajorString(), m.currency)
}
