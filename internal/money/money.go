// Package money provides integer minor-unit arithmetic for currency amounts.
//
// All amounts inside the service are held as Paise (1/100 of a currency
// unit). Decimal values only exist at the API boundary, where they are
// converted exactly using shopspring/decimal. This avoids floating-point
// drift in split and balance math (e.g. 100/3*3 != 100 in naive floats).
package money

import (
	"github.com/shopspring/decimal"
)

// Paise is a currency amount in minor units (1 Paise = 0.01).
type Paise int64

// Tolerance is the threshold below which two amounts are considered equal.
// Balance and allocation-sum comparisons use this, never exact equality.
const Tolerance Paise = 1

var hundred = decimal.NewFromInt(100)

// FromFloat converts a decimal amount (e.g. 123.45) to Paise,
// rounding to the nearest minor unit.
func FromFloat(amount float64) Paise {
	return FromDecimal(decimal.NewFromFloat(amount))
}

// FromDecimal converts a decimal amount to Paise, rounding to the
// nearest minor unit.
func FromDecimal(d decimal.Decimal) Paise {
	return Paise(d.Mul(hundred).Round(0).IntPart())
}

// Decimal returns the amount as an exact two-decimal value.
func (p Paise) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

// Float64 returns the amount as a float64 with two decimal digits.
// Safe for JSON responses: every whole-paise amount below 2^52 is
// exactly representable.
func (p Paise) Float64() float64 {
	return p.Decimal().InexactFloat64()
}

// String formats the amount with exactly two decimal places.
func (p Paise) String() string {
	return p.Decimal().StringFixed(2)
}

// Abs returns the absolute value.
func (p Paise) Abs() Paise {
	if p < 0 {
		return -p
	}
	return p
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b Paise) bool {
	return (a - b).Abs() <= Tolerance
}
