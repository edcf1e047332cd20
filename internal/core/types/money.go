// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors in margin math.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// FromQuantity converts a float quantity into a decimal factor for money math.
func FromQuantity(qty float64) decimal.Decimal {
	return decimal.NewFromFloat(qty)
}

// SafeRatio divides num by den, returning zero when den is zero.
// All margin/percentage divisions go through this guard; a zero denominator
// is a degenerate input, never an error.
func SafeRatio(num, den Money) Money {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
