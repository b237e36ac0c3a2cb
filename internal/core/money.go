// Package core implements the financial derivation engine: the pure
// computations that turn raw ledger entities into the derived figures shown
// to the user. Nothing in this package reads a clock, touches storage, or
// keeps state between calls; every function is deterministic in its inputs.
//
// This file contains money parsing helpers. Amounts are fixed-point decimals
// throughout; only the amortization projection uses floating point, and that
// is documented on Project.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-supplied decimal string into a positive
// amount, rounded half-up to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for empty, malformed, negative, or zero input.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if d.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseBalance is ParseAmount with zero allowed: asset values, amounts owed
// and saved-so-far figures may legitimately be zero.
func ParseBalance(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Round(2), nil
}

// ParseRate converts a user-supplied percentage string into a non-negative
// decimal. Unlike ParseAmount, zero is valid: an interest-free debt is a
// normal input.
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil || d.Sign() < 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

var oneHundred = decimal.NewFromInt(100)

// Percentage returns amount/total*100 rounded to one decimal place.
// A zero total yields zero rather than an error: an empty ledger is a
// normal state, not a fault.
func Percentage(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(total).Mul(oneHundred).Round(1)
}
