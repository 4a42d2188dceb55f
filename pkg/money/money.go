// Package money provides exact decimal arithmetic for all ledger amounts.
// Amounts are stored and displayed with two fractional digits; intermediate
// percentage math keeps full precision and is rounded at the boundary.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
)

// Money is an exact decimal amount. Binary floating point is never used for
// ledger arithmetic.
type Money = decimal.Decimal

var hundred = decimal.NewFromInt(100)

// Zero returns a zero amount.
func Zero() Money {
	return decimal.Zero
}

// FromInt returns an amount of whole units.
func FromInt(n int64) Money {
	return decimal.NewFromInt(n)
}

// Parse converts user input to an amount. An empty string parses as zero,
// matching form fields the user left blank.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.ErrInvalidAmount
	}
	return d, nil
}

// ParseNonNegative parses an amount and rejects negative values. Used where
// zero is meaningful, such as waiver flat amounts.
func ParseNonNegative(s string) (Money, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, apperror.ErrInvalidAmount
	}
	return d, nil
}

// ParsePositive parses an amount and rejects zero and negative values. Used
// for charges and payments.
func ParsePositive(s string) (Money, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, apperror.ErrInvalidAmount
	}
	return d, nil
}

// Percent returns base * pct / 100 at full precision.
func Percent(base, pct Money) Money {
	return base.Mul(pct).Div(hundred)
}

// Format renders an amount with exactly two decimal places.
func Format(m Money) string {
	return m.StringFixed(2)
}

// ClipZero returns the amount, floored at zero. Report listings treat only
// positive balances as overdue.
func ClipZero(m Money) Money {
	if m.IsNegative() {
		return decimal.Zero
	}
	return m
}
