// Package core holds the domain model shared by every layer: entities,
// exact-decimal money, and calendar date arithmetic.
//
// Monetary amounts are decimal end to end. Binary floating point is never
// used for balances or aggregation; float64 appears only at the display
// boundary (percentages, rates).
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal monetary amount.
type Money struct {
	decimal.Decimal
}

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotFound      = errors.New("not found")
)

// Zero is the zero amount.
var Zero = Money{decimal.Zero}

// NewMoney builds an amount from integer units and cents, e.g. NewMoney(12, 34) = 12.34.
func NewMoney(units int64, cents int64) Money {
	return Money{decimal.New(units*100+cents, -2)}
}

// MoneyFromDecimal wraps a decimal value.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// ParseMoney parses a decimal string. Both dot and comma decimal separators
// are accepted; the value must be non-negative.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Zero, ErrInvalidAmount
	}
	return Money{d}, nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{m.Decimal.Sub(o.Decimal)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// Cmp compares two amounts: -1 if m < o, 0 if equal, +1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.Decimal.Cmp(o.Decimal)
}

// PercentOf returns m as a percentage of total, as a display value.
// A zero total yields 0 by contract, never NaN.
func (m Money) PercentOf(total Money) float64 {
	if total.IsZero() {
		return 0
	}
	return m.Decimal.Div(total.Decimal).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// Float64 returns the amount as float64 for display purposes only.
func (m Money) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// MarshalJSON renders the amount as a JSON number with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Decimal = d
	return nil
}

// Validate rejects negative amounts. Zero is allowed: balances and goal
// progress legitimately start at zero.
func (m Money) Validate() error {
	if m.Decimal.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
