// Package primitives provides the decimal-safe scalar types shared by every
// layer of the options engine: a signed Decimal for quantities that may go
// negative (the risk-free rate, net deltas) and a non-negative Positive for
// everything that must not (strikes, premiums, volatilities, probabilities).
//
// All financial and probability arithmetic in this module routes through
// these two types so floating-point error never leaks into a reported
// price, Greek, or break-even point.
package primitives

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDecimal indicates a string could not be parsed as a decimal.
	ErrInvalidDecimal = errors.New("invalid decimal value")
	// ErrDivisionByZero indicates an attempted division by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Decimal wraps shopspring/decimal.Decimal for signed financial quantities
// (e.g. the risk-free rate, net Greeks) that are permitted to be negative.
type Decimal struct {
	value decimal.Decimal
}

// NewDecimal creates a Decimal from an int64.
func NewDecimal(value int64) Decimal {
	return Decimal{value: decimal.NewFromInt(value)}
}

// NewDecimalFromFloat creates a Decimal from a float64.
// Prefer NewDecimalFromString when the source is external/untrusted data.
func NewDecimalFromFloat(value float64) Decimal {
	return Decimal{value: decimal.NewFromFloat(value)}
}

// NewDecimalFromString parses a Decimal from its string representation.
func NewDecimalFromString(value string) (Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %s", ErrInvalidDecimal, err)
	}
	return Decimal{value: d}, nil
}

// MustDecimalFromString parses a Decimal, panicking on failure.
// Only use for known-valid constants.
func MustDecimalFromString(value string) Decimal {
	d, err := NewDecimalFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

// DecimalZero returns the Decimal zero value.
func DecimalZero() Decimal { return Decimal{value: decimal.Zero} }

// DecimalOne returns the Decimal one value.
func DecimalOne() Decimal { return Decimal{value: decimal.NewFromInt(1)} }

// Add returns d+other.
func (d Decimal) Add(other Decimal) Decimal { return Decimal{value: d.value.Add(other.value)} }

// Sub returns d-other.
func (d Decimal) Sub(other Decimal) Decimal { return Decimal{value: d.value.Sub(other.value)} }

// Mul returns d*other.
func (d Decimal) Mul(other Decimal) Decimal { return Decimal{value: d.value.Mul(other.value)} }

// Div returns d/other, or ErrDivisionByZero if other is zero.
func (d Decimal) Div(other Decimal) (Decimal, error) {
	if other.value.IsZero() {
		return Decimal{}, ErrDivisionByZero
	}
	return Decimal{value: d.value.Div(other.value)}, nil
}

// Neg returns -d.
func (d Decimal) Neg() Decimal { return Decimal{value: d.value.Neg()} }

// Abs returns |d|.
func (d Decimal) Abs() Decimal { return Decimal{value: d.value.Abs()} }

// IsZero reports whether d is zero.
func (d Decimal) IsZero() bool { return d.value.IsZero() }

// IsNegative reports whether d < 0.
func (d Decimal) IsNegative() bool { return d.value.IsNegative() }

// IsPositive reports whether d > 0.
func (d Decimal) IsPositive() bool { return d.value.IsPositive() }

// GreaterThan reports whether d > other.
func (d Decimal) GreaterThan(other Decimal) bool { return d.value.GreaterThan(other.value) }

// GreaterThanOrEqual reports whether d >= other.
func (d Decimal) GreaterThanOrEqual(other Decimal) bool {
	return d.value.GreaterThanOrEqual(other.value)
}

// LessThan reports whether d < other.
func (d Decimal) LessThan(other Decimal) bool { return d.value.LessThan(other.value) }

// LessThanOrEqual reports whether d <= other.
func (d Decimal) LessThanOrEqual(other Decimal) bool { return d.value.LessThanOrEqual(other.value) }

// Equal reports whether d == other.
func (d Decimal) Equal(other Decimal) bool { return d.value.Equal(other.value) }

// Round rounds d to the given number of decimal places.
func (d Decimal) Round(places int32) Decimal { return Decimal{value: d.value.Round(places)} }

// Float64 returns the float64 approximation of d. Use only at the boundary
// to a transcendental computation (exp, ln, sqrt, Φ) or for display.
func (d Decimal) Float64() float64 {
	f, _ := d.value.Float64()
	return f
}

// String returns the canonical decimal string representation of d.
func (d Decimal) String() string { return d.value.String() }

// Raw exposes the underlying shopspring/decimal.Decimal for interop with
// code outside this module that already speaks that type.
func (d Decimal) Raw() decimal.Decimal { return d.value }
