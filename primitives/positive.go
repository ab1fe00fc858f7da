package primitives

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeValue indicates an attempt to construct a Positive from a
	// negative decimal.
	ErrNegativeValue = errors.New("value must be non-negative")
	// errSubtractionUnderflow is the panic payload for MustSub, the single
	// permitted abort path in this module (spec: caller misuse of the
	// Positive invariant, not a recoverable runtime condition).
	errSubtractionUnderflow = "Resulting value must be positive"
)

// Positive wraps an arbitrary-precision decimal that is guaranteed to be
// >= 0 at every observation point, plus a saturating infinity sentinel used
// by strategies whose max profit or max loss is unbounded.
//
// Every constructor validates the invariant; every operator that could
// produce a negative result (Sub) returns an error rather than silently
// clamping or panicking, except MustSub, which exists for call sites that
// have already proven the subtraction is safe.
type Positive struct {
	value decimal.Decimal
	inf   bool
}

// NewPositive constructs a Positive from a Decimal, rejecting negative
// values.
func NewPositive(value Decimal) (Positive, error) {
	if value.IsNegative() {
		return Positive{}, ErrNegativeValue
	}
	return Positive{value: value.value}, nil
}

// MustPositive constructs a Positive, panicking on a negative input. Only
// use for known-valid constants.
func MustPositive(value Decimal) Positive {
	p, err := NewPositive(value)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPositiveFromFloat constructs a Positive from a float64, rejecting
// negative values.
func NewPositiveFromFloat(value float64) (Positive, error) {
	return NewPositive(NewDecimalFromFloat(value))
}

// NewPositiveFromInt constructs a Positive from a non-negative int64.
func NewPositiveFromInt(value int64) (Positive, error) {
	return NewPositive(NewDecimal(value))
}

// MustPositiveFromInt constructs a Positive from a non-negative int64,
// panicking on a negative input. Only use for known-valid constants.
func MustPositiveFromInt(value int64) Positive {
	return MustPositive(NewDecimal(value))
}

// NewPositiveFromString parses a Positive from its string representation.
// The literal "infinity" (case-insensitive) produces PositiveInfinity().
func NewPositiveFromString(value string) (Positive, error) {
	if isInfinityLiteral(value) {
		return PositiveInfinity(), nil
	}
	d, err := NewDecimalFromString(value)
	if err != nil {
		return Positive{}, err
	}
	return NewPositive(d)
}

func isInfinityLiteral(s string) bool {
	switch s {
	case "infinity", "Infinity", "INFINITY", "\"infinity\"":
		return true
	default:
		return false
	}
}

// Named constants, per spec §3.
var (
	// zeroPositive is the additive identity, returned by Zero().
	zeroPositive = Positive{value: decimal.Zero}
)

// Zero returns Positive(0).
func Zero() Positive { return zeroPositive }

// One returns Positive(1).
func One() Positive { return Positive{value: decimal.NewFromInt(1)} }

// Two returns Positive(2).
func Two() Positive { return Positive{value: decimal.NewFromInt(2)} }

// Ten returns Positive(10).
func Ten() Positive { return Positive{value: decimal.NewFromInt(10)} }

// Hundred returns Positive(100).
func Hundred() Positive { return Positive{value: decimal.NewFromInt(100)} }

// Thousand returns Positive(1000).
func Thousand() Positive { return Positive{value: decimal.NewFromInt(1000)} }

// Pi returns Positive(π) at float64 precision (3.141592653589793).
func Pi() Positive { return Positive{value: decimal.NewFromFloat(math.Pi)} }

// PositiveInfinity returns the saturating infinity sentinel.
func PositiveInfinity() Positive { return Positive{inf: true} }

// IsInfinite reports whether p is the saturating infinity sentinel.
func (p Positive) IsInfinite() bool { return p.inf }

// Decimal returns the underlying signed Decimal view. Calling this on
// PositiveInfinity() returns Decimal zero; check IsInfinite first.
func (p Positive) Decimal() Decimal {
	if p.inf {
		return DecimalZero()
	}
	return Decimal{value: p.value}
}

// Add returns p+other. Infinity absorbs any finite operand.
func (p Positive) Add(other Positive) Positive {
	if p.inf || other.inf {
		return PositiveInfinity()
	}
	return Positive{value: p.value.Add(other.value)}
}

// Sub returns p-other, or an error if the result would be negative.
// Subtracting from infinity remains infinite unless other is also
// infinite, which is undefined and reported as an error.
func (p Positive) Sub(other Positive) (Positive, error) {
	if p.inf && !other.inf {
		return PositiveInfinity(), nil
	}
	if p.inf && other.inf {
		return Positive{}, fmt.Errorf("%s: infinity minus infinity is undefined", errSubtractionUnderflow)
	}
	if other.inf {
		return Positive{}, fmt.Errorf("%s: cannot subtract infinity from a finite value", errSubtractionUnderflow)
	}
	result := p.value.Sub(other.value)
	if result.IsNegative() {
		return Positive{}, fmt.Errorf("%s: %s - %s", errSubtractionUnderflow, p.value.String(), other.value.String())
	}
	return Positive{value: result}, nil
}

// MustSub returns p-other, panicking if the result would be negative. This
// is the single permitted abort path in the module: the type invariant is
// being violated by caller misuse, not by external input.
func (p Positive) MustSub(other Positive) Positive {
	result, err := p.Sub(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Mul returns p*other.
func (p Positive) Mul(other Positive) Positive {
	if p.inf || other.inf {
		if p.IsZero() || other.IsZero() {
			return Zero()
		}
		return PositiveInfinity()
	}
	return Positive{value: p.value.Mul(other.value)}
}

// MulDecimal multiplies p by a signed Decimal, used for quantity*signed-sign
// style computations (e.g. a negated PnL leg). The product is a signed
// Decimal and may be negative; no error is reported. An infinite p
// saturates to ±math.MaxFloat64 (zero when factor is zero), since Decimal
// cannot represent infinity.
func (p Positive) MulDecimal(factor Decimal) Decimal {
	if p.inf {
		if factor.IsZero() {
			return DecimalZero()
		}
		sign := NewDecimalFromFloat(math.MaxFloat64)
		if factor.IsNegative() {
			sign = sign.Neg()
		}
		return sign
	}
	return Decimal{value: p.value}.Mul(factor)
}

// Div returns p/other, or ErrDivisionByZero if other is zero.
func (p Positive) Div(other Positive) (Positive, error) {
	if other.IsZero() {
		return Positive{}, ErrDivisionByZero
	}
	if p.inf {
		return PositiveInfinity(), nil
	}
	if other.inf {
		return Zero(), nil
	}
	return Positive{value: p.value.Div(other.value)}, nil
}

// Pow returns p raised to the power exp.
func (p Positive) Pow(exp Decimal) Positive {
	if p.inf {
		return PositiveInfinity()
	}
	result := math.Pow(p.toFloat(), exp.Float64())
	return clampFloat(result)
}

// Sqrt returns the square root of p.
func (p Positive) Sqrt() Positive {
	if p.inf {
		return PositiveInfinity()
	}
	return clampFloat(math.Sqrt(p.toFloat()))
}

// Ln returns the natural logarithm of p as a signed Decimal. Since Decimal
// cannot represent infinity, Ln(0) saturates to -math.MaxFloat64 and the
// infinity sentinel to math.MaxFloat64.
func (p Positive) Ln() Decimal {
	if p.inf {
		return NewDecimalFromFloat(math.MaxFloat64)
	}
	v := math.Log(p.toFloat())
	if math.IsInf(v, -1) {
		return NewDecimalFromFloat(-math.MaxFloat64)
	}
	return NewDecimalFromFloat(v)
}

// Exp returns e^p.
func (p Positive) Exp() Positive {
	if p.inf {
		return PositiveInfinity()
	}
	return clampFloat(math.Exp(p.toFloat()))
}

// Round rounds p to the given number of decimal places.
func (p Positive) Round(places int32) Positive {
	if p.inf {
		return p
	}
	return Positive{value: p.value.Round(places)}
}

// Floor rounds p down to the nearest integer.
func (p Positive) Floor() Positive {
	if p.inf {
		return p
	}
	return Positive{value: p.value.Floor()}
}

// Min returns the smaller of p and other.
func (p Positive) Min(other Positive) Positive {
	if p.inf {
		return other
	}
	if other.inf {
		return p
	}
	if p.value.LessThan(other.value) {
		return p
	}
	return other
}

// Max returns the larger of p and other.
func (p Positive) Max(other Positive) Positive {
	if p.inf || other.inf {
		return PositiveInfinity()
	}
	if p.value.GreaterThan(other.value) {
		return p
	}
	return other
}

// Clamp restricts p to the closed interval [lo, hi].
func (p Positive) Clamp(lo, hi Positive) Positive {
	return p.Max(lo).Min(hi)
}

// IsZero reports whether p is exactly zero.
func (p Positive) IsZero() bool { return !p.inf && p.value.IsZero() }

// GreaterThan reports whether p > other.
func (p Positive) GreaterThan(other Positive) bool {
	if p.inf && other.inf {
		return false
	}
	if p.inf {
		return true
	}
	if other.inf {
		return false
	}
	return p.value.GreaterThan(other.value)
}

// GreaterThanOrEqual reports whether p >= other.
func (p Positive) GreaterThanOrEqual(other Positive) bool {
	return p.Equal(other) || p.GreaterThan(other)
}

// LessThan reports whether p < other.
func (p Positive) LessThan(other Positive) bool { return other.GreaterThan(p) }

// LessThanOrEqual reports whether p <= other.
func (p Positive) LessThanOrEqual(other Positive) bool { return other.GreaterThanOrEqual(p) }

// Equal reports whether p == other.
func (p Positive) Equal(other Positive) bool {
	if p.inf != other.inf {
		return false
	}
	if p.inf {
		return true
	}
	return p.value.Equal(other.value)
}

// Float64 returns the float64 approximation of p. math.Inf(1) for the
// infinity sentinel.
func (p Positive) Float64() float64 {
	if p.inf {
		return math.Inf(1)
	}
	f, _ := p.value.Float64()
	return f
}

func (p Positive) toFloat() float64 {
	f, _ := p.value.Float64()
	return f
}

func clampFloat(v float64) Positive {
	if math.IsInf(v, 1) || math.IsNaN(v) {
		return PositiveInfinity()
	}
	if v < 0 {
		return Zero()
	}
	return Positive{value: decimal.NewFromFloat(v)}
}

// String returns the canonical string representation: "infinity" for the
// sentinel, otherwise the decimal's string form.
func (p Positive) String() string {
	if p.inf {
		return "infinity"
	}
	return p.value.String()
}

// MarshalJSON emits an integer when the value's scale is zero, a decimal
// number otherwise, or the literal string "infinity" for the sentinel.
func (p Positive) MarshalJSON() ([]byte, error) {
	if p.inf {
		return json.Marshal("infinity")
	}
	// decimal.Decimal.String() already renders "5" for an integral scale
	// and "5.25" otherwise, so a single code path covers both cases of the
	// "integer when scale is zero, decimal otherwise" contract.
	return []byte(p.value.String()), nil
}

// UnmarshalJSON accepts a JSON number or the literal string "infinity".
// Negative values are rejected.
func (p *Positive) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		if !isInfinityLiteral(v) {
			return fmt.Errorf("%w: unexpected string %q", ErrInvalidDecimal, v)
		}
		*p = PositiveInfinity()
		return nil
	case float64:
		d := decimal.NewFromFloat(v)
		if d.IsNegative() {
			return ErrNegativeValue
		}
		*p = Positive{value: d}
		return nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDecimal, err)
		}
		if d.IsNegative() {
			return ErrNegativeValue
		}
		*p = Positive{value: d}
		return nil
	default:
		return fmt.Errorf("%w: unsupported JSON type for Positive", ErrInvalidDecimal)
	}
}
