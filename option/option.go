// Package option implements the Option Primitive of the engine: contract
// data, payoff, intrinsic value, and per-share profit and loss. It has no
// dependency on pricing or Greeks; those layers consume Options, not the
// reverse.
package option

import (
	"errors"
	"fmt"

	"github.com/johnayoung/go-optionlab/primitives"
)

var (
	// ErrInvalidVolatility indicates the implied volatility falls outside
	// (MinVolatility, MaxVolatility).
	ErrInvalidVolatility = errors.New("implied volatility out of bounds")
	// ErrInvalidQuantity indicates a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidUnderlyingPrice indicates a zero or negative underlying price.
	ErrInvalidUnderlyingPrice = errors.New("underlying price must be positive")
	// ErrUnsupportedForPricing indicates the option's OptionType is not
	// European or American and the requested operation requires one of
	// those two.
	ErrUnsupportedForPricing = errors.New("option type is not supported for pricing")
)

// ExoticParameters carries the style-specific payoff inputs needed by the
// non-vanilla OptionType variants (spec §3's "optional exotic parameters").
// Only the fields relevant to the option's declared OptionType are read;
// the rest are ignored.
type ExoticParameters struct {
	// SpotPath is the sequence of observed spot prices used by Asian
	// (averaging) payoffs.
	SpotPath []primitives.Positive
	// SpotMin / SpotMax are the running extrema used by Lookback payoffs.
	SpotMin primitives.Positive
	SpotMax primitives.Positive
	// BarrierLevel is the trigger price used by Barrier payoffs.
	BarrierLevel primitives.Positive
	// CashPayout is the fixed amount paid by a Binary (cash-or-nothing)
	// option when it expires in the money.
	CashPayout primitives.Positive
	// ExerciseDates lists the exercise window for a Bermudan option.
	ExerciseDates []primitives.Time
}

// Options describes one option contract: strike, style, side, market
// inputs, and (for exotic variants) style-specific parameters. It is the
// leaf data structure every pricing, Greeks, and payoff computation reads.
type Options struct {
	OptionType        primitives.OptionType
	Side              primitives.Side
	UnderlyingSymbol  string
	StrikePrice       primitives.Positive
	ExpirationDate    primitives.ExpirationDate
	ImpliedVolatility primitives.Positive
	Quantity          primitives.Positive
	UnderlyingPrice   primitives.Positive
	RiskFreeRate      primitives.Decimal
	OptionStyle       primitives.OptionStyle
	DividendYield     primitives.Positive
	Exotic            ExoticParameters
}

// Params bundles the constructor inputs for New, mirroring the field list
// above so call sites read as a single record literal.
type Params struct {
	OptionType        primitives.OptionType
	Side              primitives.Side
	UnderlyingSymbol  string
	StrikePrice       primitives.Positive
	ExpirationDate    primitives.ExpirationDate
	ImpliedVolatility primitives.Positive
	Quantity          primitives.Positive
	UnderlyingPrice   primitives.Positive
	RiskFreeRate      primitives.Decimal
	OptionStyle       primitives.OptionStyle
	DividendYield     primitives.Positive
	Exotic            ExoticParameters
}

// New constructs an Options contract, validating every invariant from
// spec §3: option style and type must be recognized, implied volatility
// must fall in (MinVolatility, MaxVolatility), quantity and underlying
// price must be strictly positive. A zero strike is permitted (used by
// CoveredCall/ProtectivePut to model a long stock leg as a zero-strike
// long call) only when the caller opts in via AllowZeroStrike.
func New(p Params) (*Options, error) {
	return newOptions(p, false)
}

// NewAllowZeroStrike is New but additionally permits StrikePrice to be
// zero, for strategies that model a stock leg as a degenerate option.
func NewAllowZeroStrike(p Params) (*Options, error) {
	return newOptions(p, true)
}

func newOptions(p Params, allowZeroStrike bool) (*Options, error) {
	if !p.OptionStyle.Valid() {
		return nil, fmt.Errorf("invalid option style %q", p.OptionStyle)
	}
	if !p.Side.Valid() {
		return nil, fmt.Errorf("invalid side %q", p.Side)
	}
	if !p.OptionType.Valid() {
		return nil, fmt.Errorf("invalid option type %q", p.OptionType)
	}
	if p.StrikePrice.IsZero() && !allowZeroStrike {
		return nil, errors.New("strike price must be positive")
	}
	if p.Quantity.IsZero() {
		return nil, ErrInvalidQuantity
	}
	if p.UnderlyingPrice.IsZero() {
		return nil, ErrInvalidUnderlyingPrice
	}
	if p.ImpliedVolatility.LessThan(primitives.MinVolatility) ||
		p.ImpliedVolatility.GreaterThan(primitives.MaxVolatility) {
		return nil, fmt.Errorf("%w: %s not in (%s, %s)", ErrInvalidVolatility,
			p.ImpliedVolatility.String(), primitives.MinVolatility.String(), primitives.MaxVolatility.String())
	}

	o := Options(p)
	return &o, nil
}

// TimeToExpiration returns the non-negative time to expiry in years.
func (o *Options) TimeToExpiration() primitives.Positive {
	return o.ExpirationDate.YearsFrom(primitives.Now())
}

// IsInTheMoney reports whether the option is in the money at its current
// UnderlyingPrice: Call when S >= K, Put when S <= K.
func (o *Options) IsInTheMoney() bool {
	return o.IsInTheMoneyAt(o.UnderlyingPrice)
}

// IsInTheMoneyAt reports whether the option would be in the money at the
// given spot price S.
func (o *Options) IsInTheMoneyAt(s primitives.Positive) bool {
	if o.OptionStyle == primitives.Call {
		return s.GreaterThanOrEqual(o.StrikePrice)
	}
	return s.LessThanOrEqual(o.StrikePrice)
}

// IntrinsicValue returns the per-share intrinsic value at spot price S,
// before applying side and quantity. For vanilla European/American
// options this is max(S-K,0) for calls and max(K-S,0) for puts; exotic
// styles dispatch to their own payoff rule (see exotic.go).
func (o *Options) IntrinsicValue(s primitives.Positive) (primitives.Positive, error) {
	if o.OptionType.SupportedForPricing() {
		return o.vanillaIntrinsic(s), nil
	}
	return o.exoticIntrinsic(s)
}

func (o *Options) vanillaIntrinsic(s primitives.Positive) primitives.Positive {
	if o.OptionStyle == primitives.Call {
		diff, err := s.Sub(o.StrikePrice)
		if err != nil {
			return primitives.Zero()
		}
		return diff
	}
	diff, err := o.StrikePrice.Sub(s)
	if err != nil {
		return primitives.Zero()
	}
	return diff
}

// Payoff returns the signed per-contract payoff at the option's current
// UnderlyingPrice: intrinsic value scaled by quantity, negated for Short.
func (o *Options) Payoff() (primitives.Decimal, error) {
	return o.PayoffAt(o.UnderlyingPrice)
}

// PayoffAt returns the signed per-contract payoff at an arbitrary spot
// price S: intrinsic(S) * quantity, with sign flipped for Short.
func (o *Options) PayoffAt(s primitives.Positive) (primitives.Decimal, error) {
	intrinsic, err := o.IntrinsicValue(s)
	if err != nil {
		return primitives.Decimal{}, err
	}
	signed := intrinsic.MulDecimal(o.Quantity.Decimal())
	return signed.Mul(o.Side.Sign()), nil
}

// PnL returns the per-contract profit or loss at spot price S given the
// premium paid (Long) or received (Short) per share: a long holder nets
// intrinsic(S) minus the premium paid; a short writer nets the premium
// received minus intrinsic(S) owed. Both reduce to
// (intrinsic(S) - premium) * side-sign, scaled by quantity.
func (o *Options) PnL(s primitives.Positive, premiumPerShare primitives.Positive) (primitives.Decimal, error) {
	intrinsic, err := o.IntrinsicValue(s)
	if err != nil {
		return primitives.Decimal{}, err
	}
	perShare := intrinsic.Decimal().Sub(premiumPerShare.Decimal()).Mul(o.Side.Sign())
	return perShare.Mul(o.Quantity.Decimal()), nil
}

// SignedQuantity returns Quantity with Side's sign applied, used to scale
// aggregate Greeks across a multi-leg strategy.
func (o *Options) SignedQuantity() primitives.Decimal {
	return o.Quantity.Decimal().Mul(o.Side.Sign())
}
