// Package position attaches the economics of opening and holding a
// contract — premium, fees, and the date it was opened — to an
// option.Options primitive, and reports realized and unrealized
// profit-and-loss (spec §4.4).
package position

import (
	"errors"

	"github.com/johnayoung/go-optionlab/greeks"
	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/pricing"
	"github.com/johnayoung/go-optionlab/primitives"
)

// ErrNilOption indicates a nil *option.Options was supplied to New.
var ErrNilOption = errors.New("option cannot be nil")

// Position is an option contract plus the premium paid or received when it
// was opened, the fees charged to open and close it, and the date it was
// opened.
type Position struct {
	Option   *option.Options
	Premium  primitives.Positive
	Date     primitives.Time
	OpenFee  primitives.Positive
	CloseFee primitives.Positive
}

// New constructs a Position, validating that the underlying option itself
// is non-nil and already valid (option.New/NewAllowZeroStrike enforce
// that at construction, so only nilness is re-checked here).
func New(opt *option.Options, premium primitives.Positive, date primitives.Time, openFee, closeFee primitives.Positive) (*Position, error) {
	if opt == nil {
		return nil, ErrNilOption
	}
	return &Position{Option: opt, Premium: premium, Date: date, OpenFee: openFee, CloseFee: closeFee}, nil
}

// NetCost returns the premium paid to open a Long position, or zero for a
// Short position (which receives premium rather than paying it).
func (p *Position) NetCost() primitives.Decimal {
	if p.Option.Side == primitives.Short {
		return primitives.DecimalZero()
	}
	return p.Premium.Decimal().Mul(p.Option.Quantity.Decimal())
}

// NetPremiumReceived returns the premium received for writing a Short
// position, or zero for a Long position (which pays premium rather than
// receiving it).
func (p *Position) NetPremiumReceived() primitives.Decimal {
	if p.Option.Side == primitives.Long {
		return primitives.DecimalZero()
	}
	return p.Premium.Decimal().Mul(p.Option.Quantity.Decimal())
}

// totalFees is the cost attributed to opening and closing the position,
// independent of which side paid or received the premium itself.
func (p *Position) totalFees() primitives.Decimal {
	return p.OpenFee.Decimal().Add(p.CloseFee.Decimal())
}

// PnLReport mirrors spec §4.4's {initial_income, initial_costs, unrealized,
// realized} record. Unrealized and Realized are mutually exclusive: a
// mark-to-market report (PnL) leaves Realized nil, an at-expiration report
// (PnLAtExpiration) leaves Unrealized nil — the "realized: None" /
// "unrealized: None" sentinel of spec §4.4, expressed as a Go nil pointer
// rather than a finite placeholder value.
type PnLReport struct {
	InitialIncome primitives.Decimal
	InitialCosts  primitives.Decimal
	Unrealized    *primitives.Decimal
	Realized      *primitives.Decimal
}

// PnLAtExpiration reports the realized profit/loss of the position at
// terminal price s. A zero s is priced as a zero terminal price; the
// option's current underlying price is never substituted, so callers that
// want it pass p.Option.UnderlyingPrice explicitly. InitialIncome/InitialCosts report
// the fees and premium cash flows at open; InitialCosts here is fee-only
// since the premium's effect is already folded into Realized via
// option.PnL — reporting it twice would double-count it.
func (p *Position) PnLAtExpiration(s primitives.Positive) (PnLReport, error) {
	pnl, err := p.Option.PnL(s, p.Premium)
	if err != nil {
		return PnLReport{}, err
	}
	realized := pnl.Sub(p.totalFees())

	return PnLReport{
		InitialIncome: p.NetPremiumReceived(),
		InitialCosts:  p.totalFees(),
		Unrealized:    nil,
		Realized:      &realized,
	}, nil
}

// PnL re-prices the option via Black-Scholes at the supplied market
// inputs (marketPrice, iv, and the time remaining to expiration as of
// date) and reports the unrealized mark-to-market profit/loss. A
// day-count expiration is measured from the moment of evaluation, so date
// only changes the result for an absolute-instant expiration.
func (p *Position) PnL(marketPrice primitives.Positive, date primitives.Time, iv primitives.Positive) (PnLReport, error) {
	trial := *p.Option
	trial.UnderlyingPrice = marketPrice
	trial.ImpliedVolatility = iv
	trial.Side = primitives.Long // reprice on a per-share Long basis; side is reapplied below
	if p.Option.ExpirationDate.IsAbsolute() {
		remainingDays, err := primitives.NewPositiveFromFloat(p.Option.ExpirationDate.YearsFrom(date).Float64() * primitives.DaysPerYear.Float64())
		if err != nil {
			return PnLReport{}, err
		}
		trial.ExpirationDate = primitives.ExpirationInDays(remainingDays)
	}

	theoretical, err := pricing.BlackScholes(&trial)
	if err != nil {
		return PnLReport{}, err
	}
	theoreticalMagnitude, err := primitives.NewPositiveFromFloat(theoretical.Float64())
	if err != nil {
		return PnLReport{}, err
	}

	perShare := theoreticalMagnitude.Decimal().Sub(p.Premium.Decimal()).Mul(p.Option.Side.Sign())
	unrealized := perShare.Mul(p.Option.Quantity.Decimal()).Sub(p.totalFees())

	return PnLReport{
		InitialIncome: p.NetPremiumReceived(),
		InitialCosts:  p.totalFees(),
		Unrealized:    &unrealized,
		Realized:      nil,
	}, nil
}

// Greeks returns this leg's contribution to a strategy's aggregate Greeks:
// the per-share analytic Greeks scaled by signed quantity.
func (p *Position) Greeks() (greeks.Greeks, error) {
	g, err := greeks.Compute(p.Option)
	if err != nil {
		return greeks.Greeks{}, err
	}
	return g.ScaleByLeg(p.Option), nil
}

// Validate checks the invariants spec §4.4 assigns to a Position: premium
// and fees are non-negative by construction (Positive enforces that), so
// the only remaining check is that the underlying option is present.
func (p *Position) Validate() error {
	if p.Option == nil {
		return ErrNilOption
	}
	return nil
}
