// Package deltaneutral reports a strategy's aggregate delta exposure and
// suggests leg-quantity adjustments to bring it toward zero, per spec
// §4.8.
package deltaneutral

import (
	"github.com/johnayoung/go-optionlab/greeks"
	"github.com/johnayoung/go-optionlab/primitives"
	"github.com/johnayoung/go-optionlab/strategy"
)

// NeutralityThreshold is the |net_delta| bound below which a strategy is
// considered delta-neutral, per spec §4.8.
var NeutralityThreshold = primitives.MustPositive(primitives.NewDecimalFromFloat(1e-4))

// NetDeltaReport is spec §4.8's calculate_net_delta result.
type NetDeltaReport struct {
	NetDelta          primitives.Decimal
	IndividualDeltas  []primitives.Decimal
	IsNeutral         bool
	UnderlyingPrice   primitives.Positive
	NeutralityThreshold primitives.Positive
}

// CalculateNetDelta sums each leg's signed-quantity-scaled delta and
// reports whether the total falls within NeutralityThreshold of zero.
func CalculateNetDelta(s *strategy.Strategy) (NetDeltaReport, error) {
	legs := s.GetPositions()
	individual := make([]primitives.Decimal, 0, len(legs))
	net := primitives.DecimalZero()
	for _, leg := range legs {
		g, err := leg.Greeks()
		if err != nil {
			return NetDeltaReport{}, err
		}
		individual = append(individual, g.Delta)
		net = net.Add(g.Delta)
	}
	return NetDeltaReport{
		NetDelta:            net,
		IndividualDeltas:    individual,
		IsNeutral:           net.Abs().LessThan(NeutralityThreshold.Decimal()),
		UnderlyingPrice:     s.GetUnderlyingPrice(),
		NeutralityThreshold: NeutralityThreshold,
	}, nil
}

// Adjustment is one of BuyOptions, SellOptions, or NoAdjustmentNeeded —
// spec §4.8's DeltaAdjustment variants.
type Adjustment struct {
	Kind     AdjustmentKind
	Quantity primitives.Positive
	Strike   primitives.Positive
	Style    primitives.OptionStyle
	Side     primitives.Side
}

// AdjustmentKind distinguishes the three DeltaAdjustment variants.
type AdjustmentKind int

const (
	NoAdjustmentNeeded AdjustmentKind = iota
	BuyOptions
	SellOptions
)

// SuggestAdjustments proposes, for each leg the strategy is willing to
// adjust (strategy.AdjustableLegs), the quantity of that leg to buy or
// sell to move net delta toward zero: |net_delta| / |delta_leg| per spec
// §4.8. If the strategy is already neutral, the sole suggestion is
// NoAdjustmentNeeded.
func SuggestAdjustments(s *strategy.Strategy) ([]Adjustment, error) {
	report, err := CalculateNetDelta(s)
	if err != nil {
		return nil, err
	}
	if report.IsNeutral {
		return []Adjustment{{Kind: NoAdjustmentNeeded}}, nil
	}

	var suggestions []Adjustment
	for _, leg := range s.AdjustableLegs() {
		legGreeks, err := greeks.Compute(leg.Option)
		if err != nil {
			return nil, err
		}
		if legGreeks.Delta.IsZero() {
			continue
		}
		qty, err := adjustmentQuantity(report.NetDelta, legGreeks.Delta)
		if err != nil {
			continue
		}
		kind := directionFor(report.NetDelta, legGreeks.Delta, leg.Option.Side)
		suggestions = append(suggestions, Adjustment{
			Kind:     kind,
			Quantity: qty,
			Strike:   leg.Option.StrikePrice,
			Style:    leg.Option.OptionStyle,
			Side:     leg.Option.Side,
		})
	}
	if len(suggestions) == 0 {
		return nil, ErrNoAdjustableLeg
	}
	return suggestions, nil
}

// adjustmentQuantity computes |net_delta| / |delta_leg|, per spec §4.8: the
// number of additional contracts of this leg's per-share delta needed to
// drive net delta to zero. legDeltaPerShare is unscaled by the leg's own
// quantity, so the result is already in "contracts to trade" units and is
// not multiplied by the leg's existing quantity again.
func adjustmentQuantity(netDelta, legDeltaPerShare primitives.Decimal) (primitives.Positive, error) {
	ratio, err := netDelta.Abs().Div(legDeltaPerShare.Abs())
	if err != nil {
		return primitives.Positive{}, err
	}
	return primitives.NewPositive(ratio)
}

// directionFor reports whether offsetting net delta via this leg means
// buying or selling options at its strike. A leg whose signed delta
// reinforces net delta is reduced (a long leg is sold, a short leg bought
// back); a leg whose signed delta offsets net delta is enlarged in its own
// direction (a long leg is bought, a short leg sold).
func directionFor(netDelta, legDeltaPerShare primitives.Decimal, side primitives.Side) AdjustmentKind {
	signedLegDelta := legDeltaPerShare.Mul(side.Sign())
	wouldIncreaseNetDelta := netDelta.IsPositive() == signedLegDelta.IsPositive()
	enlargeLeg := !wouldIncreaseNetDelta
	if enlargeLeg == (side == primitives.Long) {
		return BuyOptions
	}
	return SellOptions
}
