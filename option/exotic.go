package option

import (
	"fmt"

	"github.com/johnayoung/go-optionlab/primitives"
)

// exoticIntrinsic dispatches the handful of exotic OptionType variants the
// spec asks the primitive to at least carry parameters for (spec §1, §4.1).
// Styles with no well-defined spot-only intrinsic (Compound, Chooser,
// Rainbow, Quanto, Exchange, Power, Spread) report ErrUnsupportedForPricing
// rather than guessing at a payoff.
func (o *Options) exoticIntrinsic(s primitives.Positive) (primitives.Positive, error) {
	switch o.OptionType {
	case primitives.Asian:
		return o.asianIntrinsic(s)
	case primitives.Lookback:
		return o.lookbackIntrinsic()
	case primitives.Binary:
		return o.binaryIntrinsic(s)
	case primitives.Barrier:
		return o.barrierIntrinsic(s)
	default:
		return primitives.Positive{}, fmt.Errorf("%w: %s", ErrUnsupportedForPricing, o.OptionType)
	}
}

// asianIntrinsic averages the recorded spot path and applies the vanilla
// max(avg-K,0) / max(K-avg,0) rule against that average.
func (o *Options) asianIntrinsic(current primitives.Positive) (primitives.Positive, error) {
	path := o.Exotic.SpotPath
	if len(path) == 0 {
		path = []primitives.Positive{current}
	}
	sum := primitives.Zero()
	for _, p := range path {
		sum = sum.Add(p)
	}
	avg, err := sum.Div(primitives.MustPositiveFromInt(int64(len(path))))
	if err != nil {
		return primitives.Positive{}, err
	}
	return o.vanillaIntrinsicAgainst(avg), nil
}

// lookbackIntrinsic uses the recorded running minimum (for a put, paying
// the best price the holder could have sold at) or maximum (for a call)
// instead of a single spot observation.
func (o *Options) lookbackIntrinsic() (primitives.Positive, error) {
	if o.OptionStyle == primitives.Call {
		return o.vanillaIntrinsicAgainst(o.Exotic.SpotMax), nil
	}
	return o.vanillaIntrinsicAgainst(o.Exotic.SpotMin), nil
}

// binaryIntrinsic pays CashPayout when the option finishes in the money at
// the reference spot, zero otherwise (cash-or-nothing).
func (o *Options) binaryIntrinsic(s primitives.Positive) (primitives.Positive, error) {
	if o.IsInTheMoneyAt(s) {
		return o.Exotic.CashPayout, nil
	}
	return primitives.Zero(), nil
}

// barrierIntrinsic implements an up-and-in barrier tested against the
// single reference spot s: the vanilla payoff applies when s is at or
// above BarrierLevel; otherwise the option is worthless. A zero
// BarrierLevel means no barrier, so the vanilla payoff always applies.
// The spot path is not inspected, and knock-out barriers are not modeled.
func (o *Options) barrierIntrinsic(s primitives.Positive) (primitives.Positive, error) {
	if o.Exotic.BarrierLevel.IsZero() {
		return o.vanillaIntrinsicAgainst(s), nil
	}
	triggered := s.GreaterThanOrEqual(o.Exotic.BarrierLevel)
	if !triggered {
		return primitives.Zero(), nil
	}
	return o.vanillaIntrinsicAgainst(s), nil
}

// vanillaIntrinsicAgainst applies the ordinary call/put intrinsic formula
// against an arbitrary reference price (the current spot, a running
// average, or a running extremum), used by every exotic payoff above.
func (o *Options) vanillaIntrinsicAgainst(ref primitives.Positive) primitives.Positive {
	if o.OptionStyle == primitives.Call {
		diff, err := ref.Sub(o.StrikePrice)
		if err != nil {
			return primitives.Zero()
		}
		return diff
	}
	diff, err := o.StrikePrice.Sub(ref)
	if err != nil {
		return primitives.Zero()
	}
	return diff
}
