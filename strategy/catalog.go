package strategy

import (
	"sort"

	"github.com/johnayoung/go-optionlab/position"
	"github.com/johnayoung/go-optionlab/primitives"
)

// Kind identifies one entry in spec §4.6's strategy catalog. Each Kind
// fixes the arity and role of its legs; catalogEntry below supplies the
// closed-form break-even/max-profit/max-loss rules specific to that shape.
type Kind string

const (
	LongCall             Kind = "long_call"
	ShortCall            Kind = "short_call"
	LongPut              Kind = "long_put"
	ShortPut             Kind = "short_put"
	BullCallSpread       Kind = "bull_call_spread"
	BearCallSpread       Kind = "bear_call_spread"
	BullPutSpread        Kind = "bull_put_spread"
	BearPutSpread        Kind = "bear_put_spread"
	LongStraddle         Kind = "long_straddle"
	ShortStraddle        Kind = "short_straddle"
	LongStrangle         Kind = "long_strangle"
	ShortStrangle        Kind = "short_strangle"
	LongButterflySpread  Kind = "long_butterfly_spread"
	ShortButterflySpread Kind = "short_butterfly_spread"
	IronCondor           Kind = "iron_condor"
	IronButterfly        Kind = "iron_butterfly"
	CallButterfly        Kind = "call_butterfly"
	CoveredCall          Kind = "covered_call"
	ProtectivePut        Kind = "protective_put"
	Collar               Kind = "collar"
	PoorMansCoveredCall  Kind = "poor_mans_covered_call"
)

// catalogEntry supplies the shape-specific rules spec §4.6 assigns to one
// strategy Kind. Legs are always passed in the canonical order the
// constructor for that Kind assembles them in (see constructors.go).
type catalogEntry struct {
	arity      int
	validate   func(legs []*position.Position) bool
	breakEven  func(legs []*position.Position) ([]primitives.Positive, error)
	maxProfit  func(legs []*position.Position) (primitives.Positive, error)
	maxLoss    func(legs []*position.Position) (primitives.Positive, error)
	adjustable func(legs []*position.Position) []*position.Position
}

// netPremium sums each leg's net cost (debit) minus net premium received
// (credit): positive means the combination is a net debit, negative a net
// credit, matching the sign convention spec §4.6's worked examples use
// ("short-straddle max profit equals total net premium received").
func netPremium(legs []*position.Position) primitives.Decimal {
	total := primitives.DecimalZero()
	for _, leg := range legs {
		total = total.Add(leg.NetCost()).Sub(leg.NetPremiumReceived())
	}
	return total
}

// positiveOrZero clamps a Decimal that is expected to be non-negative for
// a valid strategy shape down to zero rather than erroring. A negative
// result here means premiums that don't cover the strategy's structural
// cost; validate() checks leg shape only, so such legs are accepted and
// the affected figure reports zero.
func positiveOrZero(d primitives.Decimal) primitives.Positive {
	p, err := primitives.NewPositive(d)
	if err != nil {
		return primitives.Zero()
	}
	return p
}

func strikeWidth(a, b primitives.Positive) primitives.Decimal {
	return b.Decimal().Sub(a.Decimal()).Abs()
}

func sortedStrikes(legs []*position.Position) []primitives.Positive {
	strikes := make([]primitives.Positive, len(legs))
	for i, leg := range legs {
		strikes[i] = leg.Option.StrikePrice
	}
	sort.Slice(strikes, func(i, j int) bool { return strikes[i].LessThan(strikes[j]) })
	return strikes
}

func isCall(leg *position.Position) bool { return leg.Option.OptionStyle == primitives.Call }
func isPut(leg *position.Position) bool  { return leg.Option.OptionStyle == primitives.Put }
func isLong(leg *position.Position) bool { return leg.Option.Side == primitives.Long }

func sameExpiration(legs []*position.Position) bool {
	for i := 1; i < len(legs); i++ {
		if !legs[i].Option.ExpirationDate.Equal(legs[0].Option.ExpirationDate) {
			return false
		}
	}
	return true
}

var catalog = map[Kind]catalogEntry{
	LongCall:  singleLegEntry(primitives.Call, primitives.Long),
	ShortCall: singleLegEntry(primitives.Call, primitives.Short),
	LongPut:   singleLegEntry(primitives.Put, primitives.Long),
	ShortPut:  singleLegEntry(primitives.Put, primitives.Short),

	BullCallSpread: {
		arity: 2,
		validate: func(l []*position.Position) bool {
			return isCall(l[0]) && isCall(l[1]) && isLong(l[0]) && !isLong(l[1]) &&
				l[0].Option.StrikePrice.LessThan(l[1].Option.StrikePrice) && sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			be := l[0].Option.StrikePrice.Add(positiveOrZero(netPremium(l)))
			return []primitives.Positive{be.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			width := strikeWidth(l[0].Option.StrikePrice, l[1].Option.StrikePrice)
			return positiveOrZero(width.Sub(netPremium(l))), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			return positiveOrZero(netPremium(l)), nil
		},
		// Only the short (farther-OTM) call is offered for delta adjustment;
		// the long call is the anchor leg this spread is built around.
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1]} },
	},
	BearCallSpread: {
		arity: 2,
		validate: func(l []*position.Position) bool {
			return isCall(l[0]) && isCall(l[1]) && !isLong(l[0]) && isLong(l[1]) &&
				l[0].Option.StrikePrice.LessThan(l[1].Option.StrikePrice) && sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			be := l[0].Option.StrikePrice.Add(positiveOrZero(netPremium(l).Neg()))
			return []primitives.Positive{be.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			return positiveOrZero(netPremium(l).Neg()), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			width := strikeWidth(l[0].Option.StrikePrice, l[1].Option.StrikePrice)
			return positiveOrZero(width.Add(netPremium(l))), nil
		},
		// Only the long (farther-OTM) call is offered for delta adjustment;
		// the short call is the anchor leg this spread is built around.
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1]} },
	},
	BullPutSpread: {
		arity: 2,
		validate: func(l []*position.Position) bool {
			return isPut(l[0]) && isPut(l[1]) && !isLong(l[0]) && isLong(l[1]) &&
				l[1].Option.StrikePrice.LessThan(l[0].Option.StrikePrice) && sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			be := l[0].Option.StrikePrice.Sub(positiveOrZero(netPremium(l).Neg()))
			return []primitives.Positive{be.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			return positiveOrZero(netPremium(l).Neg()), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			width := strikeWidth(l[0].Option.StrikePrice, l[1].Option.StrikePrice)
			return positiveOrZero(width.Add(netPremium(l))), nil
		},
		// Only the long (farther-OTM) put is offered for delta adjustment;
		// the short put is the anchor leg this spread is built around.
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1]} },
	},
	BearPutSpread: {
		arity: 2,
		validate: func(l []*position.Position) bool {
			return isPut(l[0]) && isPut(l[1]) && isLong(l[0]) && !isLong(l[1]) &&
				l[1].Option.StrikePrice.LessThan(l[0].Option.StrikePrice) && sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			be := l[0].Option.StrikePrice.Sub(positiveOrZero(netPremium(l)))
			return []primitives.Positive{be.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			width := strikeWidth(l[0].Option.StrikePrice, l[1].Option.StrikePrice)
			return positiveOrZero(width.Sub(netPremium(l))), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			return positiveOrZero(netPremium(l)), nil
		},
		// Only the short (farther-OTM) put is offered for delta adjustment;
		// the long put is the anchor leg this spread is built around.
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1]} },
	},

	LongStraddle:  straddleEntry(primitives.Long),
	ShortStraddle: straddleEntry(primitives.Short),
	LongStrangle:  strangleEntry(primitives.Long),
	ShortStrangle: strangleEntry(primitives.Short),

	LongButterflySpread:  butterflyEntry(primitives.Long),
	ShortButterflySpread: butterflyEntry(primitives.Short),
	CallButterfly:        ratioCallButterflyEntry(),

	IronCondor: {
		arity: 4, // [shortCall, longCall, shortPut, longPut]
		validate: func(l []*position.Position) bool {
			sc, lc, sp, lp := l[0], l[1], l[2], l[3]
			return isCall(sc) && !isLong(sc) && isCall(lc) && isLong(lc) &&
				isPut(sp) && !isLong(sp) && isPut(lp) && isLong(lp) &&
				sc.Option.StrikePrice.LessThan(lc.Option.StrikePrice) &&
				lp.Option.StrikePrice.LessThan(sp.Option.StrikePrice) &&
				sp.Option.StrikePrice.LessThanOrEqual(sc.Option.StrikePrice) &&
				sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			credit := positiveOrZero(netPremium(l).Neg())
			upper := l[0].Option.StrikePrice.Add(credit)
			lower, err := l[2].Option.StrikePrice.Sub(credit)
			if err != nil {
				lower = primitives.Zero()
			}
			return []primitives.Positive{lower.Round(2), upper.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			return positiveOrZero(netPremium(l).Neg()), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			callWidth := strikeWidth(l[0].Option.StrikePrice, l[1].Option.StrikePrice)
			putWidth := strikeWidth(l[2].Option.StrikePrice, l[3].Option.StrikePrice)
			wing := callWidth
			if putWidth.GreaterThan(callWidth) {
				wing = putWidth
			}
			return positiveOrZero(wing.Add(netPremium(l))), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1], l[3]} },
	},

	IronButterfly: {
		arity: 4, // [shortCallATM, shortPutATM, longCallOTM, longPutOTM]
		validate: func(l []*position.Position) bool {
			sc, sp, lc, lp := l[0], l[1], l[2], l[3]
			return isCall(sc) && !isLong(sc) && isPut(sp) && !isLong(sp) &&
				sc.Option.StrikePrice.Equal(sp.Option.StrikePrice) &&
				isCall(lc) && isLong(lc) && isPut(lp) && isLong(lp) &&
				lc.Option.StrikePrice.GreaterThan(sc.Option.StrikePrice) &&
				lp.Option.StrikePrice.LessThan(sp.Option.StrikePrice) &&
				sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			credit := positiveOrZero(netPremium(l).Neg())
			upper := l[0].Option.StrikePrice.Add(credit)
			lower, err := l[1].Option.StrikePrice.Sub(credit)
			if err != nil {
				lower = primitives.Zero()
			}
			return []primitives.Positive{lower.Round(2), upper.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			return positiveOrZero(netPremium(l).Neg()), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			wing := strikeWidth(l[0].Option.StrikePrice, l[2].Option.StrikePrice)
			return positiveOrZero(wing.Add(netPremium(l))), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[2], l[3]} },
	},

	CoveredCall: {
		arity: 2, // [longStock (zero-strike long call), shortCall]
		validate: func(l []*position.Position) bool {
			return isCall(l[0]) && isLong(l[0]) && l[0].Option.StrikePrice.IsZero() &&
				isCall(l[1]) && !isLong(l[1]) && sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			be, err := l[0].Premium.Sub(positiveOrZero(l[1].NetPremiumReceived()))
			if err != nil {
				be = primitives.Zero()
			}
			return []primitives.Positive{be.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			stockGain := l[1].Option.StrikePrice.Decimal().Sub(l[0].Premium.Decimal())
			return positiveOrZero(stockGain.Add(l[1].NetPremiumReceived())), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			return positiveOrZero(l[0].Premium.Decimal().Sub(l[1].NetPremiumReceived())), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1]} },
	},

	ProtectivePut: {
		arity: 2, // [longStock (zero-strike long call), longPut]
		validate: func(l []*position.Position) bool {
			return isCall(l[0]) && isLong(l[0]) && l[0].Option.StrikePrice.IsZero() &&
				isPut(l[1]) && isLong(l[1]) && sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			be := l[0].Premium.Add(l[1].Premium)
			return []primitives.Positive{be.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			return primitives.PositiveInfinity(), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			loss := l[0].Premium.Decimal().Sub(l[1].Option.StrikePrice.Decimal()).Add(l[1].Premium.Decimal())
			return positiveOrZero(loss), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1]} },
	},

	Collar: {
		arity: 3, // [longStock, longPut, shortCall]
		validate: func(l []*position.Position) bool {
			return isCall(l[0]) && isLong(l[0]) && l[0].Option.StrikePrice.IsZero() &&
				isPut(l[1]) && isLong(l[1]) && isCall(l[2]) && !isLong(l[2]) &&
				l[1].Option.StrikePrice.LessThan(l[2].Option.StrikePrice) && sameExpiration(l[1:])
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			be := l[0].Premium.Decimal().Add(netPremium(l[1:]))
			return []primitives.Positive{positiveOrZero(be).Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			gain := l[2].Option.StrikePrice.Decimal().Sub(l[0].Premium.Decimal()).Sub(netPremium(l[1:]))
			return positiveOrZero(gain), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			loss := l[0].Premium.Decimal().Sub(l[1].Option.StrikePrice.Decimal()).Add(netPremium(l[1:]))
			return positiveOrZero(loss), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1], l[2]} },
	},

	PoorMansCoveredCall: {
		arity: 2, // [longDeepITMLongDatedCall, shortNearDatedOTMCall]
		validate: func(l []*position.Position) bool {
			return isCall(l[0]) && isLong(l[0]) && isCall(l[1]) && !isLong(l[1]) &&
				l[0].Option.StrikePrice.LessThan(l[1].Option.StrikePrice)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			be := l[0].Option.StrikePrice.Add(positiveOrZero(netPremium(l)))
			return []primitives.Positive{be.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			width := strikeWidth(l[0].Option.StrikePrice, l[1].Option.StrikePrice)
			return positiveOrZero(width.Sub(netPremium(l))), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			// Approximate: the net debit (the long LEAP's premium minus the
			// short call's premium) is taken as the capital at risk, since
			// the LEAP's own expiration outlives the short leg modeled here.
			return positiveOrZero(netPremium(l)), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[1]} },
	},
}

func singleLegEntry(style primitives.OptionStyle, side primitives.Side) catalogEntry {
	return catalogEntry{
		arity: 1,
		validate: func(l []*position.Position) bool {
			return l[0].Option.OptionStyle == style && l[0].Option.Side == side
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			k := l[0].Option.StrikePrice
			if style == primitives.Call {
				return []primitives.Positive{k.Add(l[0].Premium).Round(2)}, nil
			}
			be, err := k.Sub(l[0].Premium)
			if err != nil {
				be = primitives.Zero()
			}
			return []primitives.Positive{be.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			if side == primitives.Long && style == primitives.Call {
				return primitives.PositiveInfinity(), nil
			}
			if side == primitives.Long && style == primitives.Put {
				return positiveOrZero(l[0].Option.StrikePrice.Decimal().Sub(l[0].Premium.Decimal())), nil
			}
			return positiveOrZero(l[0].NetPremiumReceived()), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			if side == primitives.Short && style == primitives.Call {
				return primitives.PositiveInfinity(), nil
			}
			if side == primitives.Short && style == primitives.Put {
				return positiveOrZero(l[0].Option.StrikePrice.Decimal().Sub(l[0].NetPremiumReceived())), nil
			}
			return positiveOrZero(l[0].Premium.Decimal()), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return l },
	}
}

func straddleEntry(side primitives.Side) catalogEntry {
	long := side == primitives.Long
	return catalogEntry{
		arity: 2, // [call, put], same strike
		validate: func(l []*position.Position) bool {
			return isCall(l[0]) && isPut(l[1]) && l[0].Option.Side == side && l[1].Option.Side == side &&
				l[0].Option.StrikePrice.Equal(l[1].Option.StrikePrice) && sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			k := l[0].Option.StrikePrice
			net := netPremium(l)
			if !long {
				net = net.Neg()
			}
			mag := positiveOrZero(net)
			upper := k.Add(mag)
			lower, err := k.Sub(mag)
			if err != nil {
				lower = primitives.Zero()
			}
			return []primitives.Positive{lower.Round(2), upper.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			if long {
				return primitives.PositiveInfinity(), nil
			}
			return positiveOrZero(netPremium(l).Neg()), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			if long {
				return positiveOrZero(netPremium(l)), nil
			}
			return primitives.PositiveInfinity(), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return l },
	}
}

func strangleEntry(side primitives.Side) catalogEntry {
	long := side == primitives.Long
	return catalogEntry{
		arity: 2, // [call (higher K), put (lower K)]
		validate: func(l []*position.Position) bool {
			return isCall(l[0]) && isPut(l[1]) && l[0].Option.Side == side && l[1].Option.Side == side &&
				l[1].Option.StrikePrice.LessThan(l[0].Option.StrikePrice) && sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			net := netPremium(l)
			if !long {
				net = net.Neg()
			}
			mag := positiveOrZero(net)
			upper := l[0].Option.StrikePrice.Add(mag)
			lower, err := l[1].Option.StrikePrice.Sub(mag)
			if err != nil {
				lower = primitives.Zero()
			}
			return []primitives.Positive{lower.Round(2), upper.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			if long {
				return primitives.PositiveInfinity(), nil
			}
			return positiveOrZero(netPremium(l).Neg()), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			if long {
				return positiveOrZero(netPremium(l)), nil
			}
			return primitives.PositiveInfinity(), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return l },
	}
}

func butterflyEntry(side primitives.Side) catalogEntry {
	long := side == primitives.Long
	return catalogEntry{
		arity: 3, // [low K, mid K (2x), high K], all calls, symmetric wings
		validate: func(l []*position.Position) bool {
			lowWing, body, highWing := l[0], l[1], l[2]
			wingSide, bodySide := side, oppositeSide(side)
			return isCall(lowWing) && isCall(body) && isCall(highWing) &&
				lowWing.Option.Side == wingSide && highWing.Option.Side == wingSide && body.Option.Side == bodySide &&
				lowWing.Option.StrikePrice.LessThan(body.Option.StrikePrice) &&
				body.Option.StrikePrice.LessThan(highWing.Option.StrikePrice) &&
				strikeWidth(lowWing.Option.StrikePrice, body.Option.StrikePrice).Equal(strikeWidth(body.Option.StrikePrice, highWing.Option.StrikePrice)) &&
				body.Option.Quantity.Equal(lowWing.Option.Quantity.Mul(primitives.Two())) &&
				body.Option.Quantity.Equal(highWing.Option.Quantity.Mul(primitives.Two())) &&
				sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			net := netPremium(l)
			mag := positiveOrZero(net)
			lower := l[0].Option.StrikePrice.Add(mag)
			upper, err := l[2].Option.StrikePrice.Sub(mag)
			if err != nil {
				upper = l[2].Option.StrikePrice
			}
			return []primitives.Positive{lower.Round(2), upper.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			wing := strikeWidth(l[0].Option.StrikePrice, l[1].Option.StrikePrice)
			if long {
				return positiveOrZero(wing.Sub(netPremium(l))), nil
			}
			return positiveOrZero(netPremium(l).Neg()), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			wing := strikeWidth(l[0].Option.StrikePrice, l[1].Option.StrikePrice)
			if long {
				return positiveOrZero(netPremium(l)), nil
			}
			return positiveOrZero(wing.Add(netPremium(l))), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[0], l[2]} },
	}
}

func ratioCallButterflyEntry() catalogEntry {
	return catalogEntry{
		arity: 3, // [long ITM call (low K), long OTM call (high K), 2x short mid call]
		validate: func(l []*position.Position) bool {
			lowCall, highCall, body := l[0], l[1], l[2]
			return isCall(lowCall) && isLong(lowCall) && isCall(highCall) && isLong(highCall) &&
				isCall(body) && !isLong(body) &&
				lowCall.Option.StrikePrice.LessThan(body.Option.StrikePrice) &&
				body.Option.StrikePrice.LessThan(highCall.Option.StrikePrice) &&
				body.Option.Quantity.Equal(lowCall.Option.Quantity.Mul(primitives.Two())) &&
				sameExpiration(l)
		},
		breakEven: func(l []*position.Position) ([]primitives.Positive, error) {
			net := netPremium(l)
			mag := positiveOrZero(net)
			lower := l[0].Option.StrikePrice.Add(mag)
			return []primitives.Positive{lower.Round(2)}, nil
		},
		maxProfit: func(l []*position.Position) (primitives.Positive, error) {
			width := strikeWidth(l[0].Option.StrikePrice, l[2].Option.StrikePrice)
			return positiveOrZero(width.Sub(netPremium(l))), nil
		},
		maxLoss: func(l []*position.Position) (primitives.Positive, error) {
			// Unlimited above the long OTM wing's offsetting strike: the
			// 2x short body outruns the single long high-K call's hedge.
			return primitives.PositiveInfinity(), nil
		},
		adjustable: func(l []*position.Position) []*position.Position { return []*position.Position{l[0], l[1]} },
	}
}

func oppositeSide(s primitives.Side) primitives.Side {
	if s == primitives.Long {
		return primitives.Short
	}
	return primitives.Long
}
