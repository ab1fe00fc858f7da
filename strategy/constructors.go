package strategy

import "github.com/johnayoung/go-optionlab/position"

// NewLongCall and the rest of this file each wrap newStrategy with the
// catalog-documented canonical leg order for one spec §4.6 entry, so call
// sites read as "the strategy built from these positions" rather than
// needing to know each Kind's internal ordering.

func NewLongCall(call *position.Position) (*Strategy, error) {
	return newStrategy(LongCall, []*position.Position{call})
}

func NewShortCall(call *position.Position) (*Strategy, error) {
	return newStrategy(ShortCall, []*position.Position{call})
}

func NewLongPut(put *position.Position) (*Strategy, error) {
	return newStrategy(LongPut, []*position.Position{put})
}

func NewShortPut(put *position.Position) (*Strategy, error) {
	return newStrategy(ShortPut, []*position.Position{put})
}

// NewBullCallSpread takes the long call at the lower strike and the short
// call at the higher strike.
func NewBullCallSpread(longLowCall, shortHighCall *position.Position) (*Strategy, error) {
	return newStrategy(BullCallSpread, []*position.Position{longLowCall, shortHighCall})
}

// NewBearCallSpread takes the short call at the lower strike and the long
// call at the higher strike.
func NewBearCallSpread(shortLowCall, longHighCall *position.Position) (*Strategy, error) {
	return newStrategy(BearCallSpread, []*position.Position{shortLowCall, longHighCall})
}

// NewBullPutSpread takes the short put at the higher strike and the long
// put at the lower strike.
func NewBullPutSpread(shortHighPut, longLowPut *position.Position) (*Strategy, error) {
	return newStrategy(BullPutSpread, []*position.Position{shortHighPut, longLowPut})
}

// NewBearPutSpread takes the long put at the higher strike and the short
// put at the lower strike.
func NewBearPutSpread(longHighPut, shortLowPut *position.Position) (*Strategy, error) {
	return newStrategy(BearPutSpread, []*position.Position{longHighPut, shortLowPut})
}

func NewLongStraddle(call, put *position.Position) (*Strategy, error) {
	return newStrategy(LongStraddle, []*position.Position{call, put})
}

func NewShortStraddle(call, put *position.Position) (*Strategy, error) {
	return newStrategy(ShortStraddle, []*position.Position{call, put})
}

// NewLongStrangle takes the call at the higher strike and the put at the
// lower strike.
func NewLongStrangle(call, put *position.Position) (*Strategy, error) {
	return newStrategy(LongStrangle, []*position.Position{call, put})
}

// NewShortStrangle takes the call at the higher strike and the put at the
// lower strike.
func NewShortStrangle(call, put *position.Position) (*Strategy, error) {
	return newStrategy(ShortStrangle, []*position.Position{call, put})
}

// NewLongButterflySpread takes the low-strike wing, the 2x mid-strike
// body, and the high-strike wing, all long calls except the short body.
func NewLongButterflySpread(lowWing, body, highWing *position.Position) (*Strategy, error) {
	return newStrategy(LongButterflySpread, []*position.Position{lowWing, body, highWing})
}

// NewShortButterflySpread mirrors NewLongButterflySpread with sides
// flipped: short wings, long body.
func NewShortButterflySpread(lowWing, body, highWing *position.Position) (*Strategy, error) {
	return newStrategy(ShortButterflySpread, []*position.Position{lowWing, body, highWing})
}

// NewCallButterfly (the asymmetric ratio butterfly) takes the long ITM
// call, the long OTM call, and the 2x short mid-strike call.
func NewCallButterfly(longITM, longOTM, shortBody *position.Position) (*Strategy, error) {
	return newStrategy(CallButterfly, []*position.Position{longITM, longOTM, shortBody})
}

// NewIronCondor takes the short call, long call (higher strike), short
// put, and long put (lower strike than the short put), in that order.
func NewIronCondor(shortCall, longCall, shortPut, longPut *position.Position) (*Strategy, error) {
	return newStrategy(IronCondor, []*position.Position{shortCall, longCall, shortPut, longPut})
}

// NewIronButterfly takes the short ATM call, short ATM put (same strike),
// long OTM call, and long OTM put.
func NewIronButterfly(shortCall, shortPut, longCall, longPut *position.Position) (*Strategy, error) {
	return newStrategy(IronButterfly, []*position.Position{shortCall, shortPut, longCall, longPut})
}

// NewCoveredCall takes the long stock leg (modeled as a zero-strike long
// call via option.NewAllowZeroStrike) and the short call written against it.
func NewCoveredCall(longStock, shortCall *position.Position) (*Strategy, error) {
	return newStrategy(CoveredCall, []*position.Position{longStock, shortCall})
}

// NewProtectivePut takes the long stock leg and the protective long put.
func NewProtectivePut(longStock, longPut *position.Position) (*Strategy, error) {
	return newStrategy(ProtectivePut, []*position.Position{longStock, longPut})
}

// NewCollar takes the long stock leg, the protective long put, and the
// covered short call.
func NewCollar(longStock, longPut, shortCall *position.Position) (*Strategy, error) {
	return newStrategy(Collar, []*position.Position{longStock, longPut, shortCall})
}

// NewPoorMansCoveredCall takes the deep-in-the-money, long-dated long call
// (the stock surrogate) and the near-dated, out-of-the-money short call.
func NewPoorMansCoveredCall(longDeepITM, shortNearDated *position.Position) (*Strategy, error) {
	return newStrategy(PoorMansCoveredCall, []*position.Position{longDeepITM, shortNearDated})
}
