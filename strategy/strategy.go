// Package strategy composes option.Options legs (via position.Position)
// into the fixed-shape multi-leg strategies of spec §4.6, and exposes the
// capability-set surface of spec §4.5: break-even points, max profit/loss,
// profit-at-price, validation, and delta-adjustment candidates.
package strategy

import (
	"fmt"

	"github.com/johnayoung/go-optionlab/greeks"
	"github.com/johnayoung/go-optionlab/position"
	"github.com/johnayoung/go-optionlab/primitives"
)

// Strategy is a fixed-shape collection of legs identified by Kind. Legs
// are held in the canonical order catalog.go's formulas expect; use the
// New* constructors in constructors.go rather than building one by hand.
type Strategy struct {
	Kind       Kind
	legs       []*position.Position
	breakEvens []primitives.Positive
}

// newStrategy validates legs against Kind's catalog entry, computes the
// initial break-even points, and returns the assembled Strategy.
func newStrategy(kind Kind, legs []*position.Position) (*Strategy, error) {
	entry, ok := catalog[kind]
	if !ok {
		return nil, fmt.Errorf("unknown strategy kind %q", kind)
	}
	if len(legs) != entry.arity {
		return nil, fmt.Errorf("%w: %s requires %d legs, got %d", ErrInvalidShape, kind, entry.arity, len(legs))
	}
	for _, leg := range legs {
		if leg == nil {
			return nil, position.ErrNilOption
		}
	}
	s := &Strategy{Kind: kind, legs: append([]*position.Position(nil), legs...)}
	if !entry.validate(s.legs) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidShape, kind)
	}
	if err := s.UpdateBreakEvenPoints(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Strategy) entry() catalogEntry { return catalog[s.Kind] }

// GetUnderlyingPrice returns the first leg's underlying price. The legs'
// underlying prices are not checked against each other at construction
// or mutation.
func (s *Strategy) GetUnderlyingPrice() primitives.Positive {
	if len(s.legs) == 0 {
		return primitives.Zero()
	}
	return s.legs[0].Option.UnderlyingPrice
}

// GetPositions returns a read-only snapshot of the strategy's legs.
func (s *Strategy) GetPositions() []*position.Position {
	return append([]*position.Position(nil), s.legs...)
}

// GetPosition returns every leg matching the given (style, side, strike)
// signature — ordinarily zero or one, since catalog shapes rarely repeat a
// signature, but callers should not assume uniqueness.
func (s *Strategy) GetPosition(style primitives.OptionStyle, side primitives.Side, strike primitives.Positive) []*position.Position {
	var matches []*position.Position
	for _, leg := range s.legs {
		if leg.Option.OptionStyle == style && leg.Option.Side == side && leg.Option.StrikePrice.Equal(strike) {
			matches = append(matches, leg)
		}
	}
	return matches
}

func legIndex(legs []*position.Position, style primitives.OptionStyle, side primitives.Side, strike primitives.Positive) int {
	for i, leg := range legs {
		if leg.Option.OptionStyle == style && leg.Option.Side == side && leg.Option.StrikePrice.Equal(strike) {
			return i
		}
	}
	return -1
}

// AddPosition inserts a leg into the next open slot for the strategy's
// Kind. It fails if every slot is already filled or if the resulting leg
// set no longer satisfies the Kind's shape invariants (in which case the
// strategy is left unmodified).
func (s *Strategy) AddPosition(p *position.Position) error {
	if p == nil {
		return position.ErrNilOption
	}
	entry := s.entry()
	if len(s.legs) >= entry.arity {
		return ErrStrategyFull
	}
	candidate := append(append([]*position.Position(nil), s.legs...), p)
	if !entry.validate(candidate) {
		return fmt.Errorf("%w: %s", ErrInvalidShape, s.Kind)
	}
	s.legs = candidate
	return s.UpdateBreakEvenPoints()
}

// ModifyPosition replaces the leg matching p's (style, side, strike)
// signature, re-validates the resulting shape, and recomputes break-even
// points. It fails if no leg matches or the replacement would violate the
// Kind's shape invariants.
func (s *Strategy) ModifyPosition(p *position.Position) error {
	if p == nil {
		return position.ErrNilOption
	}
	idx := legIndex(s.legs, p.Option.OptionStyle, p.Option.Side, p.Option.StrikePrice)
	if idx < 0 {
		return ErrLegNotFound
	}
	candidate := append([]*position.Position(nil), s.legs...)
	candidate[idx] = p
	if !s.entry().validate(candidate) {
		return fmt.Errorf("%w: %s", ErrInvalidShape, s.Kind)
	}
	s.legs = candidate
	return s.UpdateBreakEvenPoints()
}

// CalculateProfitAt sums each leg's profit/loss at expiration for terminal
// price S, per spec §4.5.
func (s *Strategy) CalculateProfitAt(S primitives.Positive) (primitives.Decimal, error) {
	total := primitives.DecimalZero()
	for _, leg := range s.legs {
		report, err := leg.PnLAtExpiration(S)
		if err != nil {
			return primitives.Decimal{}, err
		}
		total = total.Add(*report.Realized)
	}
	return total, nil
}

// MaxProfit returns the strategy's closed-form maximum profit, which may
// be primitives.PositiveInfinity() for unbounded-upside shapes.
func (s *Strategy) MaxProfit() (primitives.Positive, error) {
	fn := s.entry().maxProfit
	if fn == nil {
		return primitives.Positive{}, ErrMaxProfitUndefined
	}
	return fn(s.legs)
}

// MaxLoss returns the strategy's closed-form maximum loss, which may be
// primitives.PositiveInfinity() for unbounded-downside shapes.
func (s *Strategy) MaxLoss() (primitives.Positive, error) {
	fn := s.entry().maxLoss
	if fn == nil {
		return primitives.Positive{}, ErrMaxLossUndefined
	}
	return fn(s.legs)
}

// GetBreakEvenPoints returns the cached break-even prices computed at
// construction or the last mutation.
func (s *Strategy) GetBreakEvenPoints() []primitives.Positive {
	return append([]primitives.Positive(nil), s.breakEvens...)
}

// UpdateBreakEvenPoints recomputes and caches the strategy's break-even
// points from its current legs.
func (s *Strategy) UpdateBreakEvenPoints() error {
	points, err := s.entry().breakEven(s.legs)
	if err != nil {
		return err
	}
	s.breakEvens = points
	return nil
}

// ProfitRatio is the dimensionless max-profit/max-loss quality metric the
// optimizer scores candidates by under OptimizationCriteria.Ratio. A zero
// max loss or an infinite max profit both report PositiveInfinity.
func (s *Strategy) ProfitRatio() (primitives.Positive, error) {
	profit, err := s.MaxProfit()
	if err != nil {
		return primitives.Positive{}, err
	}
	loss, err := s.MaxLoss()
	if err != nil {
		return primitives.Positive{}, err
	}
	if profit.IsInfinite() || loss.IsZero() {
		return primitives.PositiveInfinity(), nil
	}
	if loss.IsInfinite() {
		return primitives.Zero(), nil
	}
	return profit.Div(loss)
}

// ProfitArea approximates the area under the profit curve where it is
// positive, trapezoidally integrated over BestRangeToShow's price grid —
// the other quality metric the optimizer scores under
// OptimizationCriteria.Area.
func (s *Strategy) ProfitArea() (primitives.Decimal, error) {
	step := s.GetUnderlyingPrice().Mul(primitives.MustPositive(primitives.NewDecimalFromFloat(0.01)))
	if step.IsZero() {
		step = primitives.One()
	}
	grid := s.BestRangeToShow(step)
	area := primitives.DecimalZero()
	for i := 1; i < len(grid); i++ {
		dx := grid[i].Decimal().Sub(grid[i-1].Decimal())
		p0, err := s.CalculateProfitAt(grid[i-1])
		if err != nil {
			return primitives.Decimal{}, err
		}
		p1, err := s.CalculateProfitAt(grid[i])
		if err != nil {
			return primitives.Decimal{}, err
		}
		p0 = clampNonNegative(p0)
		p1 = clampNonNegative(p1)
		avg := p0.Add(p1).Mul(primitives.NewDecimalFromFloat(0.5))
		area = area.Add(avg.Mul(dx))
	}
	return area, nil
}

func clampNonNegative(d primitives.Decimal) primitives.Decimal {
	if d.IsNegative() {
		return primitives.DecimalZero()
	}
	return d
}

// Validate reports whether the strategy's current legs satisfy its Kind's
// shape invariants.
func (s *Strategy) Validate() bool {
	return s.entry().validate(s.legs)
}

// BestRangeToShow returns a price grid stepping by step, bracketing the
// strategy's break-even points (or, absent any, the underlying price) with
// a 20% buffer on either side — a range wide enough for a plotting caller
// to show the full profit curve's interesting region.
func (s *Strategy) BestRangeToShow(step primitives.Positive) []primitives.Positive {
	low, high := s.GetUnderlyingPrice(), s.GetUnderlyingPrice()
	if len(s.breakEvens) > 0 {
		low, high = s.breakEvens[0], s.breakEvens[0]
		for _, be := range s.breakEvens[1:] {
			low = low.Min(be)
			high = high.Max(be)
		}
	}
	spread := positiveOrZero(high.Decimal().Sub(low.Decimal()))
	buffer := spread.Mul(primitives.MustPositive(primitives.NewDecimalFromFloat(0.2)))
	if buffer.IsZero() {
		buffer = low.Mul(primitives.MustPositive(primitives.NewDecimalFromFloat(0.2)))
	}
	low = positiveOrZero(low.Decimal().Sub(buffer.Decimal()))
	high = high.Add(buffer)

	if step.IsZero() {
		step = primitives.One()
	}
	var grid []primitives.Positive
	for x := low; x.LessThanOrEqual(high); {
		grid = append(grid, x)
		x = x.Add(step)
	}
	return grid
}

// AdjustOptionPosition adds deltaQty (signed) units to the leg matching
// (style, side, strike); a negative deltaQty reduces quantity. It fails if
// no such leg exists or the resulting quantity would not be positive.
func (s *Strategy) AdjustOptionPosition(deltaQty primitives.Decimal, strike primitives.Positive, style primitives.OptionStyle, side primitives.Side) error {
	idx := legIndex(s.legs, style, side, strike)
	if idx < 0 {
		return ErrLegNotFound
	}
	newQty, err := primitives.NewPositive(s.legs[idx].Option.Quantity.Decimal().Add(deltaQty))
	if err != nil {
		return fmt.Errorf("resulting quantity must be positive: %w", err)
	}
	s.legs[idx].Option.Quantity = newQty
	return s.UpdateBreakEvenPoints()
}

// AdjustableLegs returns the legs spec §4.8 permits this Kind to buy or
// sell when nudging the strategy's net delta toward zero.
func (s *Strategy) AdjustableLegs() []*position.Position {
	fn := s.entry().adjustable
	if fn == nil {
		return nil
	}
	return fn(s.legs)
}

// Greeks returns the strategy's aggregate Greeks: each leg's analytic
// Greeks scaled by its signed quantity and summed, per spec §4.3.
func (s *Strategy) Greeks() (greeks.Greeks, error) {
	total := greeks.Greeks{
		Delta: primitives.DecimalZero(), Gamma: primitives.DecimalZero(),
		Theta: primitives.DecimalZero(), Vega: primitives.DecimalZero(),
		Rho: primitives.DecimalZero(), RhoQ: primitives.DecimalZero(),
	}
	for _, leg := range s.legs {
		g, err := leg.Greeks()
		if err != nil {
			return greeks.Greeks{}, err
		}
		total = total.Add(g)
	}
	return total, nil
}
