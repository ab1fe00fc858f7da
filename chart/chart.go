// Package chart derives the descriptors a downstream visualization
// front-end needs to plot a strategy's profit curve: a title, the
// vertical reference lines (break-evens and strikes), labeled points of
// interest, and the (x, y) series itself. This package never renders
// anything — it hands a renderer the data, per spec §6's "consumed by
// the visualization back-end, not rendered here".
package chart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/johnayoung/go-optionlab/primitives"
	"github.com/johnayoung/go-optionlab/strategy"
)

// VerticalLine is a reference line a renderer draws at a fixed x, such as
// a break-even point or a strike.
type VerticalLine struct {
	X     primitives.Positive
	Label string
}

// LabeledPoint is a single annotated (x, y) point, such as a strike's
// profit at expiration or the strategy's max-profit/max-loss location.
type LabeledPoint struct {
	X     primitives.Positive
	Y     primitives.Decimal
	Label string
}

// kindTitles gives a human-readable name for each catalog Kind; falling
// through to the raw Kind string for any variant not listed keeps this
// map from needing to track every future addition to the catalog.
var kindTitles = map[strategy.Kind]string{
	strategy.LongCall:             "Long Call",
	strategy.ShortCall:            "Short Call",
	strategy.LongPut:              "Long Put",
	strategy.ShortPut:             "Short Put",
	strategy.BullCallSpread:       "Bull Call Spread",
	strategy.BearCallSpread:       "Bear Call Spread",
	strategy.BullPutSpread:        "Bull Put Spread",
	strategy.BearPutSpread:        "Bear Put Spread",
	strategy.LongStraddle:         "Long Straddle",
	strategy.ShortStraddle:        "Short Straddle",
	strategy.LongStrangle:         "Long Strangle",
	strategy.ShortStrangle:        "Short Strangle",
	strategy.LongButterflySpread:  "Long Butterfly Spread",
	strategy.ShortButterflySpread: "Short Butterfly Spread",
	strategy.IronCondor:           "Iron Condor",
	strategy.IronButterfly:        "Iron Butterfly",
	strategy.CallButterfly:        "Call Butterfly",
	strategy.CoveredCall:          "Covered Call",
	strategy.ProtectivePut:        "Protective Put",
	strategy.Collar:               "Collar",
	strategy.PoorMansCoveredCall:  "Poor Man's Covered Call",
}

// Title returns a human-readable name for the strategy, naming its legs'
// underlying symbol and strikes, per spec §6's title() accessor.
func Title(s *strategy.Strategy) string {
	name, ok := kindTitles[s.Kind]
	if !ok {
		name = string(s.Kind)
	}
	legs := s.GetPositions()
	if len(legs) == 0 {
		return name
	}
	strikes := make([]string, len(legs))
	for i, leg := range legs {
		strikes[i] = leg.Option.StrikePrice.String()
	}
	return fmt.Sprintf("%s (%s) @ %s", name, legs[0].Option.UnderlyingSymbol, strings.Join(strikes, "/"))
}

// VerticalLines returns one line per break-even point and one per
// distinct leg strike, per spec §6's get_vertical_lines() accessor.
func VerticalLines(s *strategy.Strategy) []VerticalLine {
	var lines []VerticalLine
	for i, be := range s.GetBreakEvenPoints() {
		lines = append(lines, VerticalLine{X: be, Label: fmt.Sprintf("break-even %d", i+1)})
	}

	seen := map[string]bool{}
	for _, leg := range s.GetPositions() {
		strike := leg.Option.StrikePrice
		key := strike.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		lines = append(lines, VerticalLine{
			X:     strike,
			Label: fmt.Sprintf("%s %s strike", leg.Option.OptionStyle, leg.Option.Side),
		})
	}
	return lines
}

// Points returns one labeled point per leg strike (the strategy's profit
// at that strike) per spec §6's get_points() accessor.
func Points(s *strategy.Strategy) ([]LabeledPoint, error) {
	seen := map[string]bool{}
	var points []LabeledPoint
	for _, leg := range s.GetPositions() {
		strike := leg.Option.StrikePrice
		key := strike.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		profit, err := s.CalculateProfitAt(strike)
		if err != nil {
			return nil, fmt.Errorf("profit at strike %s: %w", strike.String(), err)
		}
		points = append(points, LabeledPoint{
			X:     strike,
			Y:     profit,
			Label: fmt.Sprintf("profit at %s", strike.String()),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].X.LessThan(points[j].X) })
	return points, nil
}

// defaultGridPoints is the number of samples XValues/YValues spread
// across the strategy's best-range-to-show window.
const defaultGridPoints = 100

// XValues returns the price grid a renderer should plot the profit curve
// over, per spec §6's get_x_values() accessor.
func XValues(s *strategy.Strategy) []primitives.Positive {
	low, high := s.GetUnderlyingPrice(), s.GetUnderlyingPrice()
	for _, be := range s.GetBreakEvenPoints() {
		low, high = low.Min(be), high.Max(be)
	}
	spread, err := high.Sub(low)
	if err != nil {
		spread = primitives.Zero()
	}
	step, err := spread.Div(primitives.MustPositiveFromInt(defaultGridPoints))
	if err != nil || step.IsZero() {
		step = primitives.One()
	}
	return s.BestRangeToShow(step)
}

// YValues evaluates the strategy's profit at every XValues sample, per
// spec §6's get_y_values() accessor.
func YValues(s *strategy.Strategy) ([]primitives.Decimal, error) {
	xs := XValues(s)
	ys := make([]primitives.Decimal, len(xs))
	for i, x := range xs {
		profit, err := s.CalculateProfitAt(x)
		if err != nil {
			return nil, fmt.Errorf("profit at %s: %w", x.String(), err)
		}
		ys[i] = profit
	}
	return ys, nil
}
