// Package probability analyzes a strategy's outcome distribution under a
// lognormal model of the terminal underlying price, per spec §4.7:
// profit/loss ranges, probability of profit, expected value, and extreme
// (near-optimum) probabilities.
package probability

import (
	"errors"
	"math"
	"sort"

	"github.com/johnayoung/go-optionlab/pricing"
	"github.com/johnayoung/go-optionlab/primitives"
	"github.com/johnayoung/go-optionlab/strategy"
)

// ErrInvalidRange indicates a ProfitLossRange was constructed with
// lower >= upper while both bounds are finite.
var ErrInvalidRange = errors.New("range lower bound must be less than upper bound")

// Bound is an open (None, mapping to ±∞) or closed terminal-price bound.
type Bound struct {
	value primitives.Positive
	open  bool
}

// OpenBound returns an unbounded Bound (±∞ depending on which side it is
// used as), matching spec §4.7's "open bounds map to ±∞" rule.
func OpenBound() Bound { return Bound{open: true} }

// ClosedBound returns a finite Bound at value.
func ClosedBound(value primitives.Positive) Bound { return Bound{value: value} }

// ProfitLossRange is a half-open or closed interval on the terminal price
// axis, with a computed probability under the active lognormal model.
type ProfitLossRange struct {
	Lower Bound
	Upper Bound
}

// NewProfitLossRange validates lower < upper when both bounds are closed.
func NewProfitLossRange(lower, upper Bound) (ProfitLossRange, error) {
	if !lower.open && !upper.open && lower.value.GreaterThanOrEqual(upper.value) {
		return ProfitLossRange{}, ErrInvalidRange
	}
	return ProfitLossRange{Lower: lower, Upper: upper}, nil
}

// Model bundles the lognormal terminal-price model spec §4.7 describes:
// the underlying price, strategy time horizon, and volatility/drift
// overrides.
type Model struct {
	UnderlyingPrice primitives.Positive
	YearsToHorizon  primitives.Positive
	RiskFreeRate    primitives.Decimal
	Volatility      VolatilityAdjustment
	Trend           *PriceTrend
}

// VolatilityAdjustment overrides the default volatility (the strategy's
// average leg IV) by sampling base ± std_dev_adjustment and averaging.
type VolatilityAdjustment struct {
	Base            primitives.Positive
	StdDevAdjustment primitives.Positive
}

// Sigma returns the effective volatility: base if no adjustment is
// requested (StdDevAdjustment zero), else the average of base-adjustment
// and base+adjustment.
func (v VolatilityAdjustment) Sigma() primitives.Positive {
	if v.StdDevAdjustment.IsZero() {
		return v.Base
	}
	lo, err := v.Base.Sub(v.StdDevAdjustment)
	if err != nil {
		lo = primitives.Zero()
	}
	hi := v.Base.Add(v.StdDevAdjustment)
	avg, err := lo.Add(hi).Div(primitives.Two())
	if err != nil {
		return v.Base
	}
	return avg
}

// PriceTrend shifts the lognormal drift from the risk-free rate toward
// drift_rate, weighted by confidence in [0,1].
type PriceTrend struct {
	DriftRate  primitives.Decimal
	Confidence primitives.Positive // clamped to [0,1] by callers
}

func (m Model) drift() float64 {
	r := m.RiskFreeRate.Float64()
	if m.Trend == nil {
		return r
	}
	c := m.Trend.Confidence.Float64()
	return r*(1-c) + m.Trend.DriftRate.Float64()*c
}

// dStatistic computes d_x = (ln(x/S) - (mu - sigma^2/2)T) / (sigma*sqrt(T))
// from spec §4.7's ProfitLossRange probability formula.
func (m Model) dStatistic(x float64) float64 {
	s := m.UnderlyingPrice.Float64()
	t := m.YearsToHorizon.Float64()
	sigma := m.Volatility.Sigma().Float64()
	mu := m.drift()
	return (math.Log(x/s) - (mu-0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
}

// Probability returns the lognormal probability mass the model assigns
// to r: Φ(d_upper) - Φ(d_lower), with open bounds mapping to Φ=1 (upper)
// or Φ=0 (lower).
func (m Model) Probability(r ProfitLossRange) primitives.Positive {
	upperCDF := 1.0
	if !r.Upper.open {
		upperCDF = pricing.Phi(m.dStatistic(r.Upper.value.Float64()))
	}
	lowerCDF := 0.0
	if !r.Lower.open {
		lowerCDF = pricing.Phi(m.dStatistic(r.Lower.value.Float64()))
	}
	p := upperCDF - lowerCDF
	if p < 0 {
		p = 0
	}
	positive, err := primitives.NewPositiveFromFloat(p)
	if err != nil {
		return primitives.Zero()
	}
	return positive
}

// ProfitRanges partitions the real line (via the strategy's sorted
// break-even points) into ranges and classifies each as profit or loss by
// evaluating CalculateProfitAt its midpoint (or just inside an open end).
func ProfitRanges(s *strategy.Strategy) ([]ProfitLossRange, []ProfitLossRange, error) {
	breakEvens := s.GetBreakEvenPoints()
	sorted := append([]primitives.Positive(nil), breakEvens...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	bounds := make([]Bound, 0, len(sorted)+2)
	bounds = append(bounds, OpenBound())
	for _, be := range sorted {
		bounds = append(bounds, ClosedBound(be))
	}
	bounds = append(bounds, OpenBound())

	var profit, loss []ProfitLossRange
	for i := 0; i+1 < len(bounds); i++ {
		r, err := NewProfitLossRange(bounds[i], bounds[i+1])
		if err != nil {
			continue
		}
		mid := midpoint(bounds[i], bounds[i+1], s.GetUnderlyingPrice())
		p, err := s.CalculateProfitAt(mid)
		if err != nil {
			return nil, nil, err
		}
		if p.IsNegative() {
			loss = append(loss, r)
		} else {
			profit = append(profit, r)
		}
	}
	return profit, loss, nil
}

func midpoint(lower, upper Bound, underlying primitives.Positive) primitives.Positive {
	switch {
	case lower.open && upper.open:
		return underlying
	case lower.open:
		return positiveOrZero(upper.value.Decimal().Mul(primitives.NewDecimalFromFloat(0.5)))
	case upper.open:
		return lower.value.Mul(primitives.Two())
	default:
		mid, err := lower.value.Add(upper.value).Div(primitives.Two())
		if err != nil {
			return underlying
		}
		return mid
	}
}

func positiveOrZero(d primitives.Decimal) primitives.Positive {
	p, err := primitives.NewPositive(d)
	if err != nil {
		return primitives.Zero()
	}
	return p
}

// ProbabilityOfProfit sums the probability mass of every profit range.
func ProbabilityOfProfit(s *strategy.Strategy, m Model) (primitives.Positive, error) {
	profit, _, err := ProfitRanges(s)
	if err != nil {
		return primitives.Positive{}, err
	}
	total := primitives.Zero()
	for _, r := range profit {
		total = total.Add(m.Probability(r))
	}
	return total, nil
}

// gridPoints is the number of steps each profit range is split into for
// ExpectedValue's integral, and the number of steps of ExtremeProbabilities'
// scan from 0.1x to 3x the underlying price.
const gridPoints = 200

// ExpectedValue approximates ∫ P(S)·max(profit(S), 0) dS over the profit
// ranges on a fine grid, per spec §4.7. Open-ended ranges are sampled out
// to 3 standard deviations of the lognormal model beyond the underlying
// price, since the integrand decays rapidly beyond that in practice.
func ExpectedValue(s *strategy.Strategy, m Model) (primitives.Positive, error) {
	profit, _, err := ProfitRanges(s)
	if err != nil {
		return primitives.Positive{}, err
	}
	total := 0.0
	underlying := m.UnderlyingPrice.Float64()
	sigma := m.Volatility.Sigma().Float64()
	t := m.YearsToHorizon.Float64()
	spread := underlying * sigma * math.Sqrt(math.Max(t, 1e-6)) * 3

	for _, r := range profit {
		lo := boundFloat(r.Lower, underlying-spread)
		hi := boundFloat(r.Upper, underlying+spread)
		if hi <= lo {
			continue
		}
		step := (hi - lo) / gridPoints
		for x := lo; x < hi; x += step {
			mid := x + step/2
			sPrice, err := primitives.NewPositiveFromFloat(math.Max(mid, 0))
			if err != nil {
				continue
			}
			profitAtMid, err := s.CalculateProfitAt(sPrice)
			if err != nil {
				return primitives.Positive{}, err
			}
			if profitAtMid.IsNegative() {
				continue
			}
			density := pricing.SmallPhi(m.dStatistic(mid)) / (mid * sigma * math.Sqrt(t))
			total += density * profitAtMid.Float64() * step
		}
	}
	return primitives.NewPositiveFromFloat(math.Max(total, 0))
}

func boundFloat(b Bound, fallback float64) float64 {
	if b.open {
		return fallback
	}
	return b.value.Float64()
}

// ExtremeProbabilities returns the probability that the terminal price
// lands within epsilon of the strategy's max-profit and max-loss price
// points, approximated from the profit/loss curve's own extrema on a
// gridPoints-step scan from 0.1x to 3x the underlying price rather than
// solving for them analytically (the
// catalog only gives closed-form profit/loss magnitudes, not the strike
// at which they occur for every shape).
func ExtremeProbabilities(s *strategy.Strategy, m Model, epsilon primitives.Positive) (pMaxProfit, pMaxLoss primitives.Positive, err error) {
	low := m.UnderlyingPrice.Float64() * 0.1
	high := m.UnderlyingPrice.Float64() * 3
	step := (high - low) / gridPoints

	bestProfit, worstLoss := math.Inf(-1), math.Inf(1)
	var atBestProfit, atWorstLoss float64
	for x := low; x <= high; x += step {
		sPrice, convErr := primitives.NewPositiveFromFloat(x)
		if convErr != nil {
			continue
		}
		p, calcErr := s.CalculateProfitAt(sPrice)
		if calcErr != nil {
			return primitives.Positive{}, primitives.Positive{}, calcErr
		}
		v := p.Float64()
		if v > bestProfit {
			bestProfit, atBestProfit = v, x
		}
		if v < worstLoss {
			worstLoss, atWorstLoss = v, x
		}
	}

	profitRange, rangeErr := NewProfitLossRange(
		ClosedBound(positiveOrZero(primitives.NewDecimalFromFloat(atBestProfit-epsilon.Float64()))),
		ClosedBound(positiveOrZero(primitives.NewDecimalFromFloat(atBestProfit+epsilon.Float64()))),
	)
	if rangeErr != nil {
		return primitives.Zero(), primitives.Zero(), nil
	}
	lossRange, rangeErr := NewProfitLossRange(
		ClosedBound(positiveOrZero(primitives.NewDecimalFromFloat(atWorstLoss-epsilon.Float64()))),
		ClosedBound(positiveOrZero(primitives.NewDecimalFromFloat(atWorstLoss+epsilon.Float64()))),
	)
	if rangeErr != nil {
		return m.Probability(profitRange), primitives.Zero(), nil
	}
	return m.Probability(profitRange), m.Probability(lossRange), nil
}

// Analysis bundles the summary probability report of spec §4.7's
// analyze_probabilities.
type Analysis struct {
	ProbabilityOfProfit primitives.Positive
	ProbabilityOfMaxProfit primitives.Positive
	ProbabilityOfMaxLoss   primitives.Positive
	BreakEvens             []primitives.Positive
	RiskRewardRatio        primitives.Positive
}

// Analyze computes the full spec §4.7 summary report for one strategy.
func Analyze(s *strategy.Strategy, m Model, epsilon primitives.Positive) (Analysis, error) {
	pop, err := ProbabilityOfProfit(s, m)
	if err != nil {
		return Analysis{}, err
	}
	pMaxProfit, pMaxLoss, err := ExtremeProbabilities(s, m, epsilon)
	if err != nil {
		return Analysis{}, err
	}
	ratio, err := s.ProfitRatio()
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{
		ProbabilityOfProfit:    pop,
		ProbabilityOfMaxProfit: pMaxProfit,
		ProbabilityOfMaxLoss:   pMaxLoss,
		BreakEvens:             s.GetBreakEvenPoints(),
		RiskRewardRatio:        ratio,
	}, nil
}
