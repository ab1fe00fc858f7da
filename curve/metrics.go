package curve

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/johnayoung/go-optionlab/pricing"
	"github.com/johnayoung/go-optionlab/primitives"
)

// Basic bundles the location/spread descriptives of a curve's y-values.
type Basic struct {
	Mean   primitives.Decimal
	Median primitives.Decimal
	Mode   primitives.Decimal
	StdDev primitives.Decimal
}

// Shape bundles the distributional-shape descriptives of a curve's
// y-values: third/fourth standardized moments plus counts of local
// extrema and sign changes in curvature.
type Shape struct {
	Skewness         primitives.Decimal
	Kurtosis         primitives.Decimal
	Peaks            int
	Valleys          int
	InflectionPoints int
}

// RangeMetrics bundles the curve's extreme values and interquartile spread.
type RangeMetrics struct {
	Min   primitives.Decimal
	Max   primitives.Decimal
	Range primitives.Decimal
	Q1    primitives.Decimal
	Q3    primitives.Decimal
	IQR   primitives.Decimal
}

// Trend bundles an OLS fit of y against x plus simple moving averages.
type Trend struct {
	Slope     primitives.Decimal
	Intercept primitives.Decimal
	RSquared  primitives.Decimal
	MA3       []primitives.Decimal
	MA5       []primitives.Decimal
	MA7       []primitives.Decimal
}

// Risk bundles a parametric-normal risk summary of the curve's y-values.
type Risk struct {
	Volatility        primitives.Decimal
	VaR95             primitives.Decimal
	ExpectedShortfall primitives.Decimal
	// Beta is a placeholder: computing it requires a benchmark series that
	// a single curve's metrics bundle doesn't carry, per spec §4.10/§9.
	Beta   primitives.Decimal
	Sharpe primitives.Decimal
}

// Metrics is the full descriptive/risk report for a curve, per spec
// §4.10's Basic/Shape/Range/Trend/Risk taxonomy.
type Metrics struct {
	Basic Basic
	Shape Shape
	Range RangeMetrics
	Trend Trend
	Risk  Risk
}

// varAlpha is the parametric VaR/expected-shortfall tail probability spec
// §4.10 names ("VaR at 95%").
const varAlpha = 0.05

// Analyze computes the full Metrics bundle from the curve's y-values
// (ordered by x) using gonum/stat for every standard statistical moment.
func Analyze(c *Curve) (Metrics, error) {
	if len(c.points) == 0 {
		return Metrics{}, ErrNoPoints
	}
	_, ys := c.floatPoints()

	sortedYs := append([]float64(nil), ys...)
	sort.Float64s(sortedYs)

	basic := basicMetrics(ys, sortedYs)
	shape := shapeMetrics(ys)
	rng := rangeMetrics(sortedYs)
	trend := trendMetrics(c)
	risk := riskMetrics(basic)

	return Metrics{Basic: basic, Shape: shape, Range: rng, Trend: trend, Risk: risk}, nil
}

func basicMetrics(ys, sortedYs []float64) Basic {
	mean := stat.Mean(ys, nil)
	stdDev := stat.StdDev(ys, nil)
	median := stat.Quantile(0.5, stat.Empirical, sortedYs, nil)
	return Basic{
		Mean:   primitives.NewDecimalFromFloat(mean),
		Median: primitives.NewDecimalFromFloat(median),
		Mode:   primitives.NewDecimalFromFloat(histogramMode(sortedYs)),
		StdDev: primitives.NewDecimalFromFloat(stdDev),
	}
}

// histogramMode approximates the mode of a continuous sample by binning
// into a fixed number of equal-width buckets and returning the center of
// the most populous one; an exact frequency-based mode rarely exists once
// values carry decimal precision.
func histogramMode(sortedYs []float64) float64 {
	if len(sortedYs) == 0 {
		return 0
	}
	lo, hi := sortedYs[0], sortedYs[len(sortedYs)-1]
	if lo == hi {
		return lo
	}
	const buckets = 20
	width := (hi - lo) / float64(buckets)
	counts := make([]int, buckets)
	for _, y := range sortedYs {
		b := int((y - lo) / width)
		if b >= buckets {
			b = buckets - 1
		}
		counts[b]++
	}
	best := 0
	for i, count := range counts {
		if count > counts[best] {
			best = i
		}
	}
	return lo + width*(float64(best)+0.5)
}

func shapeMetrics(ys []float64) Shape {
	skew := stat.Skew(ys, nil)
	kurtosis := stat.ExKurtosis(ys, nil)

	peaks, valleys, inflections := 0, 0, 0
	for i := 1; i < len(ys)-1; i++ {
		if ys[i] > ys[i-1] && ys[i] > ys[i+1] {
			peaks++
		}
		if ys[i] < ys[i-1] && ys[i] < ys[i+1] {
			valleys++
		}
	}
	for i := 1; i < len(ys)-1; i++ {
		curvBefore := ys[i] - ys[i-1]
		curvAfter := ys[i+1] - ys[i]
		if i > 1 {
			prevCurv := ys[i-1] - ys[i-2]
			if signOf(curvBefore-prevCurv) != 0 && signOf(curvAfter-curvBefore) != 0 &&
				signOf(curvBefore-prevCurv) != signOf(curvAfter-curvBefore) {
				inflections++
			}
		}
	}

	return Shape{
		Skewness:         primitives.NewDecimalFromFloat(skew),
		Kurtosis:         primitives.NewDecimalFromFloat(kurtosis),
		Peaks:            peaks,
		Valleys:          valleys,
		InflectionPoints: inflections,
	}
}

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func rangeMetrics(sortedYs []float64) RangeMetrics {
	min := sortedYs[0]
	max := sortedYs[len(sortedYs)-1]
	q1 := stat.Quantile(0.25, stat.Empirical, sortedYs, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sortedYs, nil)
	return RangeMetrics{
		Min:   primitives.NewDecimalFromFloat(min),
		Max:   primitives.NewDecimalFromFloat(max),
		Range: primitives.NewDecimalFromFloat(max - min),
		Q1:    primitives.NewDecimalFromFloat(q1),
		Q3:    primitives.NewDecimalFromFloat(q3),
		IQR:   primitives.NewDecimalFromFloat(q3 - q1),
	}
}

func trendMetrics(c *Curve) Trend {
	xs, ys := c.floatPoints()
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	return Trend{
		Slope:     primitives.NewDecimalFromFloat(beta),
		Intercept: primitives.NewDecimalFromFloat(alpha),
		RSquared:  primitives.NewDecimalFromFloat(r2),
		MA3:       movingAverage(ys, 3),
		MA5:       movingAverage(ys, 5),
		MA7:       movingAverage(ys, 7),
	}
}

func movingAverage(ys []float64, window int) []primitives.Decimal {
	if len(ys) < window {
		return nil
	}
	out := make([]primitives.Decimal, 0, len(ys)-window+1)
	sum := 0.0
	for i, y := range ys {
		sum += y
		if i >= window {
			sum -= ys[i-window]
		}
		if i >= window-1 {
			out = append(out, primitives.NewDecimalFromFloat(sum/float64(window)))
		}
	}
	return out
}

// riskMetrics computes a parametric-normal VaR/expected-shortfall pair
// from the curve's mean and standard deviation, per spec §4.10's "VaR at
// 95% via parametric method". Both are reported as positive loss
// magnitudes: a curve whose mean comfortably exceeds its spread reports a
// small or zero VaR/ES.
func riskMetrics(basic Basic) Risk {
	mean := basic.Mean.Float64()
	stdDev := basic.StdDev.Float64()

	z := pricing.Quantile(varAlpha)
	varLoss := -(mean + z*stdDev)
	if varLoss < 0 {
		varLoss = 0
	}

	es := 0.0
	if varAlpha > 0 {
		es = -(mean - stdDev*pricing.SmallPhi(z)/varAlpha)
	}
	if es < 0 {
		es = 0
	}

	sharpe := 0.0
	if stdDev != 0 {
		sharpe = mean / stdDev
	}

	return Risk{
		Volatility:        primitives.NewDecimalFromFloat(stdDev),
		VaR95:             primitives.NewDecimalFromFloat(varLoss),
		ExpectedShortfall: primitives.NewDecimalFromFloat(es),
		Beta:              primitives.DecimalZero(),
		Sharpe:            primitives.NewDecimalFromFloat(sharpe),
	}
}
