package surface

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/johnayoung/go-optionlab/pricing"
	"github.com/johnayoung/go-optionlab/primitives"
)

// Basic, Shape, RangeMetrics, Trend, and Risk mirror curve's metrics
// bundles exactly; surface measurements are the z-values, ordered by
// (y, x) for the sequence-dependent Shape/Trend metrics, per spec §4.11's
// "same taxonomy as curves; z-values are the measurements".
type Basic struct {
	Mean   primitives.Decimal
	Median primitives.Decimal
	Mode   primitives.Decimal
	StdDev primitives.Decimal
}

type Shape struct {
	Skewness         primitives.Decimal
	Kurtosis         primitives.Decimal
	Peaks            int
	Valleys          int
	InflectionPoints int
}

type RangeMetrics struct {
	Min   primitives.Decimal
	Max   primitives.Decimal
	Range primitives.Decimal
	Q1    primitives.Decimal
	Q3    primitives.Decimal
	IQR   primitives.Decimal
}

type Trend struct {
	Slope     primitives.Decimal
	Intercept primitives.Decimal
	RSquared  primitives.Decimal
	MA3       []primitives.Decimal
	MA5       []primitives.Decimal
	MA7       []primitives.Decimal
}

type Risk struct {
	Volatility        primitives.Decimal
	VaR95             primitives.Decimal
	ExpectedShortfall primitives.Decimal
	// Beta is a placeholder, as in curve.Risk: no benchmark series is
	// available to a single surface's metrics call.
	Beta   primitives.Decimal
	Sharpe primitives.Decimal
}

// Metrics is the full descriptive/risk report for a surface.
type Metrics struct {
	Basic Basic
	Shape Shape
	Range RangeMetrics
	Trend Trend
	Risk  Risk
}

const varAlpha = 0.05

// Analyze computes Metrics from the surface's z-values, ordering samples
// by (y, x) so Shape/Trend see a stable, deterministic sequence.
func Analyze(s *Surface) (Metrics, error) {
	if len(s.points) == 0 {
		return Metrics{}, ErrNoPoints
	}
	ordered := s.floatPoints()
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].y != ordered[j].y {
			return ordered[i].y < ordered[j].y
		}
		return ordered[i].x < ordered[j].x
	})
	zs := make([]float64, len(ordered))
	seq := make([]float64, len(ordered))
	for i, p := range ordered {
		zs[i] = p.z
		seq[i] = float64(i)
	}

	sortedZs := append([]float64(nil), zs...)
	sort.Float64s(sortedZs)

	basic := basicMetrics(zs, sortedZs)
	shape := shapeMetrics(zs)
	rng := rangeMetrics(sortedZs)
	trend := trendMetrics(seq, zs)
	risk := riskMetrics(basic)

	return Metrics{Basic: basic, Shape: shape, Range: rng, Trend: trend, Risk: risk}, nil
}

func basicMetrics(zs, sortedZs []float64) Basic {
	mean := stat.Mean(zs, nil)
	stdDev := stat.StdDev(zs, nil)
	median := stat.Quantile(0.5, stat.Empirical, sortedZs, nil)
	return Basic{
		Mean:   primitives.NewDecimalFromFloat(mean),
		Median: primitives.NewDecimalFromFloat(median),
		Mode:   primitives.NewDecimalFromFloat(histogramMode(sortedZs)),
		StdDev: primitives.NewDecimalFromFloat(stdDev),
	}
}

// histogramMode mirrors curve's approximation: an exact frequency mode
// rarely exists once z carries decimal precision.
func histogramMode(sortedZs []float64) float64 {
	if len(sortedZs) == 0 {
		return 0
	}
	lo, hi := sortedZs[0], sortedZs[len(sortedZs)-1]
	if lo == hi {
		return lo
	}
	const buckets = 20
	width := (hi - lo) / float64(buckets)
	counts := make([]int, buckets)
	for _, z := range sortedZs {
		b := int((z - lo) / width)
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

func shapeMetrics(zs []float64) Shape {
	skew := stat.Skew(zs, nil)
	kurtosis := stat.ExKurtosis(zs, nil)

	peaks, valleys, inflections := 0, 0, 0
	for i := 1; i < len(zs)-1; i++ {
		if zs[i] > zs[i-1] && zs[i] > zs[i+1] {
			peaks++
		}
		if zs[i] < zs[i-1] && zs[i] < zs[i+1] {
			valleys++
		}
	}
	for i := 2; i < len(zs)-1; i++ {
		prevCurv := zs[i-1] - zs[i-2]
		curvBefore := zs[i] - zs[i-1]
		curvAfter := zs[i+1] - zs[i]
		if signOf(curvBefore-prevCurv) != 0 && signOf(curvAfter-curvBefore) != 0 &&
			signOf(curvBefore-prevCurv) != signOf(curvAfter-curvBefore) {
			inflections++
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

func rangeMetrics(sortedZs []float64) RangeMetrics {
	min := sortedZs[0]
	max := sortedZs[len(sortedZs)-1]
	q1 := stat.Quantile(0.25, stat.Empirical, sortedZs, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sortedZs, nil)
	return RangeMetrics{
		Min:   primitives.NewDecimalFromFloat(min),
		Max:   primitives.NewDecimalFromFloat(max),
		Range: primitives.NewDecimalFromFloat(max - min),
		Q1:    primitives.NewDecimalFromFloat(q1),
		Q3:    primitives.NewDecimalFromFloat(q3),
		IQR:   primitives.NewDecimalFromFloat(q3 - q1),
	}
}

func trendMetrics(seq, zs []float64) Trend {
	alpha, beta := stat.LinearRegression(seq, zs, nil, false)
	r2 := stat.RSquared(seq, zs, nil, alpha, beta)
	return Trend{
		Slope:     primitives.NewDecimalFromFloat(beta),
		Intercept: primitives.NewDecimalFromFloat(alpha),
		RSquared:  primitives.NewDecimalFromFloat(r2),
		MA3:       movingAverage(zs, 3),
		MA5:       movingAverage(zs, 5),
		MA7:       movingAverage(zs, 7),
	}
}

func movingAverage(zs []float64, window int) []primitives.Decimal {
	if len(zs) < window {
		return nil
	}
	out := make([]primitives.Decimal, 0, len(zs)-window+1)
	sum := 0.0
	for i, z := range zs {
		sum += z
		if i >= window {
			sum -= zs[i-window]
		}
		if i >= window-1 {
			out = append(out, primitives.NewDecimalFromFloat(sum/float64(window)))
		}
	}
	return out
}

func riskMetrics(basic Basic) Risk {
	mean := basic.Mean.Float64()
	stdDev := basic.StdDev.Float64()

	z := pricing.Quantile(varAlpha)
	varLoss := -(mean + z*stdDev)
	if varLoss < 0 {
		varLoss = 0
	}

	es := -(mean - stdDev*pricing.SmallPhi(z)/varAlpha)
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
