// Package curve models a 2-D geometric series — typically a strategy's
// profit function sampled across underlying price, but general enough for
// any (x, y) series — with interpolation, elementwise arithmetic, and
// descriptive/risk metrics (spec §4.10).
package curve

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/johnayoung/go-optionlab/primitives"
)

var (
	// ErrOutOfRange indicates a query x falls outside the curve's x-range.
	ErrOutOfRange = errors.New("x is outside the curve's range")
	// ErrInsufficientPoints indicates an interpolation method was given
	// fewer points than it requires.
	ErrInsufficientPoints = errors.New("curve does not have enough points for this interpolation")
	// ErrDuplicateX indicates two points share an x value.
	ErrDuplicateX = errors.New("curve contains duplicate x value")
	// ErrNoPoints indicates an empty point set was supplied.
	ErrNoPoints = errors.New("curve requires at least one point")
)

// Point2D is one (x, y) sample. Both axes are signed decimals since a
// profit curve's y commonly goes negative and a time or strike axis can be
// shifted to a relative origin.
type Point2D struct {
	X primitives.Decimal
	Y primitives.Decimal
}

// Curve is an ordered, strictly-increasing-by-x set of Point2D samples.
type Curve struct {
	points []Point2D
	minX   primitives.Decimal
	maxX   primitives.Decimal
}

// New constructs a Curve from an explicit point set, sorting by x and
// rejecting a duplicate x (interpolation requires a well-defined segment
// for every query point).
func New(points []Point2D) (*Curve, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	sorted := append([]Point2D(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X.LessThan(sorted[j].X) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].X.Equal(sorted[i-1].X) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateX, sorted[i].X.String())
		}
	}
	return &Curve{points: sorted, minX: sorted[0].X, maxX: sorted[len(sorted)-1].X}, nil
}

// ParametricFunc maps a parameter t to a Point2D, or an error if the curve
// cannot be evaluated at that t.
type ParametricFunc func(t float64) (Point2D, error)

// Parametric evaluates f on a regular grid of steps+1 points between
// t_start and t_end and collects the result into a Curve. Any evaluation
// failure fails the whole construction — per spec §9's "a parametric
// curve fails as a whole if any grid-cell evaluation fails" note, this
// never returns a partial curve.
func Parametric(f ParametricFunc, tStart, tEnd float64, steps int) (*Curve, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive", ErrNoPoints)
	}
	points := make([]Point2D, 0, steps+1)
	step := (tEnd - tStart) / float64(steps)
	for i := 0; i <= steps; i++ {
		t := tStart + step*float64(i)
		p, err := f(t)
		if err != nil {
			return nil, fmt.Errorf("parametric evaluation failed at t=%v: %w", t, err)
		}
		points = append(points, p)
	}
	return New(points)
}

// Points returns a read-only snapshot of the curve's samples, sorted
// ascending by x.
func (c *Curve) Points() []Point2D { return append([]Point2D(nil), c.points...) }

// XRange returns the curve's minimum and maximum x.
func (c *Curve) XRange() (min, max primitives.Decimal) { return c.minX, c.maxX }

func (c *Curve) inRange(x primitives.Decimal) bool {
	return x.GreaterThanOrEqual(c.minX) && x.LessThanOrEqual(c.maxX)
}

func (c *Curve) floatPoints() (xs, ys []float64) {
	xs = make([]float64, len(c.points))
	ys = make([]float64, len(c.points))
	for i, p := range c.points {
		xs[i] = p.X.Float64()
		ys[i] = p.Y.Float64()
	}
	return xs, ys
}

// Linear finds the unique segment containing x and linearly interpolates
// y, per spec §4.10.
func (c *Curve) Linear(x primitives.Decimal) (primitives.Decimal, error) {
	if !c.inRange(x) {
		return primitives.Decimal{}, ErrOutOfRange
	}
	if len(c.points) == 1 {
		return c.points[0].Y, nil
	}
	xf := x.Float64()
	for i := 1; i < len(c.points); i++ {
		lo, hi := c.points[i-1], c.points[i]
		if xf <= hi.X.Float64() {
			loX, hiX := lo.X.Float64(), hi.X.Float64()
			if hiX == loX {
				return lo.Y, nil
			}
			ratio := (xf - loX) / (hiX - loX)
			y := lo.Y.Float64() + ratio*(hi.Y.Float64()-lo.Y.Float64())
			return primitives.NewDecimalFromFloat(y), nil
		}
	}
	return c.points[len(c.points)-1].Y, nil
}

// Bilinear on a 1-D curve degenerates to Linear but requires at least 4
// points, per spec §4.10.
func (c *Curve) Bilinear(x primitives.Decimal) (primitives.Decimal, error) {
	if len(c.points) < 4 {
		return primitives.Decimal{}, ErrInsufficientPoints
	}
	return c.Linear(x)
}

// Cubic fits a natural cubic spline over every point and evaluates it at x.
func (c *Curve) Cubic(x primitives.Decimal) (primitives.Decimal, error) {
	if !c.inRange(x) {
		return primitives.Decimal{}, ErrOutOfRange
	}
	if len(c.points) < 3 {
		return primitives.Decimal{}, ErrInsufficientPoints
	}
	xs, ys := c.floatPoints()
	var spline interp.NaturalCubic
	if err := spline.Fit(xs, ys); err != nil {
		return primitives.Decimal{}, fmt.Errorf("fitting natural cubic spline: %w", err)
	}
	return primitives.NewDecimalFromFloat(spline.Predict(x.Float64())), nil
}

// Spline is Cubic under another name, kept as a distinct entry point for
// API parity with Surface.Spline per spec §4.10.
func (c *Curve) Spline(x primitives.Decimal) (primitives.Decimal, error) {
	return c.Cubic(x)
}
