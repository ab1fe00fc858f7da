package curve

import (
	"errors"

	"github.com/johnayoung/go-optionlab/primitives"
)

// ErrEmptyIntersection indicates the curves being merged share no common
// x-range.
var ErrEmptyIntersection = errors.New("curves share no overlapping x-range")

// ErrNoCurves indicates Merge was called with no curves.
var ErrNoCurves = errors.New("merge requires at least one curve")

// Op selects the elementwise combination Merge applies across curves.
type Op string

const (
	Add      Op = "add"
	Subtract Op = "subtract"
	Multiply Op = "multiply"
	Divide   Op = "divide"
	Max      Op = "max"
	Min      Op = "min"
)

// defaultMergeGrid is the sample count Merge uses absent an override, per
// spec §4.10's "default 100 points".
const defaultMergeGrid = 100

// Merge resamples every curve onto a common grid over the intersection of
// their x-ranges and combines the samples with op. A division by zero at a
// sample leaves the running accumulator unchanged rather than failing the
// whole merge, per spec §4.10.
func Merge(curves []*Curve, op Op) (*Curve, error) {
	if len(curves) == 0 {
		return nil, ErrNoCurves
	}
	if len(curves) == 1 {
		return New(curves[0].Points())
	}

	lo, hi := curves[0].minX, curves[0].maxX
	for _, c := range curves[1:] {
		if c.minX.GreaterThan(lo) {
			lo = c.minX
		}
		if c.maxX.LessThan(hi) {
			hi = c.maxX
		}
	}
	if lo.GreaterThan(hi) {
		return nil, ErrEmptyIntersection
	}

	loF, hiF := lo.Float64(), hi.Float64()
	step := (hiF - loF) / float64(defaultMergeGrid-1)

	points := make([]Point2D, 0, defaultMergeGrid)
	for i := 0; i < defaultMergeGrid; i++ {
		xf := loF + step*float64(i)
		if i == defaultMergeGrid-1 {
			xf = hiF
		}
		x := primitives.NewDecimalFromFloat(xf)

		acc, err := curves[0].Linear(x)
		if err != nil {
			return nil, err
		}
		for _, c := range curves[1:] {
			y, err := c.Linear(x)
			if err != nil {
				return nil, err
			}
			acc = combine(acc, y, op)
		}
		points = append(points, Point2D{X: x, Y: acc})
	}
	return New(points)
}

func combine(acc, y primitives.Decimal, op Op) primitives.Decimal {
	switch op {
	case Add:
		return acc.Add(y)
	case Subtract:
		return acc.Sub(y)
	case Multiply:
		return acc.Mul(y)
	case Divide:
		result, err := acc.Div(y)
		if err != nil {
			return acc
		}
		return result
	case Max:
		if y.GreaterThan(acc) {
			return y
		}
		return acc
	case Min:
		if y.LessThan(acc) {
			return y
		}
		return acc
	default:
		return acc
	}
}
