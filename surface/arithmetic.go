package surface

import (
	"errors"

	"github.com/johnayoung/go-optionlab/primitives"
)

// ErrEmptyIntersection indicates the surfaces being merged share no
// overlapping (x, y) region.
var ErrEmptyIntersection = errors.New("surfaces share no overlapping (x, y) range")

// ErrNoSurfaces indicates Merge was called with no surfaces.
var ErrNoSurfaces = errors.New("merge requires at least one surface")

// Op selects the elementwise combination Merge applies across surfaces,
// mirroring curve.Op.
type Op string

const (
	Add      Op = "add"
	Subtract Op = "subtract"
	Multiply Op = "multiply"
	Divide   Op = "divide"
	Max      Op = "max"
	Min      Op = "min"
)

// mergeGridSize is the per-axis sample count Merge uses, per spec §4.11's
// "resample on a 50×50 grid".
const mergeGridSize = 50

// Merge resamples every surface onto a common 50x50 grid over the
// intersection of their (x, y) ranges — using Linear interpolation, the
// method requiring the fewest neighboring points — and combines the
// samples with op. Division by zero at a sample leaves the accumulator
// unchanged, mirroring curve.Merge.
func Merge(surfaces []*Surface, op Op) (*Surface, error) {
	if len(surfaces) == 0 {
		return nil, ErrNoSurfaces
	}
	if len(surfaces) == 1 {
		return New(surfaces[0].Points())
	}

	loX, hiX := surfaces[0].minX, surfaces[0].maxX
	loY, hiY := surfaces[0].minY, surfaces[0].maxY
	for _, s := range surfaces[1:] {
		if s.minX.GreaterThan(loX) {
			loX = s.minX
		}
		if s.maxX.LessThan(hiX) {
			hiX = s.maxX
		}
		if s.minY.GreaterThan(loY) {
			loY = s.minY
		}
		if s.maxY.LessThan(hiY) {
			hiY = s.maxY
		}
	}
	if loX.GreaterThan(hiX) || loY.GreaterThan(hiY) {
		return nil, ErrEmptyIntersection
	}

	loXf, hiXf := loX.Float64(), hiX.Float64()
	loYf, hiYf := loY.Float64(), hiY.Float64()
	xStep := (hiXf - loXf) / float64(mergeGridSize-1)
	yStep := (hiYf - loYf) / float64(mergeGridSize-1)

	points := make([]Point3D, 0, mergeGridSize*mergeGridSize)
	for i := 0; i < mergeGridSize; i++ {
		xf := loXf + xStep*float64(i)
		if i == mergeGridSize-1 {
			xf = hiXf
		}
		for j := 0; j < mergeGridSize; j++ {
			yf := loYf + yStep*float64(j)
			if j == mergeGridSize-1 {
				yf = hiYf
			}
			x, y := primitives.NewDecimalFromFloat(xf), primitives.NewDecimalFromFloat(yf)

			acc, err := surfaces[0].Linear(x, y)
			if err != nil {
				return nil, err
			}
			for _, s := range surfaces[1:] {
				z, err := s.Linear(x, y)
				if err != nil {
					return nil, err
				}
				acc = combine(acc, z, op)
			}
			points = append(points, Point3D{X: x, Y: y, Z: acc})
		}
	}
	return New(points)
}

func combine(acc, z primitives.Decimal, op Op) primitives.Decimal {
	switch op {
	case Add:
		return acc.Add(z)
	case Subtract:
		return acc.Sub(z)
	case Multiply:
		return acc.Mul(z)
	case Divide:
		result, err := acc.Div(z)
		if err != nil {
			return acc
		}
		return result
	case Max:
		if z.GreaterThan(acc) {
			return z
		}
		return acc
	case Min:
		if z.LessThan(acc) {
			return z
		}
		return acc
	default:
		return acc
	}
}
