package surface

import (
	"math"
	"sort"

	"github.com/johnayoung/go-optionlab/primitives"
)

// Linear takes the 3 nearest points, rejects a collinear triple, and
// interpolates z at (x, y) via barycentric weights, per spec §4.11.
func (s *Surface) Linear(x, y primitives.Decimal) (primitives.Decimal, error) {
	if !s.inRange(x, y) {
		return primitives.Decimal{}, ErrOutOfRange
	}
	if len(s.points) < 3 {
		return primitives.Decimal{}, ErrInsufficientPoints
	}
	xf, yf := x.Float64(), y.Float64()
	three := nearest(s.floatPoints(), xf, yf, 3)

	area := signedArea(three[0], three[1], three[2])
	if area == 0 {
		return primitives.Decimal{}, ErrDegenerateTriple
	}

	w0 := signedArea(floatPoint{x: xf, y: yf}, three[1], three[2]) / area
	w1 := signedArea(three[0], floatPoint{x: xf, y: yf}, three[2]) / area
	w2 := 1 - w0 - w1

	z := w0*three[0].z + w1*three[1].z + w2*three[2].z
	return primitives.NewDecimalFromFloat(z), nil
}

func signedArea(a, b, c floatPoint) float64 {
	return (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
}

// Bilinear takes the 4 nearest points, sorts them by (y, x) into a
// quadrilateral, rejects a degenerate quadrilateral (every point at the
// same (x, y), differing only in z — spec §4.11's explicit scenario), and
// interpolates z via standard bilinear weights in normalized coordinates.
func (s *Surface) Bilinear(x, y primitives.Decimal) (primitives.Decimal, error) {
	if !s.inRange(x, y) {
		return primitives.Decimal{}, ErrOutOfRange
	}
	if len(s.points) < 4 {
		return primitives.Decimal{}, ErrInsufficientPoints
	}
	xf, yf := x.Float64(), y.Float64()
	four := nearest(s.floatPoints(), xf, yf, 4)
	sort.SliceStable(four, func(i, j int) bool {
		if four[i].y != four[j].y {
			return four[i].y < four[j].y
		}
		return four[i].x < four[j].x
	})

	bottomLeft, bottomRight := four[0], four[1]
	topLeft, topRight := four[2], four[3]

	x0, x1 := bottomLeft.x, bottomRight.x
	y0, y1 := bottomLeft.y, topLeft.y
	if x1-x0 == 0 || y1-y0 == 0 {
		return primitives.Decimal{}, ErrInvalidQuadrilateral
	}

	tx := (xf - x0) / (x1 - x0)
	ty := (yf - y0) / (y1 - y0)

	z := bottomLeft.z*(1-tx)*(1-ty) +
		bottomRight.z*tx*(1-ty) +
		topLeft.z*(1-tx)*ty +
		topRight.z*tx*ty
	return primitives.NewDecimalFromFloat(z), nil
}

const cubicEpsilon = 1e-9

// Cubic takes the 9 nearest points and weights each by 1/(distance+ε)³,
// falling back to a simple average if the total weight underflows to
// zero, per spec §4.11.
func (s *Surface) Cubic(x, y primitives.Decimal) (primitives.Decimal, error) {
	if !s.inRange(x, y) {
		return primitives.Decimal{}, ErrOutOfRange
	}
	if len(s.points) < 9 {
		return primitives.Decimal{}, ErrInsufficientPoints
	}
	xf, yf := x.Float64(), y.Float64()
	nine := nearest(s.floatPoints(), xf, yf, 9)

	var weightedSum, totalWeight, plainSum float64
	for _, p := range nine {
		dist := distance(p.x, p.y, xf, yf)
		w := 1 / cube(dist+cubicEpsilon)
		weightedSum += w * p.z
		totalWeight += w
		plainSum += p.z
	}
	if totalWeight == 0 {
		return primitives.NewDecimalFromFloat(plainSum / float64(len(nine))), nil
	}
	return primitives.NewDecimalFromFloat(weightedSum / totalWeight), nil
}

func distance(ax, ay, bx, by float64) float64 {
	return math.Sqrt(distanceSquared(ax, ay, bx, by))
}

func cube(v float64) float64 { return v * v * v }

// Spline requires at least 9 points: for each unique y holding at least 2
// points, it linearly interpolates along x at the query x, then linearly
// interpolates the resulting (y, z) set along y at the query y, per
// spec §4.11.
func (s *Surface) Spline(x, y primitives.Decimal) (primitives.Decimal, error) {
	if !s.inRange(x, y) {
		return primitives.Decimal{}, ErrOutOfRange
	}
	if len(s.points) < 9 {
		return primitives.Decimal{}, ErrInsufficientPoints
	}
	xf, yf := x.Float64(), y.Float64()

	byY := map[float64][]floatPoint{}
	for _, p := range s.floatPoints() {
		byY[p.y] = append(byY[p.y], p)
	}

	var ys []float64
	for yk := range byY {
		if len(byY[yk]) >= 2 {
			ys = append(ys, yk)
		}
	}
	if len(ys) < 2 {
		return primitives.Decimal{}, ErrInsufficientPoints
	}
	sort.Float64s(ys)

	type yz struct{ y, z float64 }
	var slice []yz
	for _, yk := range ys {
		row := byY[yk]
		sort.SliceStable(row, func(i, j int) bool { return row[i].x < row[j].x })
		z, ok := linear1D(row, xf)
		if !ok {
			continue
		}
		slice = append(slice, yz{y: yk, z: z})
	}
	if len(slice) < 2 {
		return primitives.Decimal{}, ErrInsufficientPoints
	}
	sort.SliceStable(slice, func(i, j int) bool { return slice[i].y < slice[j].y })

	for i := 1; i < len(slice); i++ {
		lo, hi := slice[i-1], slice[i]
		if yf <= hi.y || i == len(slice)-1 {
			if hi.y == lo.y {
				return primitives.NewDecimalFromFloat(lo.z), nil
			}
			ratio := (yf - lo.y) / (hi.y - lo.y)
			return primitives.NewDecimalFromFloat(lo.z + ratio*(hi.z-lo.z)), nil
		}
	}
	return primitives.NewDecimalFromFloat(slice[0].z), nil
}

// linear1D performs 1-D linear interpolation of z against x over row,
// which must already be sorted ascending by x. ok is false when row has
// fewer than 2 points.
func linear1D(row []floatPoint, xf float64) (z float64, ok bool) {
	if len(row) < 2 {
		if len(row) == 1 {
			return row[0].z, true
		}
		return 0, false
	}
	if xf <= row[0].x {
		return row[0].z, true
	}
	if xf >= row[len(row)-1].x {
		return row[len(row)-1].z, true
	}
	for i := 1; i < len(row); i++ {
		if xf <= row[i].x {
			lo, hi := row[i-1], row[i]
			if hi.x == lo.x {
				return lo.z, true
			}
			ratio := (xf - lo.x) / (hi.x - lo.x)
			return lo.z + ratio*(hi.z-lo.z), true
		}
	}
	return row[len(row)-1].z, true
}
