// Package surface models a 3-D measurement grid — z as a function of
// (x, y) — with nearest-neighbor interpolation, grid-resampled arithmetic,
// and the same descriptive/risk metrics taxonomy as curve (spec §4.11).
package surface

import (
	"errors"
	"fmt"
	"sort"

	"github.com/johnayoung/go-optionlab/primitives"
)

var (
	// ErrOutOfRange indicates a query (x, y) falls outside the surface's
	// (x-range, y-range).
	ErrOutOfRange = errors.New("point is outside the surface's (x, y) range")
	// ErrInsufficientPoints indicates an interpolation method was given
	// fewer points than it requires.
	ErrInsufficientPoints = errors.New("surface does not have enough points for this interpolation")
	// ErrDegenerateTriple indicates the 3 nearest points for linear
	// interpolation are collinear and so can't form a barycentric basis.
	ErrDegenerateTriple = errors.New("nearest 3 points are collinear")
	// ErrInvalidQuadrilateral indicates the 4 nearest points for bilinear
	// interpolation collapse to a single (x, y) location.
	ErrInvalidQuadrilateral = errors.New("nearest 4 points do not form a valid quadrilateral")
	// ErrNoPoints indicates an empty point set was supplied.
	ErrNoPoints = errors.New("surface requires at least one point")
)

// Point3D is one (x, y, z) sample.
type Point3D struct {
	X primitives.Decimal
	Y primitives.Decimal
	Z primitives.Decimal
}

// Surface is an unordered set of Point3D samples plus its cached
// (x-range, y-range).
type Surface struct {
	points     []Point3D
	minX, maxX primitives.Decimal
	minY, maxY primitives.Decimal
}

// New constructs a Surface from an explicit point set. Unlike Curve,
// duplicate (x, y) locations are permitted (interpolation methods reject
// them locally when they make a query degenerate, per spec §4.11's
// explicit degenerate-quadrilateral scenario).
func New(points []Point3D) (*Surface, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	s := &Surface{points: append([]Point3D(nil), points...)}
	s.minX, s.maxX = points[0].X, points[0].X
	s.minY, s.maxY = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X.LessThan(s.minX) {
			s.minX = p.X
		}
		if p.X.GreaterThan(s.maxX) {
			s.maxX = p.X
		}
		if p.Y.LessThan(s.minY) {
			s.minY = p.Y
		}
		if p.Y.GreaterThan(s.maxY) {
			s.maxY = p.Y
		}
	}
	return s, nil
}

// ParametricFunc maps a grid coordinate (x, y) to a Point3D, or an error
// if the surface cannot be evaluated there.
type ParametricFunc func(x, y float64) (Point3D, error)

// Parametric evaluates f on a regular (xSteps+1) x (ySteps+1) rectangular
// grid and collects the result into a Surface. Any evaluation failure
// fails the whole construction, mirroring curve.Parametric and spec §9's
// short-circuit-on-any-error requirement.
func Parametric(f ParametricFunc, xStart, xEnd, yStart, yEnd float64, xSteps, ySteps int) (*Surface, error) {
	if xSteps <= 0 || ySteps <= 0 {
		return nil, fmt.Errorf("%w: xSteps and ySteps must be positive", ErrNoPoints)
	}
	xStep := (xEnd - xStart) / float64(xSteps)
	yStep := (yEnd - yStart) / float64(ySteps)

	points := make([]Point3D, 0, (xSteps+1)*(ySteps+1))
	for i := 0; i <= xSteps; i++ {
		x := xStart + xStep*float64(i)
		for j := 0; j <= ySteps; j++ {
			y := yStart + yStep*float64(j)
			p, err := f(x, y)
			if err != nil {
				return nil, fmt.Errorf("parametric evaluation failed at (%v, %v): %w", x, y, err)
			}
			points = append(points, p)
		}
	}
	return New(points)
}

// Points returns a read-only snapshot of the surface's samples.
func (s *Surface) Points() []Point3D { return append([]Point3D(nil), s.points...) }

// XRange returns the surface's minimum and maximum x.
func (s *Surface) XRange() (min, max primitives.Decimal) { return s.minX, s.maxX }

// YRange returns the surface's minimum and maximum y.
func (s *Surface) YRange() (min, max primitives.Decimal) { return s.minY, s.maxY }

func (s *Surface) inRange(x, y primitives.Decimal) bool {
	return x.GreaterThanOrEqual(s.minX) && x.LessThanOrEqual(s.maxX) &&
		y.GreaterThanOrEqual(s.minY) && y.LessThanOrEqual(s.maxY)
}

type floatPoint struct {
	x, y, z float64
}

func (s *Surface) floatPoints() []floatPoint {
	out := make([]floatPoint, len(s.points))
	for i, p := range s.points {
		out[i] = floatPoint{x: p.X.Float64(), y: p.Y.Float64(), z: p.Z.Float64()}
	}
	return out
}

func distanceSquared(ax, ay, bx, by float64) float64 {
	dx, dy := ax-bx, ay-by
	return dx*dx + dy*dy
}

// nearest returns the k points closest to (x, y), sorted ascending by
// distance; ties keep their original relative order.
func nearest(points []floatPoint, x, y float64, k int) []floatPoint {
	sorted := append([]floatPoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return distanceSquared(sorted[i].x, sorted[i].y, x, y) < distanceSquared(sorted[j].x, sorted[j].y, x, y)
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
