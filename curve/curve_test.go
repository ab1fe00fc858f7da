package curve_test

import (
	"errors"
	"testing"

	"github.com/johnayoung/go-optionlab/curve"
	"github.com/johnayoung/go-optionlab/primitives"
)

func d(v float64) primitives.Decimal { return primitives.NewDecimalFromFloat(v) }

func pt(x, y float64) curve.Point2D { return curve.Point2D{X: d(x), Y: d(y)} }

func linearCurve(t *testing.T) *curve.Curve {
	t.Helper()
	c, err := curve.New([]curve.Point2D{pt(0, 0), pt(1, 10), pt(2, 20), pt(3, 30), pt(4, 40)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNewSortsAndRejectsDuplicateX(t *testing.T) {
	c, err := curve.New([]curve.Point2D{pt(2, 4), pt(0, 0), pt(1, 2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pts := c.Points()
	for i := 1; i < len(pts); i++ {
		if !pts[i].X.GreaterThan(pts[i-1].X) {
			t.Fatalf("points not sorted ascending at index %d", i)
		}
	}

	_, err = curve.New([]curve.Point2D{pt(1, 1), pt(1, 2)})
	if !errors.Is(err, curve.ErrDuplicateX) {
		t.Fatalf("expected ErrDuplicateX, got %v", err)
	}
}

func TestLinearReturnsStoredYAtKnownX(t *testing.T) {
	c := linearCurve(t)
	y, err := c.Linear(d(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := y.Sub(d(20)).Abs().Float64(); diff > 1e-9 {
		t.Errorf("Linear(2) = %s, want 20 (within 1e-9)", y.String())
	}
}

func TestLinearInterpolatesBetweenPoints(t *testing.T) {
	c := linearCurve(t)
	y, err := c.Linear(d(1.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := y.Sub(d(15)).Abs().Float64(); diff > 1e-9 {
		t.Errorf("Linear(1.5) = %s, want 15", y.String())
	}
}

func TestLinearOutOfRangeFails(t *testing.T) {
	c := linearCurve(t)
	if _, err := c.Linear(d(10)); !errors.Is(err, curve.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestBilinearRequiresFourPoints(t *testing.T) {
	c, err := curve.New([]curve.Point2D{pt(0, 0), pt(1, 1), pt(2, 2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Bilinear(d(1)); !errors.Is(err, curve.ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
}

func TestCubicPassesThroughKnownPoints(t *testing.T) {
	c := linearCurve(t)
	y, err := c.Cubic(d(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := y.Sub(d(20)).Abs().Float64(); diff > 1e-6 {
		t.Errorf("Cubic(2) = %s, want close to 20", y.String())
	}
}

func TestMergeAddOnOverlappingRange(t *testing.T) {
	a, _ := curve.New([]curve.Point2D{pt(0, 0), pt(10, 10)})
	b, _ := curve.New([]curve.Point2D{pt(0, 5), pt(10, 5)})

	merged, err := curve.Merge([]*curve.Curve{a, b}, curve.Add)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	y, err := merged.Linear(d(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := y.Sub(d(5)).Abs().Float64(); diff > 1e-6 {
		t.Errorf("merged value at x=0 = %s, want 5", y.String())
	}
}

func TestMergeIdempotentForSingleCurve(t *testing.T) {
	c := linearCurve(t)
	merged, err := curve.Merge([]*curve.Curve{c}, curve.Add)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range c.Points() {
		y, err := merged.Linear(p.X)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := y.Sub(p.Y).Abs().Float64(); diff > 1e-6 {
			t.Errorf("merge([c]) at x=%s = %s, want %s", p.X.String(), y.String(), p.Y.String())
		}
	}
}

func TestMergeRejectsEmptyIntersection(t *testing.T) {
	a, _ := curve.New([]curve.Point2D{pt(0, 0), pt(1, 1)})
	b, _ := curve.New([]curve.Point2D{pt(5, 5), pt(6, 6)})
	if _, err := curve.Merge([]*curve.Curve{a, b}, curve.Add); !errors.Is(err, curve.ErrEmptyIntersection) {
		t.Fatalf("expected ErrEmptyIntersection, got %v", err)
	}
}

func TestMergeDivideByZeroPreservesAccumulator(t *testing.T) {
	a, _ := curve.New([]curve.Point2D{pt(0, 10), pt(1, 10)})
	b, _ := curve.New([]curve.Point2D{pt(0, 0), pt(1, 0)})
	merged, err := curve.Merge([]*curve.Curve{a, b}, curve.Divide)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	y, err := merged.Linear(d(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := y.Sub(d(10)).Abs().Float64(); diff > 1e-6 {
		t.Errorf("division by zero should preserve accumulator 10, got %s", y.String())
	}
}

func TestParametricCollectsGridPoints(t *testing.T) {
	c, err := curve.Parametric(func(t float64) (curve.Point2D, error) {
		return pt(t, t*t), nil
	}, 0, 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Points()) != 5 {
		t.Fatalf("expected 5 points, got %d", len(c.Points()))
	}
}

func TestParametricFailsWholeConstructionOnAnyError(t *testing.T) {
	_, err := curve.Parametric(func(t float64) (curve.Point2D, error) {
		if t == 2 {
			return curve.Point2D{}, errors.New("boom")
		}
		return pt(t, t), nil
	}, 0, 4, 4)
	if err == nil {
		t.Fatal("expected a single evaluation failure to fail the whole construction")
	}
}
