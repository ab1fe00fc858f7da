package curve_test

import (
	"testing"

	"github.com/johnayoung/go-optionlab/curve"
)

func TestAnalyzeBasicMeanAndStdDev(t *testing.T) {
	c, err := curve.New([]curve.Point2D{pt(0, 1), pt(1, 2), pt(2, 3), pt(3, 4), pt(4, 5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := curve.Analyze(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := m.Basic.Mean.Sub(d(3)).Abs().Float64(); diff > 1e-9 {
		t.Errorf("Mean = %s, want 3", m.Basic.Mean.String())
	}
	if m.Range.Min.Float64() != 1 || m.Range.Max.Float64() != 5 {
		t.Errorf("Range = [%s, %s], want [1, 5]", m.Range.Min.String(), m.Range.Max.String())
	}
}

func TestAnalyzeTrendDetectsPositiveSlope(t *testing.T) {
	c, err := curve.New([]curve.Point2D{pt(0, 0), pt(1, 2), pt(2, 4), pt(3, 6), pt(4, 8)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := curve.Analyze(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := m.Trend.Slope.Sub(d(2)).Abs().Float64(); diff > 1e-6 {
		t.Errorf("Slope = %s, want 2", m.Trend.Slope.String())
	}
	if diff := m.Trend.RSquared.Sub(d(1)).Abs().Float64(); diff > 1e-6 {
		t.Errorf("RSquared = %s, want 1 for a perfectly linear curve", m.Trend.RSquared.String())
	}
	if len(m.Trend.MA3) != 3 {
		t.Errorf("expected 3 MA3 windows over 5 points, got %d", len(m.Trend.MA3))
	}
}

func TestAnalyzeShapeCountsPeakAndValley(t *testing.T) {
	c, err := curve.New([]curve.Point2D{pt(0, 0), pt(1, 5), pt(2, 0), pt(3, -5), pt(4, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := curve.Analyze(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Shape.Peaks != 1 {
		t.Errorf("Peaks = %d, want 1", m.Shape.Peaks)
	}
	if m.Shape.Valleys != 1 {
		t.Errorf("Valleys = %d, want 1", m.Shape.Valleys)
	}
}

func TestAnalyzeRiskSharpeZeroWhenNoVolatility(t *testing.T) {
	c, err := curve.New([]curve.Point2D{pt(0, 5), pt(1, 5), pt(2, 5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := curve.Analyze(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Risk.Sharpe.IsZero() {
		t.Errorf("Sharpe = %s, want 0 when volatility is 0", m.Risk.Sharpe.String())
	}
	if !m.Risk.VaR95.IsZero() {
		t.Errorf("VaR95 = %s, want 0 for a flat curve with no downside spread", m.Risk.VaR95.String())
	}
}
