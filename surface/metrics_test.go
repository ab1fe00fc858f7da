package surface_test

import (
	"testing"

	"github.com/johnayoung/go-optionlab/surface"
)

func TestAnalyzeBasicMeanAndRange(t *testing.T) {
	s := grid3x3(t)
	m, err := surface.Analyze(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Range.Min.Float64() != 0 || m.Range.Max.Float64() != 4 {
		t.Errorf("Range = [%s, %s], want [0, 4]", m.Range.Min.String(), m.Range.Max.String())
	}
	if diff := m.Basic.Mean.Sub(d(2)).Abs().Float64(); diff > 1e-6 {
		t.Errorf("Mean = %s, want 2 (mean of x+y over a 3x3 grid on {0,1,2})", m.Basic.Mean.String())
	}
}

func TestAnalyzeRiskSharpeZeroOnFlatSurface(t *testing.T) {
	var points []surface.Point3D
	for x := 0.0; x <= 2; x++ {
		for y := 0.0; y <= 2; y++ {
			points = append(points, pt(x, y, 7))
		}
	}
	s, err := surface.New(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := surface.Analyze(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Risk.Sharpe.IsZero() {
		t.Errorf("Sharpe = %s, want 0 for a constant surface", m.Risk.Sharpe.String())
	}
}
