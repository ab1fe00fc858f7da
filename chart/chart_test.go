package chart_test

import (
	"strings"
	"testing"

	"github.com/johnayoung/go-optionlab/chart"
	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/position"
	"github.com/johnayoung/go-optionlab/primitives"
	"github.com/johnayoung/go-optionlab/strategy"
)

func mustP(t *testing.T, v float64) primitives.Positive {
	t.Helper()
	p, err := primitives.NewPositiveFromFloat(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func leg(t *testing.T, style primitives.OptionStyle, side primitives.Side, strike, premium float64) *position.Position {
	t.Helper()
	o, err := option.New(option.Params{
		OptionType:        primitives.European,
		Side:              side,
		UnderlyingSymbol:  "AAPL",
		StrikePrice:       mustP(t, strike),
		ExpirationDate:    primitives.ExpirationInDays(mustP(t, 30)),
		ImpliedVolatility: mustP(t, 0.2),
		Quantity:          primitives.One(),
		UnderlyingPrice:   mustP(t, 100),
		RiskFreeRate:      primitives.NewDecimalFromFloat(0.05),
		OptionStyle:       style,
		DividendYield:     primitives.Zero(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := position.New(o, mustP(t, premium), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func bullCallSpread(t *testing.T) *strategy.Strategy {
	t.Helper()
	s, err := strategy.NewBullCallSpread(
		leg(t, primitives.Call, primitives.Long, 95, 8),
		leg(t, primitives.Call, primitives.Short, 105, 3),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestTitleNamesKindSymbolAndStrikes(t *testing.T) {
	title := chart.Title(bullCallSpread(t))
	if !strings.Contains(title, "Bull Call Spread") {
		t.Errorf("title %q missing strategy name", title)
	}
	if !strings.Contains(title, "AAPL") {
		t.Errorf("title %q missing underlying symbol", title)
	}
	if !strings.Contains(title, "95") || !strings.Contains(title, "105") {
		t.Errorf("title %q missing strikes", title)
	}
}

func TestVerticalLinesIncludeBreakEvenAndStrikes(t *testing.T) {
	s := bullCallSpread(t)
	lines := chart.VerticalLines(s)
	if len(lines) < 1+2 {
		t.Fatalf("expected at least 1 break-even + 2 strike lines, got %d", len(lines))
	}
}

func TestPointsOneEntryPerDistinctStrike(t *testing.T) {
	s := bullCallSpread(t)
	points, err := chart.Points(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 labeled points, got %d", len(points))
	}
	if !points[0].X.LessThan(points[1].X) {
		t.Error("expected points sorted ascending by strike")
	}
}

func TestXYValuesSameLengthAndMonotoneX(t *testing.T) {
	s := bullCallSpread(t)
	xs := chart.XValues(s)
	ys, err := chart.YValues(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(xs) != len(ys) {
		t.Fatalf("XValues/YValues length mismatch: %d vs %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		t.Fatal("expected a multi-point grid")
	}
	for i := 1; i < len(xs); i++ {
		if !xs[i].GreaterThan(xs[i-1]) {
			t.Fatalf("XValues not strictly increasing at index %d", i)
		}
	}
}
