package greeks_test

import (
	"math"
	"testing"

	"github.com/johnayoung/go-optionlab/greeks"
	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/primitives"
)

func mustP(t *testing.T, v float64) primitives.Positive {
	t.Helper()
	p, err := primitives.NewPositiveFromFloat(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func vanilla(t *testing.T, style primitives.OptionStyle, s, k, iv, days float64) *option.Options {
	t.Helper()
	o, err := option.New(option.Params{
		OptionType:        primitives.European,
		Side:              primitives.Long,
		UnderlyingSymbol:  "TEST",
		StrikePrice:       mustP(t, k),
		ExpirationDate:    primitives.ExpirationInDays(mustP(t, days)),
		ImpliedVolatility: mustP(t, iv),
		Quantity:          primitives.One(),
		UnderlyingPrice:   mustP(t, s),
		RiskFreeRate:      primitives.NewDecimalFromFloat(0.05),
		OptionStyle:       style,
		DividendYield:     primitives.Zero(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return o
}

// TestDeltaSymmetry checks invariant 4 from spec §8:
// Δ_call + (-Δ_put) = e^(-qT) for identical market parameters.
func TestDeltaSymmetry(t *testing.T) {
	call := vanilla(t, primitives.Call, 100, 95, 0.25, 120)
	put := vanilla(t, primitives.Put, 100, 95, 0.25, 120)

	callGreeks, err := greeks.Compute(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	putGreeks, err := greeks.Compute(put)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := callGreeks.Delta.Add(putGreeks.Delta.Neg()).Float64()
	expected := math.Exp(-0 * (120.0 / 365.0))
	if math.Abs(sum-expected) > 1e-6 {
		t.Errorf("delta symmetry violated: got %f want %f", sum, expected)
	}
}

func TestGammaPositiveForLongOptions(t *testing.T) {
	call := vanilla(t, primitives.Call, 100, 100, 0.2, 30)
	g, err := greeks.Compute(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.Gamma.IsPositive() {
		t.Errorf("expected positive gamma, got %s", g.Gamma.String())
	}
}

func TestScaleByLegFlipsSignForShort(t *testing.T) {
	long := vanilla(t, primitives.Call, 100, 100, 0.2, 30)
	short := *long
	short.Side = primitives.Short

	base, err := greeks.Compute(long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	longLeg := base.ScaleByLeg(long)
	shortLeg := base.ScaleByLeg(&short)

	if !longLeg.Delta.Equal(shortLeg.Delta.Neg()) {
		t.Errorf("expected short leg delta to be negation of long leg delta")
	}
}

func TestExpiryGreeksAreDegenerate(t *testing.T) {
	itmCall := vanilla(t, primitives.Call, 110, 100, 0.2, 0)
	g, err := greeks.Compute(itmCall)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Delta.String() != "1" {
		t.Errorf("expected delta=1 at expiry ITM call, got %s", g.Delta.String())
	}
	if !g.Gamma.IsZero() || !g.Vega.IsZero() {
		t.Error("expected gamma and vega to be zero at expiry")
	}
}
