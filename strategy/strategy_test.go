package strategy_test

import (
	"testing"

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

func leg(t *testing.T, side primitives.Side, style primitives.OptionStyle, s, k, premium, iv, days, qty float64) *position.Position {
	t.Helper()
	o, err := option.New(option.Params{
		OptionType:        primitives.European,
		Side:              side,
		UnderlyingSymbol:  "TEST",
		StrikePrice:       mustP(t, k),
		ExpirationDate:    primitives.ExpirationInDays(mustP(t, days)),
		ImpliedVolatility: mustP(t, iv),
		Quantity:          mustP(t, qty),
		UnderlyingPrice:   mustP(t, s),
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

func TestLongCallBreakEvenAndMaxLoss(t *testing.T) {
	call := leg(t, primitives.Long, primitives.Call, 100, 100, 3, 0.2, 30, 1)
	s, err := strategy.NewLongCall(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Validate() {
		t.Fatal("expected valid strategy")
	}
	be := s.GetBreakEvenPoints()
	if len(be) != 1 || !be[0].Equal(mustP(t, 103)) {
		t.Errorf("expected break-even 103, got %v", be)
	}
	maxProfit, err := s.MaxProfit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !maxProfit.IsInfinite() {
		t.Error("expected infinite max profit for long call")
	}
	maxLoss, err := s.MaxLoss()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !maxLoss.Equal(mustP(t, 3)) {
		t.Errorf("expected max loss 3, got %s", maxLoss.String())
	}
}

func TestBullCallSpreadMaxProfitAndLoss(t *testing.T) {
	longLow := leg(t, primitives.Long, primitives.Call, 100, 95, 7, 0.2, 30, 1)
	shortHigh := leg(t, primitives.Short, primitives.Call, 100, 105, 2, 0.2, 30, 1)
	s, err := strategy.NewBullCallSpread(longLow, shortHigh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Validate() {
		t.Fatal("expected valid strategy")
	}

	maxLoss, err := s.MaxLoss()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !maxLoss.Equal(mustP(t, 5)) {
		t.Errorf("expected max loss 5 (net debit), got %s", maxLoss.String())
	}
	maxProfit, err := s.MaxProfit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// width (10) - net debit (5) = 5
	if !maxProfit.Equal(mustP(t, 5)) {
		t.Errorf("expected max profit 5, got %s", maxProfit.String())
	}
}

func TestLongStraddleBreakEvens(t *testing.T) {
	call := leg(t, primitives.Long, primitives.Call, 100, 100, 3, 0.2, 30, 1)
	put := leg(t, primitives.Long, primitives.Put, 100, 100, 3, 0.2, 30, 1)
	s, err := strategy.NewLongStraddle(call, put)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	be := s.GetBreakEvenPoints()
	if len(be) != 2 {
		t.Fatalf("expected 2 break-evens, got %d", len(be))
	}
	if !be[0].Equal(mustP(t, 94)) || !be[1].Equal(mustP(t, 106)) {
		t.Errorf("expected break-evens 94/106, got %v", be)
	}
}

func TestIronCondorShapeAndProfit(t *testing.T) {
	shortCall := leg(t, primitives.Short, primitives.Call, 100, 110, 2, 0.2, 30, 1)
	longCall := leg(t, primitives.Long, primitives.Call, 100, 115, 1, 0.2, 30, 1)
	shortPut := leg(t, primitives.Short, primitives.Put, 100, 90, 2, 0.2, 30, 1)
	longPut := leg(t, primitives.Long, primitives.Put, 100, 85, 1, 0.2, 30, 1)

	s, err := strategy.NewIronCondor(shortCall, longCall, shortPut, longPut)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Validate() {
		t.Fatal("expected valid iron condor")
	}
	maxProfit, err := s.MaxProfit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// net credit = (2+2) - (1+1) = 2
	if !maxProfit.Equal(mustP(t, 2)) {
		t.Errorf("expected max profit 2, got %s", maxProfit.String())
	}
	maxLoss, err := s.MaxLoss()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// wing width 5 - credit 2 = 3
	if !maxLoss.Equal(mustP(t, 3)) {
		t.Errorf("expected max loss 3, got %s", maxLoss.String())
	}
}

func TestInvalidShapeRejected(t *testing.T) {
	call := leg(t, primitives.Long, primitives.Call, 100, 100, 3, 0.2, 30, 1)
	put := leg(t, primitives.Long, primitives.Put, 100, 100, 3, 0.2, 30, 1)
	// LongCall expects exactly one call leg; feeding a put should fail shape validation.
	if _, err := strategy.NewLongCall(put); err == nil {
		t.Error("expected error constructing LongCall from a put leg")
	}
	_ = call
}

func TestAdjustOptionPositionRejectsMissingLeg(t *testing.T) {
	call := leg(t, primitives.Long, primitives.Call, 100, 100, 3, 0.2, 30, 1)
	s, err := strategy.NewLongCall(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = s.AdjustOptionPosition(primitives.NewDecimalFromFloat(1), mustP(t, 999), primitives.Call, primitives.Long)
	if err == nil {
		t.Error("expected error adjusting a non-existent leg")
	}
}

func TestCalculateProfitAtSumsLegs(t *testing.T) {
	call := leg(t, primitives.Long, primitives.Call, 100, 100, 3, 0.2, 0, 1)
	put := leg(t, primitives.Long, primitives.Put, 100, 100, 3, 0.2, 0, 1)
	s, err := strategy.NewLongStraddle(call, put)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profit, err := s.CalculateProfitAt(mustP(t, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// both legs worthless at expiration, at-the-money: -3 -3 = -6
	if !profit.Equal(primitives.NewDecimalFromFloat(-6)) {
		t.Errorf("expected profit -6, got %s", profit.String())
	}
}
