package position_test

import (
	"testing"

	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/position"
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

func leg(t *testing.T, side primitives.Side, style primitives.OptionStyle, s, k, iv, days float64) *option.Options {
	t.Helper()
	o, err := option.New(option.Params{
		OptionType:        primitives.European,
		Side:              side,
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

// TestPnLAtExpirationZeroFeeStraddle mirrors spec §8's E3: a long straddle
// struck at-the-money, held to expiration with the underlying unchanged,
// realizes a loss equal to the total premium paid, and reports
// InitialCosts == 0 when fees are zero (the premium itself is not double
// counted into InitialCosts; it is already folded into Realized).
func TestPnLAtExpirationZeroFeeStraddle(t *testing.T) {
	call := leg(t, primitives.Long, primitives.Call, 100, 100, 0.2, 20)
	put := leg(t, primitives.Long, primitives.Put, 100, 100, 0.2, 20)

	callPos, err := position.New(call, mustP(t, 2), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	putPos, err := position.New(put, mustP(t, 2), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := mustP(t, 100)
	callReport, err := callPos.PnLAtExpiration(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	putReport, err := putPos.PnLAtExpiration(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !callReport.InitialCosts.IsZero() || !putReport.InitialCosts.IsZero() {
		t.Errorf("expected zero InitialCosts with zero fees, got call=%s put=%s",
			callReport.InitialCosts.String(), putReport.InitialCosts.String())
	}

	total := callReport.Realized.Add(*putReport.Realized)
	want := primitives.NewDecimalFromFloat(-4)
	if !total.Equal(want) {
		t.Errorf("expected total realized PnL -4, got %s", total.String())
	}
}

func TestPnLAtExpirationShortCallITM(t *testing.T) {
	short := leg(t, primitives.Short, primitives.Call, 120, 100, 0.2, 0)
	pos, err := position.New(short, mustP(t, 5), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := pos.PnLAtExpiration(mustP(t, 120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// intrinsic=20, premium=5: short realizes (20-5)*sign(short=-1) = -15.
	want := primitives.NewDecimalFromFloat(-15)
	if !report.Realized.Equal(want) {
		t.Errorf("expected realized -15, got %s", report.Realized.String())
	}
	if !report.InitialIncome.Equal(primitives.NewDecimalFromFloat(5)) {
		t.Errorf("expected InitialIncome 5, got %s", report.InitialIncome.String())
	}
}

func TestPnLMarkToMarketLeavesRealizedNil(t *testing.T) {
	long := leg(t, primitives.Long, primitives.Call, 100, 100, 0.2, 60)
	pos, err := position.New(long, mustP(t, 4), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := pos.PnL(mustP(t, 100), primitives.Now(), mustP(t, 0.2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Realized != nil {
		t.Error("expected Realized to be nil for a mark-to-market report")
	}
	if report.Unrealized == nil {
		t.Fatal("expected Unrealized to be populated")
	}
}

// TestPnLTimeDecayIsNegativeAtTheMoney mirrors spec §8's E3 expectation
// that an at-the-money long call marked at unchanged spot and vol shows
// negative unrealized PnL: the 4.5 premium paid exceeds the call's
// Black-Scholes value with 20 days left (about 2.0).
func TestPnLTimeDecayIsNegativeAtTheMoney(t *testing.T) {
	long := leg(t, primitives.Long, primitives.Call, 100, 100, 0.2, 20)
	pos, err := position.New(long, mustP(t, 4.5), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := pos.PnL(mustP(t, 100), primitives.Now(), mustP(t, 0.2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Unrealized.IsNegative() {
		t.Errorf("expected negative unrealized PnL from time decay, got %s", report.Unrealized.String())
	}
}

func TestNetCostAndNetPremiumReceived(t *testing.T) {
	long := leg(t, primitives.Long, primitives.Call, 100, 100, 0.2, 30)
	longPos, err := position.New(long, mustP(t, 3), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !longPos.NetCost().Equal(primitives.NewDecimalFromFloat(3)) {
		t.Errorf("expected NetCost 3 for long, got %s", longPos.NetCost().String())
	}
	if !longPos.NetPremiumReceived().IsZero() {
		t.Errorf("expected NetPremiumReceived 0 for long, got %s", longPos.NetPremiumReceived().String())
	}

	short := leg(t, primitives.Short, primitives.Call, 100, 100, 0.2, 30)
	shortPos, err := position.New(short, mustP(t, 3), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shortPos.NetCost().IsZero() {
		t.Errorf("expected NetCost 0 for short, got %s", shortPos.NetCost().String())
	}
	if !shortPos.NetPremiumReceived().Equal(primitives.NewDecimalFromFloat(3)) {
		t.Errorf("expected NetPremiumReceived 3 for short, got %s", shortPos.NetPremiumReceived().String())
	}
}

func TestValidateRejectsNilOption(t *testing.T) {
	pos := &position.Position{}
	if err := pos.Validate(); err == nil {
		t.Error("expected error for nil option")
	}
}

func TestGreeksDelegatesAndScales(t *testing.T) {
	short := leg(t, primitives.Short, primitives.Call, 100, 100, 0.2, 30)
	pos, err := position.New(short, mustP(t, 3), primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := pos.Greeks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.Delta.IsNegative() {
		t.Errorf("expected negative delta for short call, got %s", g.Delta.String())
	}
}
