package chain_test

import (
	"errors"
	"testing"

	"github.com/johnayoung/go-optionlab/chain"
	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/position"
	"github.com/johnayoung/go-optionlab/primitives"
	"github.com/johnayoung/go-optionlab/strategy"
)

func longCallFromRow(t *testing.T, c *chain.OptionChain, r chain.OptionData) (*strategy.Strategy, error) {
	t.Helper()
	if r.CallAsk == nil {
		return nil, errors.New("no call ask quote for this strike")
	}
	o, err := option.New(option.Params{
		OptionType:        primitives.European,
		Side:              primitives.Long,
		UnderlyingSymbol:  c.Symbol,
		StrikePrice:       r.Strike,
		ExpirationDate:    c.ExpirationDate,
		ImpliedVolatility: r.ImpliedVolatility,
		Quantity:          primitives.One(),
		UnderlyingPrice:   c.UnderlyingPrice,
		RiskFreeRate:      primitives.NewDecimalFromFloat(0.05),
		OptionStyle:       primitives.Call,
		DividendYield:     primitives.Zero(),
	})
	if err != nil {
		return nil, err
	}
	p, err := position.New(o, *r.CallAsk, primitives.Now(), primitives.Zero(), primitives.Zero())
	if err != nil {
		return nil, err
	}
	return strategy.NewLongCall(p)
}

func buildChain(t *testing.T) *chain.OptionChain {
	t.Helper()
	rows := []chain.OptionData{row(t, 90), row(t, 95), row(t, 100), row(t, 105), row(t, 110)}
	c, err := chain.New("TEST", mustP(t, 100), primitives.ExpirationInDays(mustP(t, 30)), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestFindOptimalPicksBestRatioAmongUpperStrikes(t *testing.T) {
	c := buildChain(t)
	opt := &chain.Optimizer{}

	best, err := opt.FindOptimal(c, 1, primitives.UpperSide(), primitives.CriteriaRatio, longCallFromRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	legs := best.GetPositions()
	if len(legs) != 1 {
		t.Fatalf("expected a single-leg strategy, got %d legs", len(legs))
	}
	strike := legs[0].Option.StrikePrice
	if strike.LessThan(mustP(t, 100)) {
		t.Errorf("expected a strike at or above the underlying, got %s", strike.String())
	}
}

func TestFindOptimalReturnsErrorWhenAllCandidatesSkipped(t *testing.T) {
	c := buildChain(t)
	opt := &chain.Optimizer{}

	alwaysFails := func(_ *chain.OptionChain, _ []chain.OptionData) (*strategy.Strategy, error) {
		return nil, errors.New("cannot construct")
	}

	_, err := opt.FindOptimal(c, 1, primitives.AllSides(), primitives.CriteriaRatio, alwaysFails)
	if !errors.Is(err, chain.ErrNoValidCandidate) {
		t.Fatalf("expected ErrNoValidCandidate, got %v", err)
	}
}

func TestFindOptimalFiltersBySide(t *testing.T) {
	c := buildChain(t)
	opt := &chain.Optimizer{}

	var seenBelowUnderlying bool
	capture := func(chn *chain.OptionChain, rows []chain.OptionData) (*strategy.Strategy, error) {
		if rows[0].Strike.LessThan(chn.UnderlyingPrice) {
			seenBelowUnderlying = true
		}
		return longCallFromRow(t, chn, rows[0])
	}

	if _, err := opt.FindOptimal(c, 1, primitives.UpperSide(), primitives.CriteriaRatio, capture); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenBelowUnderlying {
		t.Error("UpperSide() should never hand the callback a below-underlying strike")
	}
}

func TestFindOptimalAreaCriteriaDispatch(t *testing.T) {
	c := buildChain(t)
	opt := &chain.Optimizer{}

	best, err := opt.FindOptimal(c, 1, primitives.AllSides(), primitives.CriteriaArea, longCallFromRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best == nil {
		t.Fatal("expected a candidate")
	}
}
