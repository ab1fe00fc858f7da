package chain_test

import (
	"encoding/json"
	"testing"

	"github.com/johnayoung/go-optionlab/chain"
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

func row(t *testing.T, strike float64) chain.OptionData {
	t.Helper()
	bid := mustP(t, 1)
	ask := mustP(t, 1.2)
	return chain.OptionData{
		Strike:            mustP(t, strike),
		CallBid:           &bid,
		CallAsk:           &ask,
		PutBid:            &bid,
		PutAsk:            &ask,
		ImpliedVolatility: mustP(t, 0.25),
		Delta:             primitives.NewDecimalFromFloat(0.5),
		Volume:            100,
		OpenInterest:      500,
	}
}

func sampleChain(t *testing.T) *chain.OptionChain {
	t.Helper()
	rows := []chain.OptionData{row(t, 110), row(t, 90), row(t, 100), row(t, 95), row(t, 105)}
	c, err := chain.New("TEST", mustP(t, 100), primitives.ExpirationInDays(mustP(t, 30)), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNewSortsByStrikeAscending(t *testing.T) {
	c := sampleChain(t)
	for i := 1; i < len(c.Options); i++ {
		if !c.Options[i].Strike.GreaterThan(c.Options[i-1].Strike) {
			t.Fatalf("strikes not strictly ascending at index %d", i)
		}
	}
}

func TestNewRejectsDuplicateStrike(t *testing.T) {
	rows := []chain.OptionData{row(t, 100), row(t, 100)}
	_, err := chain.New("TEST", mustP(t, 100), primitives.ExpirationInDays(mustP(t, 30)), rows)
	if err == nil {
		t.Fatal("expected error for duplicate strike")
	}
}

func TestTickReturnsSmallestGap(t *testing.T) {
	c := sampleChain(t)
	tick := c.Tick()
	want := mustP(t, 5)
	if !tick.Equal(want) {
		t.Errorf("Tick() = %s, want %s", tick.String(), want.String())
	}
}

func TestTickWithFewerThanTwoRowsIsZero(t *testing.T) {
	c, err := chain.New("TEST", mustP(t, 100), primitives.ExpirationInDays(mustP(t, 30)), []chain.OptionData{row(t, 100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Tick().IsZero() {
		t.Errorf("expected zero tick for single-row chain, got %s", c.Tick().String())
	}
}

func TestSingleCombinationsCoversEveryRow(t *testing.T) {
	c := sampleChain(t)
	combos := c.SingleCombinations()
	if len(combos) != len(c.Options) {
		t.Fatalf("expected %d combinations, got %d", len(c.Options), len(combos))
	}
}

func TestPairCombinationsCountAndOrder(t *testing.T) {
	c := sampleChain(t)
	combos := c.PairCombinations()
	n := len(c.Options)
	want := n * (n - 1) / 2
	if len(combos) != want {
		t.Fatalf("expected %d pair combinations, got %d", want, len(combos))
	}
	for i, combo := range combos {
		if combo.Index != i {
			t.Errorf("combination %d carries index %d, want %d", i, combo.Index, i)
		}
		if !combo.Rows[1].Strike.GreaterThan(combo.Rows[0].Strike) {
			t.Errorf("pair %d not strictly increasing by strike", i)
		}
	}
}

func TestQuadCombinationsCount(t *testing.T) {
	c := sampleChain(t)
	combos := c.QuadCombinations()
	n := len(c.Options)
	want := n * (n - 1) * (n - 2) * (n - 3) / 24
	if len(combos) != want {
		t.Fatalf("expected %d quad combinations, got %d", want, len(combos))
	}
}

func TestCombinationsWithArityAboveRowCountIsEmpty(t *testing.T) {
	c := sampleChain(t)
	combos := c.TripleCombinations()
	for _, combo := range combos {
		if len(combo.Rows) != 3 {
			t.Fatalf("expected triples, got %d rows", len(combo.Rows))
		}
	}
	rows := []chain.OptionData{row(t, 100)}
	small, err := chain.New("TEST", mustP(t, 100), primitives.ExpirationInDays(mustP(t, 30)), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := small.QuadCombinations(); got != nil {
		t.Errorf("expected nil combinations when arity exceeds row count, got %v", got)
	}
}

func TestOptionChainJSONRoundTrip(t *testing.T) {
	c := sampleChain(t)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var decoded chain.OptionChain
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if decoded.Symbol != c.Symbol {
		t.Errorf("Symbol = %q, want %q", decoded.Symbol, c.Symbol)
	}
	if !decoded.UnderlyingPrice.Equal(c.UnderlyingPrice) {
		t.Errorf("UnderlyingPrice = %s, want %s", decoded.UnderlyingPrice.String(), c.UnderlyingPrice.String())
	}
	if len(decoded.Options) != len(c.Options) {
		t.Fatalf("Options length = %d, want %d", len(decoded.Options), len(c.Options))
	}
	for i := range c.Options {
		if !decoded.Options[i].Strike.Equal(c.Options[i].Strike) {
			t.Errorf("option %d strike = %s, want %s", i, decoded.Options[i].Strike.String(), c.Options[i].Strike.String())
		}
		if !decoded.Options[i].CallBid.Equal(*c.Options[i].CallBid) {
			t.Errorf("option %d call bid mismatch", i)
		}
	}
}

func TestOptionDataJSONNullQuotesRoundTrip(t *testing.T) {
	o := chain.OptionData{
		Strike:            mustP(t, 100),
		ImpliedVolatility: mustP(t, 0.3),
		Delta:             primitives.NewDecimalFromFloat(-0.4),
	}
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var decoded chain.OptionData
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if decoded.CallBid != nil || decoded.CallAsk != nil || decoded.PutBid != nil || decoded.PutAsk != nil {
		t.Error("expected absent quotes to round-trip as nil")
	}
	if !decoded.Delta.Equal(o.Delta) {
		t.Errorf("Delta = %s, want %s", decoded.Delta.String(), o.Delta.String())
	}
}
