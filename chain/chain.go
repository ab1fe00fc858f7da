// Package chain models an option chain — a symbol's quoted strikes for a
// single expiration — and the combinatorial optimizer that searches it for
// the best-scoring instance of a given strategy shape, per spec §4.9.
package chain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/johnayoung/go-optionlab/primitives"
)

// ErrDuplicateStrike indicates two OptionData rows share a strike.
var ErrDuplicateStrike = errors.New("option chain contains duplicate strike")

// OptionData is one quoted row of an OptionChain: the strike plus its
// call/put bid/ask quotes (nil when a quote is unavailable), implied
// volatility, delta, and liquidity figures.
type OptionData struct {
	Strike            primitives.Positive
	CallBid           *primitives.Positive
	CallAsk           *primitives.Positive
	PutBid            *primitives.Positive
	PutAsk            *primitives.Positive
	ImpliedVolatility primitives.Positive
	Delta             primitives.Decimal
	Volume            int64
	OpenInterest      int64
}

// OptionChain is a symbol's quoted strikes for one expiration, sorted
// ascending by strike.
type OptionChain struct {
	Symbol          string
	UnderlyingPrice primitives.Positive
	ExpirationDate  primitives.ExpirationDate
	Options         []OptionData
}

// New constructs an OptionChain, sorting rows by strike and rejecting
// duplicate strikes (spec §4.1's chain iterators require distinct
// strikes to produce well-defined combinations).
func New(symbol string, underlying primitives.Positive, expiration primitives.ExpirationDate, rows []OptionData) (*OptionChain, error) {
	sorted := append([]OptionData(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Strike.LessThan(sorted[j].Strike) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Strike.Equal(sorted[i-1].Strike) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStrike, sorted[i].Strike.String())
		}
	}
	return &OptionChain{Symbol: symbol, UnderlyingPrice: underlying, ExpirationDate: expiration, Options: sorted}, nil
}

// Tick returns the smallest gap between consecutive strikes, used by
// CenterSide to bound "within one tick of at-the-money". A chain with
// fewer than two rows has no defined tick and returns zero.
func (c *OptionChain) Tick() primitives.Positive {
	if len(c.Options) < 2 {
		return primitives.Zero()
	}
	tick := strikeGap(c.Options[0].Strike, c.Options[1].Strike)
	for i := 2; i < len(c.Options); i++ {
		gap := strikeGap(c.Options[i-1].Strike, c.Options[i].Strike)
		if gap.LessThan(tick) {
			tick = gap
		}
	}
	return tick
}

func strikeGap(a, b primitives.Positive) primitives.Positive {
	diff, err := b.Sub(a)
	if err != nil {
		diff, err = a.Sub(b)
		if err != nil {
			return primitives.Zero()
		}
	}
	return diff
}

// Combination is one candidate row tuple produced by an arity-specific
// iterator, carrying its first-seen index for deterministic tie-breaking
// (spec §5's "carry the iteration index, break ties by minimum index").
type Combination struct {
	Index int
	Rows  []OptionData
}

// combinations enumerates every strictly increasing index tuple of the
// given arity over the chain's strike-sorted rows — the "arena + indices"
// approach spec §9 calls for instead of iterating references directly.
func (c *OptionChain) combinations(arity int) []Combination {
	n := len(c.Options)
	if arity <= 0 || arity > n {
		return nil
	}
	var out []Combination
	idx := make([]int, arity)
	for i := range idx {
		idx[i] = i
	}
	for {
		rows := make([]OptionData, arity)
		for i, v := range idx {
			rows[i] = c.Options[v]
		}
		out = append(out, Combination{Index: len(out), Rows: rows})

		pos := arity - 1
		for pos >= 0 && idx[pos] == n-arity+pos {
			pos--
		}
		if pos < 0 {
			break
		}
		idx[pos]++
		for i := pos + 1; i < arity; i++ {
			idx[i] = idx[i-1] + 1
		}
	}
	return out
}

// SingleCombinations, PairCombinations, TripleCombinations, and
// QuadCombinations are the arity-specific iterators spec §4.9 names
// get_single_iter/get_pair_iter/get_triple_iter/get_quad_iter.
func (c *OptionChain) SingleCombinations() []Combination { return c.combinations(1) }
func (c *OptionChain) PairCombinations() []Combination   { return c.combinations(2) }
func (c *OptionChain) TripleCombinations() []Combination { return c.combinations(3) }
func (c *OptionChain) QuadCombinations() []Combination   { return c.combinations(4) }
