package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/primitives"
)

// ErrInvalidRiskNeutralProbability indicates the CRR parameters produced a
// risk-neutral probability outside [0, 1] — usually too few steps for the
// given volatility and rate, or a pathological input.
var ErrInvalidRiskNeutralProbability = errors.New("risk-neutral probability out of [0, 1]")

// BinomialResult carries the CRR tree price plus the forward asset tree
// and backward option-value tree, both triangular (level i holds i+1
// nodes), for callers that want to inspect the exercise boundary.
type BinomialResult struct {
	Price      primitives.Decimal
	AssetTree  [][]primitives.Positive
	OptionTree [][]primitives.Positive
}

// Binomial prices a European or American option with a Cox-Ross-Rubinstein
// tree of the given number of steps. u = e^(σ√Δt), d = 1/u,
// p = (e^((r-q)Δt) - d) / (u - d); backward induction takes
// max(continuation, exercise) for American style. Used as the reference
// price for American options and as a cross-check on European ones.
func Binomial(o *option.Options, steps int) (BinomialResult, error) {
	if steps < 1 {
		return BinomialResult{}, fmt.Errorf("binomial: steps must be >= 1, got %d", steps)
	}
	if o.OptionType != primitives.European && o.OptionType != primitives.American {
		return BinomialResult{}, fmt.Errorf("%w: %s", option.ErrUnsupportedForPricing, o.OptionType)
	}

	t := o.TimeToExpiration()
	sigma, err := clampedVolatility(o.ImpliedVolatility)
	if err != nil {
		return BinomialResult{}, err
	}

	S := o.UnderlyingPrice.Float64()
	K := o.StrikePrice.Float64()
	T := t.Float64()
	r := o.RiskFreeRate.Float64()
	q := o.DividendYield.Float64()
	sig := sigma.Float64()

	if T == 0 {
		intrinsic, err := o.IntrinsicValue(o.UnderlyingPrice)
		if err != nil {
			return BinomialResult{}, err
		}
		return BinomialResult{Price: signed(o, intrinsic)}, nil
	}

	dt := T / float64(steps)
	u := math.Exp(sig * math.Sqrt(dt))
	d := 1 / u
	growth := math.Exp((r - q) * dt)
	p := (growth - d) / (u - d)
	if p < 0 || p > 1 {
		return BinomialResult{}, fmt.Errorf("%w: p=%f", ErrInvalidRiskNeutralProbability, p)
	}
	discount := math.Exp(-r * dt)

	assetTree := make([][]float64, steps+1)
	for i := 0; i <= steps; i++ {
		assetTree[i] = make([]float64, i+1)
		for j := 0; j <= i; j++ {
			assetTree[i][j] = S * math.Pow(u, float64(j)) * math.Pow(d, float64(i-j))
		}
	}

	optionTree := make([][]float64, steps+1)
	optionTree[steps] = make([]float64, steps+1)
	for j := 0; j <= steps; j++ {
		optionTree[steps][j] = vanillaPayoff(o.OptionStyle, assetTree[steps][j], K)
	}

	american := o.OptionType == primitives.American
	for i := steps - 1; i >= 0; i-- {
		optionTree[i] = make([]float64, i+1)
		for j := 0; j <= i; j++ {
			continuation := discount * (p*optionTree[i+1][j+1] + (1-p)*optionTree[i+1][j])
			if american {
				exercise := vanillaPayoff(o.OptionStyle, assetTree[i][j], K)
				optionTree[i][j] = math.Max(continuation, exercise)
			} else {
				optionTree[i][j] = continuation
			}
		}
	}

	assetOut := toPositiveTree(assetTree)
	optionOut := toPositiveTree(optionTree)
	price, err := primitives.NewPositiveFromFloat(round6(optionTree[0][0]))
	if err != nil {
		return BinomialResult{}, err
	}

	return BinomialResult{
		Price:      signed(o, price),
		AssetTree:  assetOut,
		OptionTree: optionOut,
	}, nil
}

func vanillaPayoff(style primitives.OptionStyle, s, k float64) float64 {
	if style == primitives.Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

func toPositiveTree(tree [][]float64) [][]primitives.Positive {
	out := make([][]primitives.Positive, len(tree))
	for i, row := range tree {
		out[i] = make([]primitives.Positive, len(row))
		for j, v := range row {
			p, err := primitives.NewPositiveFromFloat(round6(v))
			if err != nil {
				// Numerical noise can produce a tiny negative value
				// (e.g. -1e-13) that should round to zero rather than fail
				// the whole tree construction.
				p = primitives.Zero()
			}
			out[i][j] = p
		}
	}
	return out
}
