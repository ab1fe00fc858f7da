package pricing

import (
	"math"

	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/primitives"
)

// maxBisectionIterations bounds the implied-volatility bisection loop; the
// search interval halves each iteration, so 100 iterations resolves the
// [MinVolatility, MaxVolatility] bracket to far better than the 1e-8
// tolerance before this limit is reached.
const maxBisectionIterations = 100

// ImpliedVolatility finds sigma such that BlackScholes(o with sigma) equals
// targetPrice (a Long per-share price — callers pricing a Short leg should
// negate before calling), by bisection on [MinVolatility, MaxVolatility]
// with tolerance primitives.Tolerance. Fails with ErrNoConvergence if the
// target lies outside the price range achievable within that bracket.
func ImpliedVolatility(o *option.Options, targetPrice primitives.Positive) (primitives.Positive, error) {
	target := targetPrice.Float64()

	priceAt := func(sigma primitives.Positive) (float64, error) {
		trial := *o
		trial.ImpliedVolatility = sigma
		trial.Side = primitives.Long
		price, err := BlackScholes(&trial)
		if err != nil {
			return 0, err
		}
		return price.Float64(), nil
	}

	lo, hi := primitives.MinVolatility, primitives.MaxVolatility
	priceLo, err := priceAt(lo)
	if err != nil {
		return primitives.Positive{}, err
	}
	priceHi, err := priceAt(hi)
	if err != nil {
		return primitives.Positive{}, err
	}

	// Black-Scholes price is monotonically increasing in sigma; if the
	// target falls outside [priceLo, priceHi] no sigma in the bracket
	// reproduces it.
	if target < priceLo || target > priceHi {
		return primitives.Positive{}, ErrNoConvergence
	}

	tol := primitives.Tolerance.Float64()
	for i := 0; i < maxBisectionIterations; i++ {
		mid, err := lo.Add(hi).Div(primitives.Two())
		if err != nil {
			return primitives.Positive{}, err
		}
		priceMid, err := priceAt(mid)
		if err != nil {
			return primitives.Positive{}, err
		}

		if math.Abs(priceMid-target) < tol {
			return mid, nil
		}
		if priceMid < target {
			lo = mid
		} else {
			hi = mid
		}
	}

	mid, err := lo.Add(hi).Div(primitives.Two())
	if err != nil {
		return primitives.Positive{}, err
	}
	return mid, nil
}
