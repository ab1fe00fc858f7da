package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/primitives"
)

var (
	// ErrVolatilityTooHigh indicates sigma exceeds primitives.MaxVolatility.
	ErrVolatilityTooHigh = errors.New("volatility exceeds maximum bound")
	// ErrNoConvergence indicates the implied-volatility solver could not
	// bracket the requested market price within [MinVolatility, MaxVolatility].
	ErrNoConvergence = errors.New("implied volatility solver did not converge")
)

// D1D2 computes the Black-Scholes d1 and d2 intermediates shared by the
// pricing and Greeks engines:
//
//	d1 = (ln(S/K) + (r - q + σ²/2)·T) / (σ·√T)
//	d2 = d1 - σ·√T
func D1D2(s, k, t, r, q, sigma float64) (d1, d2 float64) {
	sqrtT := math.Sqrt(t)
	denom := sigma * sqrtT
	d1 = (math.Log(s/k) + (r-q+0.5*sigma*sigma)*t) / denom
	d2 = d1 - denom
	return d1, d2
}

// clampedVolatility returns sigma clamped to MinVolatility when below it,
// and an error when sigma exceeds MaxVolatility (spec §4.2 edge cases).
func clampedVolatility(sigma primitives.Positive) (primitives.Positive, error) {
	if sigma.GreaterThan(primitives.MaxVolatility) {
		return primitives.Positive{}, fmt.Errorf("%w: %s", ErrVolatilityTooHigh, sigma.String())
	}
	if sigma.LessThan(primitives.MinVolatility) {
		return primitives.MinVolatility, nil
	}
	return sigma, nil
}

// BlackScholes prices a European vanilla option under lognormal dynamics
// with continuous dividend yield q. The result is positive for a Long
// position and negated for Short, per spec §4.2's sign convention. T <= 0
// degenerates to the intrinsic value; sigma below MinVolatility is
// clamped up, sigma above MaxVolatility fails with ErrVolatilityTooHigh.
func BlackScholes(o *option.Options) (primitives.Decimal, error) {
	if !o.OptionType.SupportedForPricing() && o.OptionType != primitives.European {
		return primitives.Decimal{}, fmt.Errorf("%w: %s", option.ErrUnsupportedForPricing, o.OptionType)
	}

	t := o.TimeToExpiration()
	if t.IsZero() {
		intrinsic, err := o.IntrinsicValue(o.UnderlyingPrice)
		if err != nil {
			return primitives.Decimal{}, err
		}
		return signed(o, intrinsic), nil
	}

	sigma, err := clampedVolatility(o.ImpliedVolatility)
	if err != nil {
		return primitives.Decimal{}, err
	}

	S := o.UnderlyingPrice.Float64()
	K := o.StrikePrice.Float64()
	T := t.Float64()
	r := o.RiskFreeRate.Float64()
	q := o.DividendYield.Float64()
	sig := sigma.Float64()

	if sig*math.Sqrt(T) == 0 {
		intrinsic, err := o.IntrinsicValue(o.UnderlyingPrice)
		if err != nil {
			return primitives.Decimal{}, err
		}
		return signed(o, intrinsic), nil
	}

	d1, d2 := D1D2(S, K, T, r, q, sig)

	var price float64
	if o.OptionStyle == primitives.Call {
		price = S*math.Exp(-q*T)*cdf(d1) - K*math.Exp(-r*T)*cdf(d2)
	} else {
		price = K*math.Exp(-r*T)*cdf(-d2) - S*math.Exp(-q*T)*cdf(-d1)
	}
	if price < 0 {
		price = 0
	}

	priceDec, err := primitives.NewPositiveFromFloat(round6(price))
	if err != nil {
		return primitives.Decimal{}, err
	}
	return signed(o, priceDec), nil
}

// signed applies the Long/Short sign convention to a per-share price:
// positive for Long, negated for Short. Quantity scaling happens one
// layer up, at the Position/Strategy level.
func signed(o *option.Options, magnitude primitives.Positive) primitives.Decimal {
	return magnitude.Decimal().Mul(o.Side.Sign())
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
