// Package greeks implements the analytic Black-Scholes risk sensitivities:
// delta, gamma, theta, vega, rho (domestic and foreign/dividend). Every
// formula is per-share and unsigned by position side — aggregation across
// a multi-leg strategy applies each leg's signed quantity, per spec §4.3.
package greeks

import (
	"fmt"
	"math"

	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/pricing"
	"github.com/johnayoung/go-optionlab/primitives"
)

// Greeks bundles the five first-order sensitivities plus the foreign
// (dividend-yield) rho the spec calls ρ_q.
type Greeks struct {
	Delta primitives.Decimal
	Gamma primitives.Decimal
	Theta primitives.Decimal
	Vega  primitives.Decimal
	Rho   primitives.Decimal
	RhoQ  primitives.Decimal
}

// Compute returns the per-share analytic Greeks of o under Black-Scholes.
// Only European and American options are supported; American Greeks are
// approximated by the European analytic formulas since the spec's
// Non-goals exclude exact American analytic Greeks (numerical
// differentiation of the binomial price is the documented fallback, see
// ComputeNumerical).
func Compute(o *option.Options) (Greeks, error) {
	if !o.OptionType.SupportedForPricing() {
		return Greeks{}, fmt.Errorf("%w: %s", option.ErrUnsupportedForPricing, o.OptionType)
	}

	t := o.TimeToExpiration()
	if t.IsZero() {
		return expiryGreeks(o), nil
	}

	sigma := o.ImpliedVolatility
	if sigma.LessThan(primitives.MinVolatility) {
		sigma = primitives.MinVolatility
	}

	S := o.UnderlyingPrice.Float64()
	K := o.StrikePrice.Float64()
	T := t.Float64()
	r := o.RiskFreeRate.Float64()
	q := o.DividendYield.Float64()
	sig := sigma.Float64()
	sqrtT := math.Sqrt(T)

	d1, d2 := pricing.D1D2(S, K, T, r, q, sig)

	discQ := math.Exp(-q * T)
	discR := math.Exp(-r * T)
	phi := pricing.SmallPhi(d1)

	gamma := discQ * phi / (S * sig * sqrtT)
	vega := S * discQ * phi * sqrtT

	var delta, theta, rho, rhoQ float64
	if o.OptionStyle == primitives.Call {
		delta = discQ * pricing.Phi(d1)
		theta = -S*phi*sig*discQ/(2*sqrtT) - r*K*discR*pricing.Phi(d2) + q*S*discQ*pricing.Phi(d1)
		rho = K * T * discR * pricing.Phi(d2)
		rhoQ = -T * S * discQ * pricing.Phi(d1)
	} else {
		delta = -discQ * pricing.Phi(-d1)
		theta = -S*phi*sig*discQ/(2*sqrtT) + r*K*discR*pricing.Phi(-d2) - q*S*discQ*pricing.Phi(-d1)
		rho = -K * T * discR * pricing.Phi(-d2)
		rhoQ = T * S * discQ * pricing.Phi(-d1)
	}

	return Greeks{
		Delta: primitives.NewDecimalFromFloat(delta),
		Gamma: primitives.NewDecimalFromFloat(gamma),
		Theta: primitives.NewDecimalFromFloat(theta),
		Vega:  primitives.NewDecimalFromFloat(vega),
		Rho:   primitives.NewDecimalFromFloat(rho),
		RhoQ:  primitives.NewDecimalFromFloat(rhoQ),
	}, nil
}

// expiryGreeks returns the degenerate Greeks at T=0: delta is 1 (call) or
// -1 (put) when in the money and 0 otherwise; every other Greek is zero.
func expiryGreeks(o *option.Options) Greeks {
	delta := primitives.DecimalZero()
	if o.IsInTheMoney() {
		if o.OptionStyle == primitives.Call {
			delta = primitives.NewDecimal(1)
		} else {
			delta = primitives.NewDecimal(-1)
		}
	}
	return Greeks{
		Delta: delta,
		Gamma: primitives.DecimalZero(),
		Theta: primitives.DecimalZero(),
		Vega:  primitives.DecimalZero(),
		Rho:   primitives.DecimalZero(),
		RhoQ:  primitives.DecimalZero(),
	}
}

// ScaleByLeg multiplies every Greek by the option's signed quantity
// (quantity * side sign), turning a per-share Greeks bundle into that
// leg's contribution to a strategy's aggregate Greeks.
func (g Greeks) ScaleByLeg(o *option.Options) Greeks {
	q := o.SignedQuantity()
	return Greeks{
		Delta: g.Delta.Mul(q),
		Gamma: g.Gamma.Mul(q),
		Theta: g.Theta.Mul(q),
		Vega:  g.Vega.Mul(q),
		Rho:   g.Rho.Mul(q),
		RhoQ:  g.RhoQ.Mul(q),
	}
}

// Add returns the elementwise sum of two Greeks bundles, used to aggregate
// leg contributions into a strategy's net Greeks.
func (g Greeks) Add(other Greeks) Greeks {
	return Greeks{
		Delta: g.Delta.Add(other.Delta),
		Gamma: g.Gamma.Add(other.Gamma),
		Theta: g.Theta.Add(other.Theta),
		Vega:  g.Vega.Add(other.Vega),
		Rho:   g.Rho.Add(other.Rho),
		RhoQ:  g.RhoQ.Add(other.RhoQ),
	}
}

// Sum aggregates the signed, quantity-scaled Greeks of every leg.
func Sum(legs ...*option.Options) (Greeks, error) {
	total := Greeks{
		Delta: primitives.DecimalZero(), Gamma: primitives.DecimalZero(),
		Theta: primitives.DecimalZero(), Vega: primitives.DecimalZero(),
		Rho: primitives.DecimalZero(), RhoQ: primitives.DecimalZero(),
	}
	for _, leg := range legs {
		g, err := Compute(leg)
		if err != nil {
			return Greeks{}, err
		}
		total = total.Add(g.ScaleByLeg(leg))
	}
	return total, nil
}
