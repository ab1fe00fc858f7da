package greeks

import (
	"github.com/johnayoung/go-optionlab/option"
	"github.com/johnayoung/go-optionlab/pricing"
	"github.com/johnayoung/go-optionlab/primitives"
)

// bumpFraction is the relative perturbation used for central-difference
// numerical Greeks. 0.5% of the perturbed input balances truncation error
// against the binomial tree's own discretization noise.
const bumpFraction = 0.005

// binomialSteps is the tree depth used for numerical differentiation.
// Lower than the 500+ steps used for convergence testing, since bumping
// and re-solving the tree several times per Greek would otherwise be
// expensive for a value only used as an American-option approximation.
const binomialSteps = 200

// ComputeNumerical approximates delta, gamma, theta, and vega for American
// options — where spec §1's Non-goals exclude an exact analytic form — via
// central differences of the CRR binomial price. Rho and RhoQ fall back to
// the analytic Black-Scholes formulas, which are an acceptable
// approximation away from the early-exercise boundary.
func ComputeNumerical(o *option.Options) (Greeks, error) {
	price := func(bump func(*option.Options)) (float64, error) {
		trial := *o
		bump(&trial)
		result, err := pricing.Binomial(&trial, binomialSteps)
		if err != nil {
			return 0, err
		}
		return result.Price.Float64(), nil
	}

	s := o.UnderlyingPrice.Float64()
	dS := s * bumpFraction

	pUp, err := price(func(t *option.Options) {
		v, _ := primitives.NewPositiveFromFloat(s + dS)
		t.UnderlyingPrice = v
	})
	if err != nil {
		return Greeks{}, err
	}
	pMid, err := price(func(*option.Options) {})
	if err != nil {
		return Greeks{}, err
	}
	pDown, err := price(func(t *option.Options) {
		v, _ := primitives.NewPositiveFromFloat(s - dS)
		t.UnderlyingPrice = v
	})
	if err != nil {
		return Greeks{}, err
	}

	delta := (pUp - pDown) / (2 * dS)
	gamma := (pUp - 2*pMid + pDown) / (dS * dS)

	sigma := o.ImpliedVolatility.Float64()
	dSigma := sigma * bumpFraction
	pVegaUp, err := price(func(t *option.Options) {
		v, _ := primitives.NewPositiveFromFloat(sigma + dSigma)
		t.ImpliedVolatility = v
	})
	if err != nil {
		return Greeks{}, err
	}
	vega := (pVegaUp - pMid) / dSigma

	t := o.TimeToExpiration().Float64()
	dT := t * bumpFraction
	var theta float64
	if dT > 0 {
		pThetaDown, err := price(func(trial *option.Options) {
			days, _ := primitives.NewPositiveFromFloat((t - dT) * primitives.DaysPerYear.Float64())
			trial.ExpirationDate = primitives.ExpirationInDays(days)
		})
		if err != nil {
			return Greeks{}, err
		}
		theta = -(pMid - pThetaDown) / dT
	}

	analytic, err := Compute(o)
	if err != nil {
		// European analytic formulas still apply away from the exercise
		// boundary for rho; if even that fails, surface the error.
		return Greeks{}, err
	}

	return Greeks{
		Delta: primitives.NewDecimalFromFloat(delta),
		Gamma: primitives.NewDecimalFromFloat(gamma),
		Theta: primitives.NewDecimalFromFloat(theta),
		Vega:  primitives.NewDecimalFromFloat(vega),
		Rho:   analytic.Rho,
		RhoQ:  analytic.RhoQ,
	}, nil
}
