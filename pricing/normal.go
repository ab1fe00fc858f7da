// Package pricing implements the Black-Scholes closed-form model and the
// Cox-Ross-Rubinstein binomial tree, plus an implied-volatility solver.
// BlackScholes, Binomial and ImpliedVolatility accept and return
// decimal-safe primitives, with floating point confined to the interior of
// each computation, per spec §9; the exported normal-distribution helpers
// and D1D2 work in float64.
package pricing

import "gonum.org/v1/gonum/stat/distuv"

// standardNormal is the N(0,1) distribution used for Φ and φ. gonum's
// distuv.Normal.CDF is accurate well past the module's 1e-10 target,
// unlike a hand-rolled Abramowitz-Stegun polynomial approximation.
var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}

// cdf returns Φ(x), the standard normal cumulative distribution function.
func cdf(x float64) float64 { return standardNormal.CDF(x) }

// pdf returns φ(x), the standard normal probability density function.
func pdf(x float64) float64 { return standardNormal.Prob(x) }

// Phi is the exported standard normal CDF, shared with the greeks package
// so both engines agree on the exact same Φ implementation.
func Phi(x float64) float64 { return cdf(x) }

// SmallPhi is the exported standard normal PDF, shared with the greeks
// package.
func SmallPhi(x float64) float64 { return pdf(x) }

// Quantile returns the standard normal inverse CDF Φ⁻¹(p), shared with the
// curve and surface packages' parametric VaR/expected-shortfall metrics so
// every layer of the engine agrees on the same normal model.
func Quantile(p float64) float64 { return standardNormal.Quantile(p) }
