package pricing

import "math"

// DaysPerYear converts annual theta into the per-calendar-day figure
// reported in PricingResult.
const DaysPerYear = 365.0

// PricingResult carries a theoretical price and its sensitivities.
// See the package comment for the unit conventions; both the Black-Scholes
// and the lattice pricer report in these units so results are comparable.
type PricingResult struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"` // per calendar day
	Vega  float64 `json:"vega"`  // per full vol point
	Rho   float64 `json:"rho"`   // per full rate point
}

// BlackScholes prices a European contract in closed form and returns the
// analytic Greeks.
//
// Edge policy:
//   - sigma == 0: price is the discounted intrinsic value
//     max(±(S·e^{-qT} − K·e^{-rT}), 0) and delta is a step function
//     (±e^{-qT} or 0); gamma/theta/vega/rho are zero.
//   - T == 0: price is the undiscounted intrinsic value; delta is ±1 or 0
//     by moneyness; all other Greeks are zero.
//
// Both cases are handled explicitly rather than by dividing by sigma*sqrt(T).
func BlackScholes(c ContractSpec, sigma float64) (PricingResult, error) {
	if err := c.Validate(); err != nil {
		return PricingResult{}, err
	}
	if sigma < 0 {
		return PricingResult{}, &InvalidInputError{Field: "volatility", Reason: "must be >= 0"}
	}

	if c.Expiry == 0 {
		return expiryResult(c), nil
	}
	if sigma == 0 {
		return zeroVolResult(c), nil
	}

	var (
		sqrtT  = math.Sqrt(c.Expiry)
		d1     = (math.Log(c.Spot/c.Strike) + (c.Rate-c.Yield+0.5*sigma*sigma)*c.Expiry) / (sigma * sqrtT)
		d2     = d1 - sigma*sqrtT
		dfR    = math.Exp(-c.Rate * c.Expiry)  // discount at the risk-free rate
		dfQ    = math.Exp(-c.Yield * c.Expiry) // carry discount on the underlying
		phiD1  = NormPDF(d1)
		thetaT float64 // annual theta; converted to per-day below
	)

	res := PricingResult{
		Gamma: dfQ * phiD1 / (c.Spot * sigma * sqrtT),
		Vega:  c.Spot * dfQ * phiD1 * sqrtT,
	}

	if c.Type == Call {
		res.Price = c.Spot*dfQ*NormCDF(d1) - c.Strike*dfR*NormCDF(d2)
		res.Delta = dfQ * NormCDF(d1)
		thetaT = -c.Spot*dfQ*phiD1*sigma/(2*sqrtT) -
			c.Rate*c.Strike*dfR*NormCDF(d2) +
			c.Yield*c.Spot*dfQ*NormCDF(d1)
		res.Rho = c.Strike * c.Expiry * dfR * NormCDF(d2)
	} else {
		res.Price = c.Strike*dfR*NormCDF(-d2) - c.Spot*dfQ*NormCDF(-d1)
		res.Delta = dfQ * (NormCDF(d1) - 1)
		thetaT = -c.Spot*dfQ*phiD1*sigma/(2*sqrtT) +
			c.Rate*c.Strike*dfR*NormCDF(-d2) -
			c.Yield*c.Spot*dfQ*NormCDF(-d1)
		res.Rho = -c.Strike * c.Expiry * dfR * NormCDF(-d2)
	}
	res.Theta = thetaT / DaysPerYear

	return res, nil
}

// expiryResult is the T=0 boundary: undiscounted intrinsic value, step delta.
func expiryResult(c ContractSpec) PricingResult {
	res := PricingResult{Price: c.IntrinsicValue()}
	switch {
	case c.Type == Call && c.Spot > c.Strike:
		res.Delta = 1
	case c.Type == Put && c.Spot < c.Strike:
		res.Delta = -1
	}
	return res
}

// zeroVolResult is the sigma=0 boundary: the forward is deterministic, so
// price collapses to the discounted intrinsic value and delta to a step.
func zeroVolResult(c ContractSpec) PricingResult {
	dfR := math.Exp(-c.Rate * c.Expiry)
	dfQ := math.Exp(-c.Yield * c.Expiry)

	fwd := c.Spot*dfQ - c.Strike*dfR
	var res PricingResult
	if c.Type == Call {
		res.Price = math.Max(fwd, 0)
		if fwd > 0 {
			res.Delta = dfQ
		}
	} else {
		res.Price = math.Max(-fwd, 0)
		if fwd < 0 {
			res.Delta = -dfQ
		}
	}
	return res
}
