// Package analysis derives trade-level metrics from a priced contract:
// in-the-money and touch probabilities, breakeven moves, expected-move
// ranges, and the sell-versus-exercise comparison.
package analysis

import (
	"math"

	"github.com/contactkeval/option-analytics/internal/pricing"
)

// ProbabilityResult pairs the two probability estimates for a contract.
type ProbabilityResult struct {
	ITM   float64 `json:"itm"`
	Touch float64 `json:"touch"`
}

// ProbabilityITM estimates the risk-neutral probability that the contract
// finishes in the money: Phi(d2) for a call, Phi(-d2) for a put.
//
// At expiry or at zero volatility the outcome is deterministic, so the
// moneyness answer (0 or 1) is returned directly.
func ProbabilityITM(c pricing.ContractSpec, sigma float64) float64 {
	if c.Expiry <= 0 || sigma <= 0 {
		if c.IntrinsicValue() > 0 {
			return 1
		}
		return 0
	}

	sqrtT := math.Sqrt(c.Expiry)
	d2 := (math.Log(c.Spot/c.Strike) + (c.Rate-c.Yield-0.5*sigma*sigma)*c.Expiry) / (sigma * sqrtT)

	if c.Type == pricing.Call {
		return pricing.NormCDF(d2)
	}
	return pricing.NormCDF(-d2)
}

// ProbabilityTouch estimates the probability that the underlying trades at
// or through target before expiry, using the reflection-principle closed
// form for geometric Brownian motion with drift mu = r - q - sigma^2/2.
//
// A target equal to spot has already been touched and returns 1 without
// touching the model. Zero volatility or zero time otherwise leaves the
// probability ill-defined and is a degenerate-model error.
func ProbabilityTouch(c pricing.ContractSpec, sigma, target float64) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if target <= 0 {
		return 0, &pricing.InvalidInputError{Field: "target", Reason: "must be > 0"}
	}
	if target == c.Spot {
		return 1, nil
	}
	if sigma <= 0 || c.Expiry <= 0 {
		return 0, &pricing.DegenerateModelError{Reason: "touch probability requires sigma > 0 and T > 0"}
	}

	var (
		b     = math.Log(target / c.Spot) // signed log-distance to the barrier
		mu    = c.Rate - c.Yield - 0.5*sigma*sigma
		volT  = sigma * math.Sqrt(c.Expiry)
		drift = mu * c.Expiry
		tilt  = math.Exp(2 * mu * b / (sigma * sigma)) // = (H/S)^(2mu/sigma^2)
	)

	var p float64
	if b > 0 {
		// Barrier above spot: P(max >= b).
		p = pricing.NormCDF((drift-b)/volT) + tilt*pricing.NormCDF((-b-drift)/volT)
	} else {
		// Barrier below spot: P(min <= b), the mirrored construction.
		p = pricing.NormCDF((b-drift)/volT) + tilt*pricing.NormCDF((b+drift)/volT)
	}

	return math.Min(math.Max(p, 0), 1), nil
}
