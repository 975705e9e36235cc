package pricing

import "math"

// DefaultLatticeSteps is used when a request does not specify a step count.
const DefaultLatticeSteps = 200

// LatticeParams configures the binomial pricer. Larger step counts increase
// accuracy roughly linearly in cost; the engine layer enforces a cap.
type LatticeParams struct {
	Steps int `json:"steps"`
}

// Finite-difference bump sizes for the lattice Greeks. The lattice has no
// analytic derivative, so each Greek re-runs the tree with a perturbed input:
// spot is bumped by ±1%, volatility by ±0.01 absolute, theta steps the clock
// forward one calendar day, and rho bumps the rate by ±1 basis point.
const (
	bumpSpotRel = 0.01
	bumpVol     = 0.01
	bumpRate    = 1e-4
)

// Binomial prices a contract on an N-step Cox-Ross-Rubinstein lattice.
// American style takes the max of continuation and immediate exercise at
// every node; European style discounts continuation value only.
//
// A degenerate lattice (sigma so small that u ≈ d, or a risk-neutral
// probability outside (0,1)) falls back to the zero-volatility policy of the
// closed-form pricer.
func Binomial(c ContractSpec, sigma float64, steps int) (PricingResult, error) {
	if err := c.Validate(); err != nil {
		return PricingResult{}, err
	}
	if sigma < 0 {
		return PricingResult{}, &InvalidInputError{Field: "volatility", Reason: "must be >= 0"}
	}
	if steps < 1 {
		return PricingResult{}, &InvalidInputError{Field: "steps", Reason: "must be >= 1"}
	}

	if c.Expiry == 0 {
		return expiryResult(c), nil
	}
	if sigma == 0 {
		return zeroVolResult(c), nil
	}

	price := latticeValue(c, sigma, steps)

	res := PricingResult{Price: price}

	// Delta and gamma from a symmetric spot bump.
	dS := bumpSpotRel * c.Spot
	up := latticeValue(bumpSpot(c, dS), sigma, steps)
	down := latticeValue(bumpSpot(c, -dS), sigma, steps)
	res.Delta = (up - down) / (2 * dS)
	res.Gamma = (up - 2*price + down) / (dS * dS)

	// Vega from a symmetric vol bump, forward-differenced near zero vol.
	if sigma > bumpVol {
		res.Vega = (latticeValue(c, sigma+bumpVol, steps) - latticeValue(c, sigma-bumpVol, steps)) / (2 * bumpVol)
	} else {
		res.Vega = (latticeValue(c, sigma+bumpVol, steps) - price) / bumpVol
	}

	// Theta directly as the one-calendar-day price decay.
	dayT := c.Expiry - 1/DaysPerYear
	if dayT < 0 {
		dayT = 0
	}
	res.Theta = latticeValue(bumpExpiry(c, dayT), sigma, steps) - price

	// Rho from a symmetric rate bump, rescaled to a full rate point.
	rUp := latticeValue(bumpRateBy(c, bumpRate), sigma, steps)
	rDown := latticeValue(bumpRateBy(c, -bumpRate), sigma, steps)
	res.Rho = (rUp - rDown) / (2 * bumpRate)

	return res, nil
}

// latticeValue runs backward induction and returns the root node value.
// It assumes a validated contract and handles its own degenerate inputs so
// bumped re-runs never error.
func latticeValue(c ContractSpec, sigma float64, steps int) float64 {
	if c.Expiry == 0 {
		return c.IntrinsicValue()
	}
	if sigma == 0 {
		return zeroVolResult(c).Price
	}

	dt := c.Expiry / float64(steps)
	u := math.Exp(sigma * math.Sqrt(dt))
	d := 1 / u
	growth := math.Exp((c.Rate - c.Yield) * dt)

	// No-arbitrage requires d < growth < u. Violations only occur when the
	// vol term is dwarfed by drift, which is the degenerate-lattice case.
	if u-d < 1e-12 || growth <= d || growth >= u {
		return zeroVolResult(c).Price
	}

	p := (growth - d) / (u - d)
	disc := math.Exp(-c.Rate * dt)
	american := c.Style == American

	// Terminal payoffs at the leaves.
	values := make([]float64, steps+1)
	spot := c.Spot * math.Pow(d, float64(steps))
	for i := 0; i <= steps; i++ {
		values[i] = c.intrinsicAt(spot)
		spot *= u * u
	}

	// Backward induction; American nodes take max(continuation, exercise).
	for step := steps - 1; step >= 0; step-- {
		spot = c.Spot * math.Pow(d, float64(step))
		for i := 0; i <= step; i++ {
			cont := disc * (p*values[i+1] + (1-p)*values[i])
			if american {
				if ex := c.intrinsicAt(spot); ex > cont {
					cont = ex
				}
			}
			values[i] = cont
			spot *= u * u
		}
	}
	return values[0]
}

func bumpSpot(c ContractSpec, dS float64) ContractSpec {
	c.Spot += dS
	return c
}

func bumpExpiry(c ContractSpec, t float64) ContractSpec {
	c.Expiry = t
	return c
}

func bumpRateBy(c ContractSpec, dr float64) ContractSpec {
	c.Rate += dr
	return c
}
