package pricing

import "math"

// Solver defaults. The bracket bounds every iterate; tolerance is in price
// units, not vol units.
const (
	DefaultSolverTolerance     = 1e-6
	DefaultSolverMaxIterations = 100

	ivBracketLow  = 1e-6
	ivBracketHigh = 5.0
)

// ImpliedVolatility inverts the Black-Scholes price to the volatility that
// reproduces an observed market price, using the default tolerance and
// iteration cap.
func ImpliedVolatility(c ContractSpec, market float64) (float64, error) {
	return ImpliedVolatilityWithLimits(c, market, DefaultSolverTolerance, DefaultSolverMaxIterations)
}

// ImpliedVolatilityWithLimits is ImpliedVolatility with caller-supplied
// tolerance and iteration cap.
//
// Method: Newton-Raphson with vega as the derivative, guarded by a shrinking
// bisection bracket. A Newton step is taken only while vega is meaningful
// and the candidate stays inside the open bracket; otherwise the solver
// bisects. Quotes outside the no-arbitrage band (below the zero-vol floor,
// at or above the infinite-vol ceiling) are rejected before any iteration.
func ImpliedVolatilityWithLimits(c ContractSpec, market, tol float64, maxIter int) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if market < 0 {
		return 0, &InvalidInputError{Field: "market_price", Reason: "must be >= 0"}
	}
	if c.Expiry == 0 {
		return 0, &DegenerateModelError{Reason: "no volatility information at expiry (T=0)"}
	}
	if tol <= 0 {
		tol = DefaultSolverTolerance
	}
	if maxIter <= 0 {
		maxIter = DefaultSolverMaxIterations
	}

	// Arbitrage band: sigma -> 0 gives the discounted intrinsic floor,
	// sigma -> infinity the discounted spot (call) or strike (put) ceiling.
	floor := zeroVolResult(c).Price
	var ceiling float64
	if c.Type == Call {
		ceiling = c.Spot * math.Exp(-c.Yield*c.Expiry)
	} else {
		ceiling = c.Strike * math.Exp(-c.Rate*c.Expiry)
	}
	if market < floor-tol || market >= ceiling {
		return 0, &ArbitrageViolationError{MarketPrice: market, Floor: floor, Ceiling: ceiling}
	}
	if market <= floor+tol {
		// The floor itself is attained at zero vol.
		return 0, nil
	}

	// Explicit solver state: current iterate plus a bracket that always
	// contains the root (price is monotone increasing in vol).
	var (
		sigma = 0.20
		lo    = ivBracketLow
		hi    = ivBracketHigh
	)
	if sigma <= lo || sigma >= hi {
		sigma = (lo + hi) / 2
	}

	var lastDiff float64
	for iter := 0; iter < maxIter; iter++ {
		res, err := BlackScholes(c, sigma)
		if err != nil {
			return 0, err
		}
		diff := res.Price - market
		lastDiff = diff

		if math.Abs(diff) < tol {
			return sigma, nil
		}

		// Tighten the bracket around the root.
		if diff > 0 {
			hi = sigma
		} else {
			lo = sigma
		}

		// Newton step when vega supports it and the candidate stays
		// bracketed; bisection otherwise.
		next := sigma - diff/res.Vega
		if res.Vega < 1e-10 || next <= lo || next >= hi || math.IsNaN(next) {
			next = (lo + hi) / 2
		}
		sigma = next
	}

	return 0, &NonConvergenceError{Iterations: maxIter, LastSigma: sigma, LastDiff: lastDiff}
}
