package pricing

import "fmt"

// InvalidInputError reports a request field that fails basic validation
// (non-positive spot/strike, negative expiry, bad volatility input, ...).
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// ArbitrageViolationError reports an observed market price outside the
// no-arbitrage bounds of the model: below the zero-volatility floor or
// above the infinite-volatility ceiling. Such a quote has no implied
// volatility and is rejected before any iteration starts.
type ArbitrageViolationError struct {
	MarketPrice float64
	Floor       float64
	Ceiling     float64
}

func (e *ArbitrageViolationError) Error() string {
	return fmt.Sprintf("market price %.6f outside arbitrage bounds [%.6f, %.6f]",
		e.MarketPrice, e.Floor, e.Ceiling)
}

// NonConvergenceError reports that the implied volatility solver hit its
// iteration cap before meeting tolerance.
type NonConvergenceError struct {
	Iterations int
	LastSigma  float64
	LastDiff   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("implied vol did not converge after %d iterations (sigma=%.6f, price diff=%.2e)",
		e.Iterations, e.LastSigma, e.LastDiff)
}

// DegenerateModelError reports inputs on which the requested quantity is
// mathematically undefined: a zero-width IV range for rank, near-zero delta
// for breakeven, zero volatility or time for touch probability.
type DegenerateModelError struct {
	Reason string
}

func (e *DegenerateModelError) Error() string {
	return "degenerate model: " + e.Reason
}

// ResourceBoundError reports a lattice step count above the configured cap.
// Large trees are rejected up front rather than silently accepted, so
// worst-case cost stays a function of configuration, not of the request.
type ResourceBoundError struct {
	Requested int
	Cap       int
}

func (e *ResourceBoundError) Error() string {
	return fmt.Sprintf("lattice steps %d exceed cap %d", e.Requested, e.Cap)
}
