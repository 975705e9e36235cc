// Package engine is the request/response boundary of the analytics core.
// It resolves a volatility input (direct or implied from a market price),
// selects a pricing model, and fans out to the derived metrics: IV rank,
// probabilities, breakeven, expected move.
//
// Every operation is a pure function of its inputs; the Engine itself holds
// only read-only configuration and is safe for concurrent use.
package engine

import (
	"github.com/contactkeval/option-analytics/internal/analysis"
	"github.com/contactkeval/option-analytics/internal/logger"
	"github.com/contactkeval/option-analytics/internal/pricing"
	"github.com/contactkeval/option-analytics/internal/volatility"
)

// Model selects the pricing strategy.
type Model string

const (
	ModelBlackScholes Model = "black-scholes"
	ModelLattice      Model = "lattice"
)

// Config bounds the engine's iterative work. Zero values are replaced with
// defaults at construction.
type Config struct {
	MaxLatticeSteps     int     `json:"max_lattice_steps,omitempty"`
	SolverTolerance     float64 `json:"solver_tolerance,omitempty"`
	SolverMaxIterations int     `json:"solver_max_iterations,omitempty"`
	Verbosity           int     `json:"verbosity,omitempty"`
}

// Engine evaluates calculation requests against a fixed configuration.
type Engine struct {
	cfg Config
}

// New fills config defaults and returns an engine.
func New(cfg Config) *Engine {
	if cfg.MaxLatticeSteps <= 0 {
		cfg.MaxLatticeSteps = 1000
	}
	if cfg.SolverTolerance <= 0 {
		cfg.SolverTolerance = pricing.DefaultSolverTolerance
	}
	if cfg.SolverMaxIterations <= 0 {
		cfg.SolverMaxIterations = pricing.DefaultSolverMaxIterations
	}
	logger.SetVerbosity(cfg.Verbosity)
	return &Engine{cfg: cfg}
}

// Price resolves the volatility input and prices the contract with the
// requested model. An empty model defaults by exercise style: lattice for
// American contracts, Black-Scholes for European ones.
func (e *Engine) Price(c pricing.ContractSpec, vol pricing.VolatilityInput, model Model, params pricing.LatticeParams) (pricing.PricingResult, error) {
	sigma, _, err := e.resolveVolatility(c, vol)
	if err != nil {
		return pricing.PricingResult{}, err
	}
	return e.priceResolved(c, sigma, model, params)
}

func (e *Engine) priceResolved(c pricing.ContractSpec, sigma float64, model Model, params pricing.LatticeParams) (pricing.PricingResult, error) {
	if model == "" {
		if c.Style == pricing.American {
			model = ModelLattice
		} else {
			model = ModelBlackScholes
		}
	}

	switch model {
	case ModelBlackScholes:
		if c.Style == pricing.American {
			return pricing.PricingResult{}, &pricing.InvalidInputError{
				Field: "model", Reason: "black-scholes cannot price american exercise; use the lattice",
			}
		}
		return pricing.BlackScholes(c, sigma)

	case ModelLattice:
		steps := params.Steps
		if steps == 0 {
			steps = pricing.DefaultLatticeSteps
		}
		if steps > e.cfg.MaxLatticeSteps {
			return pricing.PricingResult{}, &pricing.ResourceBoundError{Requested: steps, Cap: e.cfg.MaxLatticeSteps}
		}
		return pricing.Binomial(c, sigma, steps)

	default:
		return pricing.PricingResult{}, &pricing.InvalidInputError{
			Field: "model", Reason: `must be "black-scholes" or "lattice"`,
		}
	}
}

// resolveVolatility turns the volatility input into a usable sigma, solving
// for implied volatility when a market price was supplied instead. The bool
// reports whether the value was implied.
func (e *Engine) resolveVolatility(c pricing.ContractSpec, vol pricing.VolatilityInput) (float64, bool, error) {
	if err := vol.Validate(); err != nil {
		return 0, false, err
	}
	if sigma, ok := vol.Volatility(); ok {
		return sigma, false, nil
	}

	market, _ := vol.MarketPrice()
	sigma, err := pricing.ImpliedVolatilityWithLimits(c, market, e.cfg.SolverTolerance, e.cfg.SolverMaxIterations)
	if err != nil {
		return 0, false, err
	}
	logger.Debugf("implied vol %.4f from market price %.4f", sigma, market)
	return sigma, true, nil
}

// ImpliedVolatility inverts the Black-Scholes price to volatility under the
// engine's tolerance and iteration cap.
func (e *Engine) ImpliedVolatility(c pricing.ContractSpec, marketPrice float64) (float64, error) {
	return pricing.ImpliedVolatilityWithLimits(c, marketPrice, e.cfg.SolverTolerance, e.cfg.SolverMaxIterations)
}

// VolatilityRank places current IV within its historical band.
func (e *Engine) VolatilityRank(current, low, high float64) (float64, error) {
	return volatility.Rank(current, low, high)
}

// ProbabilityITM estimates the probability the contract finishes in the money.
func (e *Engine) ProbabilityITM(c pricing.ContractSpec, sigma float64) float64 {
	return analysis.ProbabilityITM(c, sigma)
}

// ProbabilityTouch estimates the probability the underlying touches target
// before expiry.
func (e *Engine) ProbabilityTouch(c pricing.ContractSpec, sigma, target float64) (float64, error) {
	return analysis.ProbabilityTouch(c, sigma, target)
}

// Breakeven computes the underlying move required to break even on a
// position under the given scenario.
func (e *Engine) Breakeven(in analysis.BreakevenInput) (analysis.BreakevenResult, error) {
	return analysis.Breakeven(in)
}
