// Package pricing implements the option analytics core: Black-Scholes
// pricing with analytic Greeks, a Cox-Ross-Rubinstein binomial lattice for
// American exercise, and a Newton/bisection implied volatility solver.
//
// Conventions, shared by every pricer in this package:
//   - theta is reported per calendar day (annual theta / 365)
//   - vega is reported per full volatility point (1.00 = 100 vol %)
//   - rho is reported per full rate point
//   - delta and gamma are raw partials with respect to spot
//
// All rates, yields and volatilities are decimals (0.05, not 5).
package pricing

import "math"

// OptionType is the payoff direction of a contract.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ExerciseStyle determines when a contract may be exercised.
type ExerciseStyle string

const (
	European ExerciseStyle = "european" // exercise at expiry only
	American ExerciseStyle = "american" // exercise at any time up to expiry
)

// ContractSpec describes a single option contract. Construct with
// NewContractSpec; a validated spec is never mutated.
type ContractSpec struct {
	Spot   float64       `json:"spot"`         // underlying price, > 0
	Strike float64       `json:"strike"`       // strike price, > 0
	Expiry float64       `json:"expiry_years"` // time to expiry in years, >= 0
	Rate   float64       `json:"rate"`         // risk-free rate, decimal
	Yield  float64       `json:"yield"`        // continuous dividend/carry yield, decimal, >= 0
	Type   OptionType    `json:"option_type"`
	Style  ExerciseStyle `json:"style"`
}

// NewContractSpec validates and returns a contract. Expiry of zero is
// permitted and denotes a contract at expiry; it is handled as a boundary
// case by the pricers, not rejected here.
func NewContractSpec(spot, strike, expiry, rate, yield float64, typ OptionType, style ExerciseStyle) (ContractSpec, error) {
	c := ContractSpec{
		Spot:   spot,
		Strike: strike,
		Expiry: expiry,
		Rate:   rate,
		Yield:  yield,
		Type:   typ,
		Style:  style,
	}
	if err := c.Validate(); err != nil {
		return ContractSpec{}, err
	}
	return c, nil
}

// Validate checks the construction invariants.
func (c ContractSpec) Validate() error {
	switch {
	case c.Spot <= 0:
		return &InvalidInputError{Field: "spot", Reason: "must be > 0"}
	case c.Strike <= 0:
		return &InvalidInputError{Field: "strike", Reason: "must be > 0"}
	case c.Expiry < 0:
		return &InvalidInputError{Field: "expiry_years", Reason: "must be >= 0"}
	case c.Yield < 0:
		return &InvalidInputError{Field: "yield", Reason: "must be >= 0"}
	}
	switch c.Type {
	case Call, Put:
	default:
		return &InvalidInputError{Field: "option_type", Reason: `must be "call" or "put"`}
	}
	switch c.Style {
	case European, American:
	default:
		return &InvalidInputError{Field: "style", Reason: `must be "european" or "american"`}
	}
	return nil
}

// IntrinsicValue is the payoff on immediate exercise at the current spot.
func (c ContractSpec) IntrinsicValue() float64 {
	return c.intrinsicAt(c.Spot)
}

func (c ContractSpec) intrinsicAt(spot float64) float64 {
	if c.Type == Call {
		return math.Max(spot-c.Strike, 0)
	}
	return math.Max(c.Strike-spot, 0)
}
