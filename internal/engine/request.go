package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/contactkeval/option-analytics/internal/pricing"
	"github.com/contactkeval/option-analytics/internal/volatility"
)

// validate checks struct tags on incoming requests before they touch the
// numerical core. Shared and concurrency-safe.
var validate = validator.New(validator.WithRequiredStructEnabled())

// PricingRequest is the wire form of a pricing call. Exactly one of
// volatility and market_price must be present; the pair is collapsed into a
// pricing.VolatilityInput (a tagged union) before use, so there is no
// precedence rule between the two fields.
type PricingRequest struct {
	Spot        float64 `json:"spot" validate:"required,gt=0"`
	Strike      float64 `json:"strike" validate:"required,gt=0"`
	ExpiryYears float64 `json:"expiry_years" validate:"gte=0"`
	Rate        float64 `json:"rate"`
	Yield       float64 `json:"yield" validate:"gte=0"`
	OptionType  string  `json:"option_type" validate:"required,oneof=call put"`
	Style       string  `json:"style" validate:"omitempty,oneof=european american"`
	Model       string  `json:"model" validate:"omitempty,oneof=black-scholes lattice"`

	LatticeSteps int `json:"lattice_steps,omitempty" validate:"gte=0"`

	Volatility  *float64 `json:"volatility,omitempty"`
	MarketPrice *float64 `json:"market_price,omitempty"`
}

// contract builds the validated ContractSpec; style defaults to European.
func (r *PricingRequest) contract() (pricing.ContractSpec, error) {
	style := pricing.ExerciseStyle(r.Style)
	if style == "" {
		style = pricing.European
	}
	return pricing.NewContractSpec(
		r.Spot, r.Strike, r.ExpiryYears, r.Rate, r.Yield,
		pricing.OptionType(r.OptionType), style,
	)
}

// volatilityInput collapses the optional pair into the sum type.
func (r *PricingRequest) volatilityInput() (pricing.VolatilityInput, error) {
	switch {
	case r.Volatility != nil && r.MarketPrice != nil:
		return pricing.VolatilityInput{}, &pricing.InvalidInputError{
			Field: "volatility_input", Reason: "volatility and market_price are mutually exclusive",
		}
	case r.Volatility != nil:
		return pricing.WithVolatility(*r.Volatility), nil
	case r.MarketPrice != nil:
		return pricing.WithMarketPrice(*r.MarketPrice), nil
	default:
		return pricing.VolatilityInput{}, &pricing.InvalidInputError{
			Field: "volatility_input", Reason: "one of volatility or market_price is required",
		}
	}
}

// BreakevenScenario is the breakeven section of an analysis request.
type BreakevenScenario struct {
	VolShift        float64 `json:"vol_shift"`
	HoldingDays     float64 `json:"holding_days" validate:"gte=0"`
	TransactionCost float64 `json:"transaction_cost" validate:"gte=0"`
}

// AnalysisRequest asks for the full pipeline: price and Greeks, plus any of
// the optional derived sections the caller supplies inputs for.
type AnalysisRequest struct {
	PricingRequest

	IVContext              *volatility.Context `json:"iv_context,omitempty"`
	TouchTarget            *float64            `json:"touch_target,omitempty"`
	Breakeven              *BreakevenScenario  `json:"breakeven,omitempty"`
	ExpectedMoveConfidence *float64            `json:"expected_move_confidence,omitempty"`
}

// checkRequest runs tag validation and converts the first failure into the
// engine's error taxonomy with the offending field named.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return &pricing.InvalidInputError{
			Field:  fe.Field(),
			Reason: fmt.Sprintf("failed %q validation", fe.Tag()),
		}
	}
	return err
}
