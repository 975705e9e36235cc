package analysis

import (
	"math"

	"github.com/contactkeval/option-analytics/internal/pricing"
)

// minBreakevenDelta is the threshold below which a position is treated as
// theta/vega-only: dividing the residual cost by a near-zero delta would
// produce an absurd required move rather than a usable one.
const minBreakevenDelta = 1e-4

// BreakevenInput describes a position and the scenario to break even under.
// Theta is per calendar day and vega per full vol point, matching
// pricing.PricingResult; the holding period is in calendar days.
type BreakevenInput struct {
	Delta           float64 `json:"delta"`
	Theta           float64 `json:"theta"`
	Vega            float64 `json:"vega"`
	VolShift        float64 `json:"vol_shift"`        // assumed IV change over the horizon, decimal
	HoldingDays     float64 `json:"holding_days"`     // holding horizon, calendar days
	TransactionCost float64 `json:"transaction_cost"` // round-trip cost, price units
	Spot            float64 `json:"spot"`             // for the percentage figure
}

// BreakevenResult is the underlying move required to break even.
type BreakevenResult struct {
	Move      float64 `json:"move"`     // signed price move
	MovePct   float64 `json:"move_pct"` // move / spot
	Direction string  `json:"direction"`
}

// Breakeven solves delta*move + theta*days + vega*volShift = cost for the
// required move. Theta decay and the assumed vol change are absorbed first;
// delta carries whatever remains, so a near-zero delta means no price move
// can close the gap and the breakeven is undefined.
func Breakeven(in BreakevenInput) (BreakevenResult, error) {
	if in.Spot <= 0 {
		return BreakevenResult{}, &pricing.InvalidInputError{Field: "spot", Reason: "must be > 0"}
	}
	if in.HoldingDays < 0 {
		return BreakevenResult{}, &pricing.InvalidInputError{Field: "holding_days", Reason: "must be >= 0"}
	}
	if in.TransactionCost < 0 {
		return BreakevenResult{}, &pricing.InvalidInputError{Field: "transaction_cost", Reason: "must be >= 0"}
	}
	if math.Abs(in.Delta) < minBreakevenDelta {
		return BreakevenResult{}, &pricing.DegenerateModelError{
			Reason: "delta too small: no price move resolves the position cost",
		}
	}

	move := (in.TransactionCost - in.Theta*in.HoldingDays - in.Vega*in.VolShift) / in.Delta

	res := BreakevenResult{
		Move:    move,
		MovePct: move / in.Spot,
	}
	if move >= 0 {
		res.Direction = "up"
	} else {
		res.Direction = "down"
	}
	return res, nil
}
