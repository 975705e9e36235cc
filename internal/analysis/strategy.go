package analysis

import (
	"math"

	"github.com/contactkeval/option-analytics/internal/pricing"
)

// ExpectedMove is a projected trading range for the underlying.
type ExpectedMove struct {
	Move  float64 `json:"move"` // expected swing, up or down
	Pct   float64 `json:"pct"`  // move / spot
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// StraddleExpectedMove estimates the market's expected move from the cost of
// the at-the-money straddle: the swing priced in is the call premium plus
// the put premium, up or down around spot.
func StraddleExpectedMove(spot, callPrice, putPrice float64) (ExpectedMove, error) {
	if spot <= 0 {
		return ExpectedMove{}, &pricing.InvalidInputError{Field: "spot", Reason: "must be > 0"}
	}
	if callPrice < 0 {
		return ExpectedMove{}, &pricing.InvalidInputError{Field: "call_price", Reason: "must be >= 0"}
	}
	if putPrice < 0 {
		return ExpectedMove{}, &pricing.InvalidInputError{Field: "put_price", Reason: "must be >= 0"}
	}

	move := callPrice + putPrice
	return ExpectedMove{
		Move:  move,
		Pct:   move / spot,
		Lower: spot - move,
		Upper: spot + move,
	}, nil
}

// ModelExpectedMove projects a price range from the model instead of from
// quoted premiums: the swing is z * sigma * sqrt(T) standard deviations of
// log return, with z the two-sided normal quantile for the confidence level.
func ModelExpectedMove(spot, sigma, expiry, confidence float64) (ExpectedMove, error) {
	if spot <= 0 {
		return ExpectedMove{}, &pricing.InvalidInputError{Field: "spot", Reason: "must be > 0"}
	}
	if sigma <= 0 || expiry <= 0 {
		return ExpectedMove{}, &pricing.DegenerateModelError{Reason: "expected move requires sigma > 0 and T > 0"}
	}
	if confidence <= 0 || confidence >= 1 {
		return ExpectedMove{}, &pricing.InvalidInputError{Field: "confidence", Reason: "must be in (0,1)"}
	}

	z := pricing.NormInv(0.5 + confidence/2)
	move := spot * z * sigma * math.Sqrt(expiry)
	return ExpectedMove{
		Move:  move,
		Pct:   move / spot,
		Lower: spot - move,
		Upper: spot + move,
	}, nil
}

// SellVsExercise compares the two ways out of an in-the-money call: selling
// captures the full premium, exercising captures only intrinsic value, and
// the difference is the forfeited extrinsic value.
type SellVsExercise struct {
	ProfitSelling    float64 `json:"profit_selling"`    // premium received, per share
	ProfitExercising float64 `json:"profit_exercising"` // intrinsic value, per share
	ExtrinsicValue   float64 `json:"extrinsic_value"`   // forfeited by exercising
}

// CompareSellVsExercise computes the per-share comparison. The contract must
// be an in-the-money call (spot > strike); the comparison is meaningless
// otherwise.
func CompareSellVsExercise(spot, strike, premium float64) (SellVsExercise, error) {
	if spot <= 0 {
		return SellVsExercise{}, &pricing.InvalidInputError{Field: "spot", Reason: "must be > 0"}
	}
	if strike <= 0 {
		return SellVsExercise{}, &pricing.InvalidInputError{Field: "strike", Reason: "must be > 0"}
	}
	if premium < 0 {
		return SellVsExercise{}, &pricing.InvalidInputError{Field: "premium", Reason: "must be >= 0"}
	}
	if spot <= strike {
		return SellVsExercise{}, &pricing.InvalidInputError{Field: "spot", Reason: "comparison requires an in-the-money call (spot > strike)"}
	}

	intrinsic := spot - strike
	return SellVsExercise{
		ProfitSelling:    premium,
		ProfitExercising: intrinsic,
		ExtrinsicValue:   premium - intrinsic,
	}, nil
}
