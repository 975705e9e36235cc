// Package volatility contextualizes an implied volatility reading against
// its history: rank within a 52-week high/low band, and a realized
// volatility estimate from a caller-supplied close series.
package volatility

import (
	"math"

	"github.com/contactkeval/option-analytics/internal/pricing"
)

// Context is a current IV reading together with its 52-week band.
type Context struct {
	Current float64 `json:"current_iv"`
	Low     float64 `json:"low_iv"`
	High    float64 `json:"high_iv"`
}

// Rank places current IV within [low, high], clamped to [0,1].
// A band with high <= low has no width to rank against and is rejected.
func Rank(current, low, high float64) (float64, error) {
	if current < 0 {
		return 0, &pricing.InvalidInputError{Field: "current_iv", Reason: "must be >= 0"}
	}
	if low < 0 {
		return 0, &pricing.InvalidInputError{Field: "low_iv", Reason: "must be >= 0"}
	}
	if high <= low {
		return 0, &pricing.DegenerateModelError{Reason: "iv range is degenerate (high <= low)"}
	}

	rank := (current - low) / (high - low)
	return math.Min(math.Max(rank, 0), 1), nil
}

// Rank is the method form for a populated Context.
func (c Context) Rank() (float64, error) {
	return Rank(c.Current, c.Low, c.High)
}
