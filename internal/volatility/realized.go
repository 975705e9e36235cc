package volatility

import (
	"math"

	"github.com/contactkeval/option-analytics/internal/pricing"
)

// tradingDaysPerYear annualizes daily log-return volatility.
const tradingDaysPerYear = 252.0

// Annualized computes realized volatility from a series of daily closes:
// sample standard deviation of log returns, scaled by sqrt(252). Callers use
// it to produce the current-IV context input when no market IV is available.
//
// Fewer than two closes carry no return information and are rejected; a
// non-positive close makes the log return undefined and is likewise rejected.
func Annualized(closes []float64) (float64, error) {
	if len(closes) < 2 {
		return 0, &pricing.InvalidInputError{Field: "closes", Reason: "need at least 2 closes"}
	}

	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return 0, &pricing.InvalidInputError{Field: "closes", Reason: "closes must be > 0"}
		}
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}

	if len(rets) == 1 {
		return 0, nil // a single return has no sample deviation
	}

	mean := 0.0
	for _, v := range rets {
		mean += v
	}
	mean /= float64(len(rets))

	sd := 0.0
	for _, v := range rets {
		sd += (v - mean) * (v - mean)
	}
	sd = math.Sqrt(sd / float64(len(rets)-1))

	return sd * math.Sqrt(tradingDaysPerYear), nil
}
