package pricing

// VolatilityInput is a tagged union: a request carries either a volatility
// or an observed market price, never both. The zero value carries neither
// and fails validation, so "forgot to set it" surfaces as an error instead
// of pricing at zero vol.
type VolatilityInput struct {
	kind  volInputKind
	value float64
}

type volInputKind int

const (
	volNone volInputKind = iota
	volSigma
	volMarket
)

// WithVolatility returns an input that supplies the volatility directly.
func WithVolatility(sigma float64) VolatilityInput {
	return VolatilityInput{kind: volSigma, value: sigma}
}

// WithMarketPrice returns an input that supplies an observed market price,
// to be inverted to volatility by the solver.
func WithMarketPrice(m float64) VolatilityInput {
	return VolatilityInput{kind: volMarket, value: m}
}

// Volatility reports the volatility and whether one was supplied.
func (v VolatilityInput) Volatility() (float64, bool) {
	return v.value, v.kind == volSigma
}

// MarketPrice reports the market price and whether one was supplied.
func (v VolatilityInput) MarketPrice() (float64, bool) {
	return v.value, v.kind == volMarket
}

// Validate checks that exactly one variant was supplied and that its value
// is in range (sigma >= 0, market price > 0).
func (v VolatilityInput) Validate() error {
	switch v.kind {
	case volSigma:
		if v.value < 0 {
			return &InvalidInputError{Field: "volatility", Reason: "must be >= 0"}
		}
	case volMarket:
		if v.value <= 0 {
			return &InvalidInputError{Field: "market_price", Reason: "must be > 0"}
		}
	default:
		return &InvalidInputError{Field: "volatility_input", Reason: "one of volatility or market_price is required"}
	}
	return nil
}
