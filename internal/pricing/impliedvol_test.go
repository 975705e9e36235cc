package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestImpliedVolRoundTrip(t *testing.T) {
	c := mustContract(t, 100, 100, 0.5, 0.02, 0.01, Call)

	for _, sigma := range []float64{0.01, 0.05, 0.10, 0.20, 0.50, 1.0, 2.0, 3.0} {
		res, err := BlackScholes(c, sigma)
		if err != nil {
			t.Fatalf("price at sigma=%f: %v", sigma, err)
		}

		recovered, err := ImpliedVolatility(c, res.Price)
		if err != nil {
			t.Fatalf("solve at sigma=%f: %v", sigma, err)
		}
		if math.Abs(recovered-sigma) > 1e-4 {
			t.Fatalf("round trip at sigma=%f: recovered %f", sigma, recovered)
		}
	}
}

func TestImpliedVolRoundTripPut(t *testing.T) {
	c := mustContract(t, 80, 95, 1.5, 0.03, 0, Put)

	for _, sigma := range []float64{0.15, 0.40, 0.90} {
		res, err := BlackScholes(c, sigma)
		if err != nil {
			t.Fatalf("price: %v", err)
		}
		recovered, err := ImpliedVolatility(c, res.Price)
		if err != nil {
			t.Fatalf("solve: %v", err)
		}
		if math.Abs(recovered-sigma) > 1e-4 {
			t.Fatalf("round trip at sigma=%f: recovered %f", sigma, recovered)
		}
	}
}

func TestImpliedVolArbitrageBounds(t *testing.T) {
	deepITM := mustContract(t, 100, 50, 0.5, 0.05, 0, Call)

	// A zero quote for a deep ITM call sits below the zero-vol floor.
	var arb *ArbitrageViolationError
	_, err := ImpliedVolatility(deepITM, 0)
	if !errors.As(err, &arb) {
		t.Fatalf("expected ArbitrageViolationError for zero quote, got %v", err)
	}

	// Below intrinsic but above zero: still below the floor.
	_, err = ImpliedVolatility(deepITM, 10)
	if !errors.As(err, &arb) {
		t.Fatalf("expected ArbitrageViolationError below floor, got %v", err)
	}

	// Above the sigma->infinity ceiling (the spot itself).
	_, err = ImpliedVolatility(deepITM, 150)
	if !errors.As(err, &arb) {
		t.Fatalf("expected ArbitrageViolationError above ceiling, got %v", err)
	}
}

func TestImpliedVolAtFloorIsZero(t *testing.T) {
	c := mustContract(t, 100, 50, 0.5, 0.05, 0, Call)
	floor := 100 - 50*math.Exp(-0.05*0.5)

	sigma, err := ImpliedVolatility(c, floor)
	if err != nil {
		t.Fatalf("solve at floor: %v", err)
	}
	if sigma != 0 {
		t.Fatalf("expected zero vol at the floor price, got %f", sigma)
	}
}

func TestImpliedVolAtExpiry(t *testing.T) {
	c := mustContract(t, 100, 100, 0, 0.05, 0, Call)

	var degenerate *DegenerateModelError
	_, err := ImpliedVolatility(c, 1.0)
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateModelError at expiry, got %v", err)
	}
}

func TestImpliedVolRejectsNegativePrice(t *testing.T) {
	c := mustContract(t, 100, 100, 0.5, 0.05, 0, Call)

	var invalid *InvalidInputError
	_, err := ImpliedVolatility(c, -1)
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError for negative price, got %v", err)
	}
}

func TestVolatilityInputSumType(t *testing.T) {
	if err := (VolatilityInput{}).Validate(); err == nil {
		t.Fatalf("zero value must fail validation")
	}
	if err := WithVolatility(-0.1).Validate(); err == nil {
		t.Fatalf("negative vol must fail validation")
	}
	if err := WithMarketPrice(0).Validate(); err == nil {
		t.Fatalf("zero market price must fail validation")
	}

	v := WithVolatility(0.25)
	if sigma, ok := v.Volatility(); !ok || sigma != 0.25 {
		t.Fatalf("volatility variant not readable")
	}
	if _, ok := v.MarketPrice(); ok {
		t.Fatalf("volatility variant must not read as market price")
	}

	m := WithMarketPrice(4.5)
	if err := m.Validate(); err != nil {
		t.Fatalf("valid market price rejected: %v", err)
	}
	if price, ok := m.MarketPrice(); !ok || price != 4.5 {
		t.Fatalf("market price variant not readable")
	}
}
