package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/contactkeval/option-analytics/internal/pricing"
)

func contract(t *testing.T, spot, strike, expiry, rate, yield float64, typ pricing.OptionType) pricing.ContractSpec {
	t.Helper()
	c, err := pricing.NewContractSpec(spot, strike, expiry, rate, yield, typ, pricing.European)
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	return c
}

func TestProbabilityITMComplement(t *testing.T) {
	// The call and put on the same terms split the ITM probability.
	call := contract(t, 100, 105, 0.5, 0.03, 0.01, pricing.Call)
	put := contract(t, 100, 105, 0.5, 0.03, 0.01, pricing.Put)

	pc := ProbabilityITM(call, 0.25)
	pp := ProbabilityITM(put, 0.25)

	if pc <= 0 || pc >= 1 || pp <= 0 || pp >= 1 {
		t.Fatalf("probabilities out of range: call %v put %v", pc, pp)
	}
	if math.Abs(pc+pp-1) > 1e-12 {
		t.Fatalf("call and put ITM probabilities should sum to 1: %v + %v", pc, pp)
	}
	// An OTM call finishes ITM less often than not.
	if pc >= 0.5 {
		t.Fatalf("OTM call ITM probability should be below 0.5, got %v", pc)
	}
}

func TestProbabilityITMDeterministicEdges(t *testing.T) {
	itm := contract(t, 120, 100, 0, 0.05, 0, pricing.Call)
	if p := ProbabilityITM(itm, 0.3); p != 1 {
		t.Fatalf("ITM at expiry: expected 1, got %v", p)
	}
	otm := contract(t, 80, 100, 0, 0.05, 0, pricing.Call)
	if p := ProbabilityITM(otm, 0.3); p != 0 {
		t.Fatalf("OTM at expiry: expected 0, got %v", p)
	}
	// Zero vol, time remaining: outcome pinned by moneyness today.
	if p := ProbabilityITM(contract(t, 120, 100, 1, 0, 0, pricing.Call), 0); p != 1 {
		t.Fatalf("zero-vol ITM: expected 1, got %v", p)
	}
}

func TestProbabilityTouchKnownValue(t *testing.T) {
	// S=100, H=110, T=1, r=q=0, sigma=0.2: reflection principle gives ~0.603.
	c := contract(t, 100, 110, 1, 0, 0, pricing.Call)

	p, err := ProbabilityTouch(c, 0.20, 110)
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if math.Abs(p-0.603) > 0.005 {
		t.Fatalf("expected touch probability near 0.603, got %v", p)
	}
}

func TestProbabilityTouchExceedsFinishProbability(t *testing.T) {
	// Touching a level on the way is at least as likely as finishing
	// beyond it.
	c := contract(t, 100, 110, 1, 0.02, 0, pricing.Call)
	sigma := 0.25

	touch, err := ProbabilityTouch(c, sigma, 110)
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	finish := ProbabilityITM(contract(t, 100, 110, 1, 0.02, 0, pricing.Call), sigma)

	if touch < finish {
		t.Fatalf("touch probability %v below finish probability %v", touch, finish)
	}
}

func TestProbabilityTouchBelowSpot(t *testing.T) {
	c := contract(t, 100, 100, 1, 0.02, 0, pricing.Put)

	near, err := ProbabilityTouch(c, 0.3, 95)
	if err != nil {
		t.Fatalf("touch 95: %v", err)
	}
	far, err := ProbabilityTouch(c, 0.3, 60)
	if err != nil {
		t.Fatalf("touch 60: %v", err)
	}

	if near <= far {
		t.Fatalf("nearer target should be touched more often: %v vs %v", near, far)
	}
	if near <= 0 || near > 1 || far <= 0 || far > 1 {
		t.Fatalf("probabilities out of range: %v, %v", near, far)
	}
}

func TestProbabilityTouchAtSpot(t *testing.T) {
	c := contract(t, 100, 100, 1, 0.02, 0, pricing.Call)
	p, err := ProbabilityTouch(c, 0.3, 100)
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if p != 1 {
		t.Fatalf("target at spot is already touched: expected 1, got %v", p)
	}
	// Even with no vol or time left.
	zero := contract(t, 100, 100, 0, 0.02, 0, pricing.Call)
	if p, err := ProbabilityTouch(zero, 0, 100); err != nil || p != 1 {
		t.Fatalf("expected 1 with no error, got %v, %v", p, err)
	}
}

func TestProbabilityTouchDegenerate(t *testing.T) {
	var degenerate *pricing.DegenerateModelError

	atExpiry := contract(t, 100, 100, 0, 0.02, 0, pricing.Call)
	if _, err := ProbabilityTouch(atExpiry, 0.3, 110); !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateModelError at expiry, got %v", err)
	}

	c := contract(t, 100, 100, 1, 0.02, 0, pricing.Call)
	if _, err := ProbabilityTouch(c, 0, 110); !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateModelError at zero vol, got %v", err)
	}

	var invalid *pricing.InvalidInputError
	if _, err := ProbabilityTouch(c, 0.3, -5); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError for negative target, got %v", err)
	}
}
