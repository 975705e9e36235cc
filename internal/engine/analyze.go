package engine

import (
	"github.com/contactkeval/option-analytics/internal/analysis"
	"github.com/contactkeval/option-analytics/internal/logger"
	"github.com/contactkeval/option-analytics/internal/pricing"
	"github.com/contactkeval/option-analytics/internal/volatility"
)

// AnalysisResult is the complete response for one contract: the resolved
// volatility, price and Greeks, and whichever derived sections the request
// asked for. Optional sections are nil when not requested.
type AnalysisResult struct {
	Contract          pricing.ContractSpec  `json:"contract"`
	Volatility        float64               `json:"volatility"`
	VolatilityImplied bool                  `json:"volatility_implied"`
	Model             Model                 `json:"model"`
	Pricing           pricing.PricingResult `json:"pricing"`

	IVRank           *float64                  `json:"iv_rank,omitempty"`
	ITMProbability   float64                   `json:"itm_probability"`
	TouchProbability *float64                  `json:"touch_probability,omitempty"`
	Breakeven        *analysis.BreakevenResult `json:"breakeven,omitempty"`
	ExpectedMove     *analysis.ExpectedMove    `json:"expected_move,omitempty"`
}

// PriceRequest validates and prices a wire-form request.
func (e *Engine) PriceRequest(req *PricingRequest) (pricing.PricingResult, error) {
	if err := checkRequest(req); err != nil {
		return pricing.PricingResult{}, err
	}
	c, err := req.contract()
	if err != nil {
		return pricing.PricingResult{}, err
	}
	vol, err := req.volatilityInput()
	if err != nil {
		return pricing.PricingResult{}, err
	}
	return e.Price(c, vol, Model(req.Model), pricing.LatticeParams{Steps: req.LatticeSteps})
}

// Analyze runs the full pipeline: resolve volatility, price, then derive
// every section the request supplies inputs for. It returns a complete,
// internally consistent result or the first error; never a partial result.
func (e *Engine) Analyze(req *AnalysisRequest) (*AnalysisResult, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	c, err := req.contract()
	if err != nil {
		return nil, err
	}
	vol, err := req.volatilityInput()
	if err != nil {
		return nil, err
	}

	sigma, implied, err := e.resolveVolatility(c, vol)
	if err != nil {
		return nil, err
	}

	model := Model(req.Model)
	if model == "" {
		if c.Style == pricing.American {
			model = ModelLattice
		} else {
			model = ModelBlackScholes
		}
	}

	priced, err := e.priceResolved(c, sigma, model, pricing.LatticeParams{Steps: req.LatticeSteps})
	if err != nil {
		return nil, err
	}

	res := &AnalysisResult{
		Contract:          c,
		Volatility:        sigma,
		VolatilityImplied: implied,
		Model:             model,
		Pricing:           priced,
		ITMProbability:    analysis.ProbabilityITM(c, sigma),
	}

	if req.IVContext != nil {
		// The resolved volatility is the current reading; the request's
		// context supplies only the 52-week band.
		rank, err := volatility.Rank(sigma, req.IVContext.Low, req.IVContext.High)
		if err != nil {
			return nil, err
		}
		res.IVRank = &rank
	}

	if req.TouchTarget != nil {
		touch, err := analysis.ProbabilityTouch(c, sigma, *req.TouchTarget)
		if err != nil {
			return nil, err
		}
		res.TouchProbability = &touch
	}

	if req.Breakeven != nil {
		// The holding horizon cannot outlive the contract; theta decay
		// stops at expiry.
		if req.Breakeven.HoldingDays > c.Expiry*pricing.DaysPerYear {
			return nil, &pricing.InvalidInputError{
				Field:  "holding_days",
				Reason: "holding period exceeds the contract's remaining life",
			}
		}
		be, err := analysis.Breakeven(analysis.BreakevenInput{
			Delta:           priced.Delta,
			Theta:           priced.Theta,
			Vega:            priced.Vega,
			VolShift:        req.Breakeven.VolShift,
			HoldingDays:     req.Breakeven.HoldingDays,
			TransactionCost: req.Breakeven.TransactionCost,
			Spot:            c.Spot,
		})
		if err != nil {
			return nil, err
		}
		res.Breakeven = &be
	}

	if req.ExpectedMoveConfidence != nil {
		em, err := analysis.ModelExpectedMove(c.Spot, sigma, c.Expiry, *req.ExpectedMoveConfidence)
		if err != nil {
			return nil, err
		}
		res.ExpectedMove = &em
	}

	logger.Infof("analyzed %s %s S=%.2f K=%.2f T=%.4f vol=%.4f price=%.4f",
		c.Style, c.Type, c.Spot, c.Strike, c.Expiry, sigma, priced.Price)

	return res, nil
}
