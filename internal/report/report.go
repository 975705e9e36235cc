// Package report writes analysis results to disk for the CLI. Money-like
// fields are rounded to cents and Greeks to four places via decimal, so the
// files are stable across runs and diffable.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-analytics/internal/engine"
)

func money(x float64) string {
	return decimal.NewFromFloat(x).Round(2).String()
}

func figure(x float64) string {
	return decimal.NewFromFloat(x).Round(4).String()
}

// WriteJSON writes the full result as indented JSON.
func WriteJSON(res *engine.AnalysisResult, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "analysis.json"), b, 0644)
}

// WriteCSV writes a one-row summary per result, suitable for appending runs
// into a spreadsheet.
func WriteCSV(results []*engine.AnalysisResult, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "analysis.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{
		"option_type", "style", "model", "spot", "strike", "expiry_years",
		"volatility", "implied", "price", "delta", "gamma", "theta", "vega", "rho",
		"itm_probability", "iv_rank",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, r := range results {
		rank := ""
		if r.IVRank != nil {
			rank = figure(*r.IVRank)
		}
		row := []string{
			string(r.Contract.Type),
			string(r.Contract.Style),
			string(r.Model),
			money(r.Contract.Spot),
			money(r.Contract.Strike),
			figure(r.Contract.Expiry),
			figure(r.Volatility),
			fmt.Sprintf("%t", r.VolatilityImplied),
			money(r.Pricing.Price),
			figure(r.Pricing.Delta),
			figure(r.Pricing.Gamma),
			figure(r.Pricing.Theta),
			figure(r.Pricing.Vega),
			figure(r.Pricing.Rho),
			figure(r.ITMProbability),
			rank,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
