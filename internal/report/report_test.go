package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/contactkeval/option-analytics/internal/engine"
	"github.com/contactkeval/option-analytics/internal/pricing"
)

func sampleResult(t *testing.T) *engine.AnalysisResult {
	t.Helper()
	eng := engine.New(engine.Config{})
	vol := 0.20
	res, err := eng.Analyze(&engine.AnalysisRequest{
		PricingRequest: engine.PricingRequest{
			Spot:        100,
			Strike:      100,
			ExpiryYears: 0.25,
			Rate:        0.05,
			OptionType:  "call",
			Volatility:  &vol,
		},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return res
}

func TestWriteJSON(t *testing.T) {
	res := sampleResult(t)
	dir := t.TempDir()

	if err := WriteJSON(res, dir); err != nil {
		t.Fatalf("write: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "analysis.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var decoded engine.AnalysisResult
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Pricing.Price != res.Pricing.Price {
		t.Fatalf("price did not survive the round trip: %f vs %f", decoded.Pricing.Price, res.Pricing.Price)
	}
	if decoded.Contract.Type != pricing.Call {
		t.Fatalf("contract type lost: %+v", decoded.Contract)
	}
}

func TestWriteCSV(t *testing.T) {
	res := sampleResult(t)
	dir := t.TempDir()

	if err := WriteCSV([]*engine.AnalysisResult{res}, dir); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "analysis.csv"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	if rows[1][0] != "call" {
		t.Fatalf("expected option type in first column, got %q", rows[1][0])
	}
	// Price is rounded to cents.
	if !strings.HasPrefix(rows[1][8], "4.6") {
		t.Fatalf("expected rounded price near 4.61, got %q", rows[1][8])
	}
}
