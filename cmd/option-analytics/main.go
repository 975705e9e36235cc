package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/contactkeval/option-analytics/internal/engine"
	"github.com/contactkeval/option-analytics/internal/pricing"
	"github.com/contactkeval/option-analytics/internal/report"
)

func main() {
	requestPath := flag.String("request", "request.json", "path to JSON analysis request")
	rest := flag.Bool("rest", false, "run as REST server (accept analysis requests)")
	port := flag.String("port", ":8080", "REST server listen address")
	outDir := flag.String("out", "", "output directory (default: print to stdout)")
	verbosity := flag.Int("v", 1, "verbosity: 0=errors,1=info,2=debug")
	flag.Parse()

	// .env is optional; flags still win over environment.
	_ = godotenv.Load()

	cfg := engine.Config{Verbosity: *verbosity}
	if v := os.Getenv("OPTION_ANALYTICS_MAX_LATTICE_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxLatticeSteps = n
		}
	}

	eng := engine.New(cfg)

	if *rest {
		serve(eng, *port)
		return
	}

	reqData, err := os.ReadFile(*requestPath)
	if err != nil {
		log.Fatalf("reading request: %v", err)
	}

	var req engine.AnalysisRequest
	if err := json.Unmarshal(reqData, &req); err != nil {
		log.Fatalf("invalid request: %v", err)
	}

	start := time.Now()
	res, err := eng.Analyze(&req)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	if *outDir == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res)
	} else {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			log.Fatalf("could not create output dir %s: %v", *outDir, err)
		}
		if err := report.WriteJSON(res, *outDir); err != nil {
			log.Fatalf("writing JSON report: %v", err)
		}
		if err := report.WriteCSV([]*engine.AnalysisResult{res}, *outDir); err != nil {
			log.Fatalf("writing CSV report: %v", err)
		}
	}
	log.Printf("[done] finished in %v", time.Since(start))
}

func serve(eng *engine.Engine, port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		var req engine.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := eng.Analyze(&req)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	log.Printf("[info] starting REST server on %s", port)
	log.Fatal(http.ListenAndServe(port, mux))
}

// statusFor maps engine errors onto HTTP statuses: bad requests stay 4xx,
// anything unexpected is a 500.
func statusFor(err error) int {
	var (
		invalid     *pricing.InvalidInputError
		arbitrage   *pricing.ArbitrageViolationError
		degenerate  *pricing.DegenerateModelError
		bound       *pricing.ResourceBoundError
		nonConverge *pricing.NonConvergenceError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &arbitrage), errors.As(err, &degenerate):
		return http.StatusBadRequest
	case errors.As(err, &bound):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &nonConverge):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
