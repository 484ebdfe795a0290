// Command validate performs data integrity checks on a county census CSV:
// schema and row validation, scoring invariants (determinism, sub-score
// ranges, degenerate-column handling), ranking order, and the export
// round-trip guarantee.
//
// Usage:
//
//	go run ./cmd/validate -dataset data/census.csv
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/cookjwelch/golf-market-explorer/internal/dataset"
	"github.com/cookjwelch/golf-market-explorer/internal/domain"
	"github.com/cookjwelch/golf-market-explorer/internal/export"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	datasetPath := flag.String("dataset", "", "path to the county census CSV")
	flag.Parse()

	if *datasetPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*datasetPath); code != 0 {
		os.Exit(code)
	}
}

func run(datasetPath string) int {
	fmt.Println("=== County Dataset Integrity Validation ===")
	fmt.Println()

	records, err := dataset.Load(datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %d counties from %s\n", len(records), datasetPath)

	weights := domain.DefaultWeights()
	card := domain.Score(records, weights)
	ranked := domain.Apply(card.Counties, domain.FilterCriteria{})

	phases := []*phase{
		validateRecords(records),
		validateScoring(records, weights, card),
		validateRanking(ranked, len(records)),
		validateRoundTrip(ranked),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-38s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i >= 10 {
				fmt.Printf("  ... and %d more\n", len(p.errors)-i)
				break
			}
			fmt.Printf("  %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	fmt.Println("\nall checks passed")
	return 0
}

func validateRecords(records []domain.CountyRecord) *phase {
	p := &phase{name: "record invariants"}

	affluent := 0
	for _, rec := range records {
		if rec.Population <= 0 {
			p.errorf("%s: non-positive population %d", rec.Key(), rec.Population)
		}
		for _, pct := range []struct {
			name  string
			value float64
		}{
			{"pct_college", rec.PctCollege},
			{"pct_hispanic", rec.PctHispanic},
			{"pct_asian", rec.PctAsian},
		} {
			if pct.value < 0 || pct.value > 100 {
				p.errorf("%s: %s out of range: %g", rec.Key(), pct.name, pct.value)
			}
		}
		if _, ok := domain.StateAbbrev(rec.State); !ok {
			p.errorf("%s: unknown state %q", rec.Key(), rec.State)
		}
		if rec.Affluent {
			affluent++
		}
	}

	// The affluent flag marks the top income quartile; expect roughly 25%.
	if len(records) >= 20 {
		share := float64(affluent) / float64(len(records))
		if share < 0.10 || share > 0.40 {
			p.errorf("affluent share %.2f far from top-quartile expectation", share)
		}
	}
	return p
}

func validateScoring(records []domain.CountyRecord, weights domain.WeightConfig, card domain.Scorecard) *phase {
	p := &phase{name: "scoring invariants"}

	if len(card.Counties) != len(records) {
		p.errorf("scored %d counties, want %d", len(card.Counties), len(records))
	}

	for _, sc := range card.Counties {
		for _, f := range []struct {
			name  domain.Factor
			value float64
		}{
			{domain.FactorIncome, sc.Factors.Income},
			{domain.FactorEducation, sc.Factors.Education},
			{domain.FactorDiversity, sc.Factors.Diversity},
			{domain.FactorPopulation, sc.Factors.Population},
			{domain.FactorAge, sc.Factors.Age},
		} {
			if f.value < 0 || f.value > 1 {
				p.errorf("%s: %s sub-score out of [0,1]: %g", sc.Key(), f.name, f.value)
			}
		}
		if sc.Opportunity < 0 || sc.Opportunity > 100*weights.Sum() {
			p.errorf("%s: score %g outside [0,%g]", sc.Key(), sc.Opportunity, 100*weights.Sum())
		}
	}

	// Determinism: a second run must reproduce identical scores.
	again := domain.Score(records, weights)
	for i := range card.Counties {
		if card.Counties[i].Opportunity != again.Counties[i].Opportunity {
			p.errorf("%s: score not deterministic: %g vs %g",
				card.Counties[i].Key(), card.Counties[i].Opportunity, again.Counties[i].Opportunity)
		}
	}

	for _, f := range card.Degenerate {
		fmt.Printf("note: factor %q has zero variance\n", f)
	}
	return p
}

func validateRanking(ranked []domain.ScoredCounty, total int) *phase {
	p := &phase{name: "ranking order"}

	if len(ranked) != total {
		p.errorf("empty criteria dropped rows: got %d, want %d", len(ranked), total)
	}
	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		if cur.Opportunity > prev.Opportunity {
			p.errorf("rank %d: score %g above preceding %g", i+1, cur.Opportunity, prev.Opportunity)
		}
		if cur.Opportunity == prev.Opportunity && cur.Key() < prev.Key() {
			p.errorf("rank %d: tie %q / %q not in key order", i+1, prev.Key(), cur.Key())
		}
	}
	return p
}

func validateRoundTrip(ranked []domain.ScoredCounty) *phase {
	p := &phase{name: "export round-trip"}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, ranked); err != nil {
		p.errorf("write export: %v", err)
		return p
	}

	restored, err := export.ReadCSV(bytes.NewReader(buf.Bytes()))
	if err != nil {
		p.errorf("re-read export: %v", err)
		return p
	}
	if len(restored) != len(ranked) {
		p.errorf("round-trip row count: got %d, want %d", len(restored), len(ranked))
		return p
	}
	for i := range ranked {
		if restored[i] != ranked[i] {
			p.errorf("row %d (%s) changed across round-trip", i+1, ranked[i].Key())
		}
	}
	return p
}
