// Command genmock generates a synthetic county census CSV for development
// and testing. Values are drawn from a seeded generator, so the same seed
// always reproduces the same fixture.
//
// Usage:
//
//	go run ./cmd/genmock -out data/census.csv -counties 300 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// regionStates groups a representative slice of states per census region so
// generated data exercises the region filter and state aggregation.
var regionStates = map[string][]string{
	"Northeast": {"New York", "Massachusetts", "Pennsylvania", "Connecticut"},
	"Midwest":   {"Ohio", "Illinois", "Michigan", "Minnesota"},
	"South":     {"Texas", "Florida", "Georgia", "North Carolina"},
	"West":      {"California", "Arizona", "Colorado", "Washington"},
}

var regions = []string{"Northeast", "Midwest", "South", "West"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated CSV")
	counties := flag.Int("counties", 300, "number of county rows to generate")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *counties <= 0 {
		return fmt.Errorf("-counties must be positive")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := csv.NewWriter(f)

	header := []string{
		"county", "state", "population", "median_income", "pct_college",
		"median_age", "pct_hispanic", "pct_asian", "metro", "region",
		"lat", "lon",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < *counties; i++ {
		if err := w.Write(generateRow(rng, i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Printf("wrote %d counties to %s (seed %d)", *counties, *out, *seed)
	return nil
}

func generateRow(rng *rand.Rand, i int) []string {
	region := regions[rng.Intn(len(regions))]
	states := regionStates[region]
	state := states[rng.Intn(len(states))]

	// Rough ACS-like ranges; metro counties skew larger and richer.
	metro := rng.Float64() < 0.4
	population := int64(5_000 + rng.Intn(150_000))
	income := 35_000 + rng.Float64()*45_000
	if metro {
		population += int64(rng.Intn(1_500_000))
		income += rng.Float64()*30_000
	}

	pctHispanic := rng.Float64() * 40
	pctAsian := rng.Float64() * 15

	return []string{
		fmt.Sprintf("County %03d", i+1),
		state,
		strconv.FormatInt(population, 10),
		strconv.FormatFloat(round1(income), 'f', -1, 64),
		strconv.FormatFloat(round1(10+rng.Float64()*45), 'f', -1, 64),
		strconv.FormatFloat(round1(28+rng.Float64()*25), 'f', -1, 64),
		strconv.FormatFloat(round1(pctHispanic), 'f', -1, 64),
		strconv.FormatFloat(round1(pctAsian), 'f', -1, 64),
		strconv.FormatBool(metro),
		region,
		strconv.FormatFloat(round4(25+rng.Float64()*24), 'f', -1, 64),
		strconv.FormatFloat(round4(-(67+rng.Float64()*57)), 'f', -1, 64),
	}
}

func round1(v float64) float64 { return float64(int(v*10+0.5)) / 10 }

func round4(v float64) float64 {
	if v < 0 {
		return -round4(-v)
	}
	return float64(int(v*10_000+0.5)) / 10_000
}
