package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cookjwelch/golf-market-explorer/internal/domain"
)

// requiredColumns are the headers every dataset file must carry. Extra
// columns (including a prior export's score columns) are ignored, which is
// what makes exports re-loadable.
var requiredColumns = []string{
	"county", "state", "population", "median_income", "pct_college",
	"median_age", "pct_hispanic", "pct_asian", "metro", "region",
}

// Load reads and validates a dataset file. It returns a *LoadError when the
// file cannot be read and a *SchemaError when a required column is missing
// or a value is malformed. There is no row-level skip-and-continue: the
// whole file parses or the load fails.
func Load(path string) ([]domain.CountyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return nil, err
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return records, nil
}

// Parse reads CSV county records from r, validating schema and row values.
func Parse(r io.Reader) ([]domain.CountyRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.CountyRecord
	seen := make(map[string]struct{})

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		rec, err := parseRow(cols, fields, row)
		if err != nil {
			return nil, err
		}

		key := rec.Key()
		if _, dup := seen[key]; dup {
			return nil, &SchemaError{Column: "county", Row: row, Reason: fmt.Sprintf("duplicate county %q", key)}
		}
		seen[key] = struct{}{}
		records = append(records, rec)
	}

	flagAffluent(records)
	return records, nil
}

// indexColumns maps required and optional column names to their positions.
// Header matching is case-insensitive and whitespace-tolerant.
func indexColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &SchemaError{Column: col, Reason: "required column missing"}
		}
	}
	return idx, nil
}

func parseRow(cols map[string]int, fields []string, row int) (domain.CountyRecord, error) {
	get := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	rec := domain.CountyRecord{
		County: get("county"),
		State:  get("state"),
		Region: get("region"),
	}
	if rec.County == "" {
		return rec, &SchemaError{Column: "county", Row: row, Reason: "empty county name"}
	}
	if rec.State == "" {
		return rec, &SchemaError{Column: "state", Row: row, Reason: "empty state name"}
	}

	var err error
	if rec.Population, err = parsePopulation(get("population")); err != nil {
		return rec, &SchemaError{Column: "population", Row: row, Reason: err.Error()}
	}
	if rec.MedianIncome, err = parseNonNegative(get("median_income")); err != nil {
		return rec, &SchemaError{Column: "median_income", Row: row, Reason: err.Error()}
	}
	if rec.PctCollege, err = parsePercent(get("pct_college")); err != nil {
		return rec, &SchemaError{Column: "pct_college", Row: row, Reason: err.Error()}
	}
	if rec.MedianAge, err = parsePositive(get("median_age")); err != nil {
		return rec, &SchemaError{Column: "median_age", Row: row, Reason: err.Error()}
	}
	if rec.PctHispanic, err = parsePercent(get("pct_hispanic")); err != nil {
		return rec, &SchemaError{Column: "pct_hispanic", Row: row, Reason: err.Error()}
	}
	if rec.PctAsian, err = parsePercent(get("pct_asian")); err != nil {
		return rec, &SchemaError{Column: "pct_asian", Row: row, Reason: err.Error()}
	}
	if rec.Metro, err = parseBool(get("metro")); err != nil {
		return rec, &SchemaError{Column: "metro", Row: row, Reason: err.Error()}
	}

	// lat/lon are optional mapping hints; absent or blank is fine.
	rec.Lat = parseFloatOrZero(get("lat"))
	rec.Lon = parseFloatOrZero(get("lon"))

	return rec, nil
}

func parsePopulation(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("population must be positive, got %d", v)
	}
	return v, nil
}

func parseNonNegative(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("must be non-negative, got %g", v)
	}
	return v, nil
}

func parsePositive(s string) (float64, error) {
	v, err := parseNonNegative(s)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("must be positive, got 0")
	}
	return v, nil
}

func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("percentage out of [0,100]: %g", v)
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q", s)
	}
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
