// Package export serializes scored county tables: a CSV codec for the
// dashboard's download button and pluggable sinks for persisting snapshots.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cookjwelch/golf-market-explorer/internal/domain"
)

// Header mirrors the displayed columns. The first ten match the dataset
// schema exactly so an export can be re-loaded as a dataset; the rest carry
// the derived values.
var Header = []string{
	"county", "state", "population", "median_income", "pct_college",
	"median_age", "pct_hispanic", "pct_asian", "metro", "region",
	"lat", "lon", "affluent",
	"opportunity_score",
	"income_score", "education_score", "diversity_score",
	"population_score", "age_score",
}

// WriteCSV serializes counties to w in ranked order with a header row.
// Floats are written at full precision so re-reading an export reproduces
// the exact score values.
func WriteCSV(w io.Writer, counties []domain.ScoredCounty) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range counties {
		row := []string{
			c.County,
			c.State,
			strconv.FormatInt(c.Population, 10),
			formatFloat(c.MedianIncome),
			formatFloat(c.PctCollege),
			formatFloat(c.MedianAge),
			formatFloat(c.PctHispanic),
			formatFloat(c.PctAsian),
			strconv.FormatBool(c.Metro),
			c.Region,
			formatFloat(c.Lat),
			formatFloat(c.Lon),
			strconv.FormatBool(c.Affluent),
			formatFloat(c.Opportunity),
			formatFloat(c.Factors.Income),
			formatFloat(c.Factors.Education),
			formatFloat(c.Factors.Diversity),
			formatFloat(c.Factors.Population),
			formatFloat(c.Factors.Age),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", c.Key(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an export produced by WriteCSV back into scored counties,
// preserving order and exact float values.
func ReadCSV(r io.Reader) ([]domain.ScoredCounty, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(Header) {
		return nil, fmt.Errorf("unexpected header: got %d columns, want %d", len(header), len(Header))
	}

	var out []domain.ScoredCounty
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		c, err := parseExportRow(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseExportRow(fields []string) (domain.ScoredCounty, error) {
	var c domain.ScoredCounty
	c.County = fields[0]
	c.State = fields[1]
	c.Region = fields[9]

	var err error
	if c.Population, err = strconv.ParseInt(fields[2], 10, 64); err != nil {
		return c, fmt.Errorf("population: %w", err)
	}
	floats := []struct {
		dst *float64
		idx int
	}{
		{&c.MedianIncome, 3}, {&c.PctCollege, 4}, {&c.MedianAge, 5},
		{&c.PctHispanic, 6}, {&c.PctAsian, 7}, {&c.Lat, 10}, {&c.Lon, 11},
		{&c.Opportunity, 13},
		{&c.Factors.Income, 14}, {&c.Factors.Education, 15},
		{&c.Factors.Diversity, 16}, {&c.Factors.Population, 17},
		{&c.Factors.Age, 18},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(fields[f.idx], 64); err != nil {
			return c, fmt.Errorf("column %s: %w", Header[f.idx], err)
		}
	}
	if c.Metro, err = strconv.ParseBool(fields[8]); err != nil {
		return c, fmt.Errorf("metro: %w", err)
	}
	if c.Affluent, err = strconv.ParseBool(fields[12]); err != nil {
		return c, fmt.Errorf("affluent: %w", err)
	}
	return c, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
