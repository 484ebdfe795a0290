// Package analytics computes the aggregate views the dashboard renders:
// headline metrics, per-state choropleth inputs, per-region score
// distributions, and top-N rankings. Everything here is a pure function
// over an already scored (and usually filtered) county set.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/cookjwelch/golf-market-explorer/internal/domain"
)

// Summary holds the headline metrics shown above the fold.
type Summary struct {
	Counties         int     `json:"counties"`
	TotalPopulation  int64   `json:"total_population"`
	MeanScore        float64 `json:"mean_score"`
	AffluentCounties int     `json:"affluent_counties"`
}

// Summarize computes headline metrics over a scored set.
func Summarize(scored []domain.ScoredCounty) Summary {
	s := Summary{Counties: len(scored)}
	if len(scored) == 0 {
		return s
	}

	scores := make([]float64, len(scored))
	for i, sc := range scored {
		scores[i] = sc.Opportunity
		s.TotalPopulation += sc.Population
		if sc.Affluent {
			s.AffluentCounties++
		}
	}
	s.MeanScore = stat.Mean(scores, nil)
	return s
}

// StateAggregate is the per-state mean used to color the choropleth.
type StateAggregate struct {
	State     string  `json:"state"`
	Abbrev    string  `json:"abbrev,omitempty"`
	MeanScore float64 `json:"mean_score"`
	Counties  int     `json:"counties"`
}

// ByState averages opportunity scores per state, sorted by state name.
// States outside the USPS table (territories) get an empty abbreviation.
func ByState(scored []domain.ScoredCounty) []StateAggregate {
	groups := make(map[string][]float64)
	for _, sc := range scored {
		groups[sc.State] = append(groups[sc.State], sc.Opportunity)
	}

	out := make([]StateAggregate, 0, len(groups))
	for state, scores := range groups {
		abbrev, _ := domain.StateAbbrev(state)
		out = append(out, StateAggregate{
			State:     state,
			Abbrev:    abbrev,
			MeanScore: stat.Mean(scores, nil),
			Counties:  len(scores),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

// RegionDistribution is the five-number summary behind the per-region box
// plot.
type RegionDistribution struct {
	Region   string  `json:"region"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Counties int     `json:"counties"`
}

// ByRegion computes score distributions per region, sorted by region name.
func ByRegion(scored []domain.ScoredCounty) []RegionDistribution {
	groups := make(map[string][]float64)
	for _, sc := range scored {
		groups[sc.Region] = append(groups[sc.Region], sc.Opportunity)
	}

	out := make([]RegionDistribution, 0, len(groups))
	for region, scores := range groups {
		sort.Float64s(scores)
		out = append(out, RegionDistribution{
			Region:   region,
			Min:      scores[0],
			Q1:       stat.Quantile(0.25, stat.Empirical, scores, nil),
			Median:   stat.Quantile(0.5, stat.Empirical, scores, nil),
			Q3:       stat.Quantile(0.75, stat.Empirical, scores, nil),
			Max:      scores[len(scores)-1],
			Counties: len(scores),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}

// TopN returns the first n counties of an already ranked set. n <= 0 or
// n past the end returns the whole set.
func TopN(ranked []domain.ScoredCounty, n int) []domain.ScoredCounty {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
