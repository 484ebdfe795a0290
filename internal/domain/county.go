package domain

import "time"

// CountyRecord is one row of the census dataset. Records are read once at
// startup and never mutated afterwards; derived views copy what they need.
type CountyRecord struct {
	County       string  `json:"county"`
	State        string  `json:"state"`
	Population   int64   `json:"population"`
	MedianIncome float64 `json:"median_income"`
	PctCollege   float64 `json:"pct_college"`
	MedianAge    float64 `json:"median_age"`
	PctHispanic  float64 `json:"pct_hispanic"`
	PctAsian     float64 `json:"pct_asian"`
	Metro        bool    `json:"metro"`
	Region       string  `json:"region"`
	Lat          float64 `json:"lat,omitempty"`
	Lon          float64 `json:"lon,omitempty"`

	// Affluent marks counties at or above the dataset's 75th percentile of
	// median income. Derived by the loader, not present in the source CSV.
	Affluent bool `json:"affluent"`
}

// Key returns the unique county identifier used for tie-breaking and
// duplicate detection: state first so sorted output groups by state.
func (c CountyRecord) Key() string {
	return c.State + "/" + c.County
}

// Diversity is the combined Hispanic and Asian share of the population,
// the raw input to the diversity factor.
func (c CountyRecord) Diversity() float64 {
	return c.PctHispanic + c.PctAsian
}

// FactorScores holds the five normalized sub-scores, each in [0,1].
type FactorScores struct {
	Income     float64 `json:"income"`
	Education  float64 `json:"education"`
	Diversity  float64 `json:"diversity"`
	Population float64 `json:"population"`
	Age        float64 `json:"age"`
}

// ScoredCounty is a CountyRecord plus its derived opportunity score and the
// per-factor sub-scores that produced it.
type ScoredCounty struct {
	CountyRecord
	Opportunity float64      `json:"opportunity_score"`
	Factors     FactorScores `json:"factors"`
}

// Scorecard is the result of one scoring pass over the full dataset.
type Scorecard struct {
	Counties []ScoredCounty `json:"counties"`

	// Degenerate lists factors whose column had zero variance across the
	// input set; every county received the constant fallback sub-score
	// for them. Informational, never fatal.
	Degenerate []Factor `json:"degenerate,omitempty"`

	ScoredAt time.Time `json:"scored_at"`
}
