package domain

// Factor identifies one of the five scoring dimensions.
type Factor string

const (
	FactorIncome     Factor = "income"
	FactorEducation  Factor = "education"
	FactorDiversity  Factor = "diversity"
	FactorPopulation Factor = "population"
	FactorAge        Factor = "age"
)

// DegenerateScale is the sub-score assigned to every county when a factor's
// column has zero variance (max == min). Keeps the factor neutral instead of
// producing a division by zero.
const DegenerateScale = 0.5

// Score computes an opportunity score for every record using min-max
// normalization per factor across the full input set:
//
//	normalized = (value - min) / (max - min)        each factor, to [0,1]
//	opportunity = 100 * Σ (weight_i * normalized_i)
//
// The age factor is inverted before scaling so younger counties score
// higher. The diversity factor is the combined Hispanic and Asian share.
// Weights are applied as supplied (see WeightConfig).
//
// Score is deterministic: identical records and weights reproduce identical
// output. Output order matches input order; ranking is Apply's job.
func Score(records []CountyRecord, weights WeightConfig) Scorecard {
	card := Scorecard{ScoredAt: clock.Now()}
	if len(records) == 0 {
		return card
	}

	income := newScale(records, func(c CountyRecord) float64 { return c.MedianIncome })
	education := newScale(records, func(c CountyRecord) float64 { return c.PctCollege })
	diversity := newScale(records, func(c CountyRecord) float64 { return c.Diversity() })
	population := newScale(records, func(c CountyRecord) float64 { return float64(c.Population) })
	age := newScale(records, func(c CountyRecord) float64 { return c.MedianAge })

	card.Degenerate = degenerateFactors(income, education, diversity, population, age)

	card.Counties = make([]ScoredCounty, 0, len(records))
	for _, rec := range records {
		f := FactorScores{
			Income:     income.normalize(rec.MedianIncome),
			Education:  education.normalize(rec.PctCollege),
			Diversity:  diversity.normalize(rec.Diversity()),
			Population: population.normalize(float64(rec.Population)),
			Age:        age.invert(rec.MedianAge),
		}
		card.Counties = append(card.Counties, ScoredCounty{
			CountyRecord: rec,
			Factors:      f,
			Opportunity: 100 * (weights.Income*f.Income +
				weights.Education*f.Education +
				weights.Diversity*f.Diversity +
				weights.Population*f.Population +
				weights.Age*f.Age),
		})
	}
	return card
}

// scale holds the observed min and max of one factor's column.
type scale struct {
	min, max float64
}

func newScale(records []CountyRecord, value func(CountyRecord) float64) scale {
	s := scale{min: value(records[0]), max: value(records[0])}
	for _, rec := range records[1:] {
		v := value(rec)
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	return s
}

func (s scale) degenerate() bool {
	return s.max == s.min
}

// normalize rescales v to [0,1] within the observed column range.
func (s scale) normalize(v float64) float64 {
	if s.degenerate() {
		return DegenerateScale
	}
	return (v - s.min) / (s.max - s.min)
}

// invert rescales (max - v) so the column's minimum maps to 1 and its
// maximum to 0. Used for age: younger counties are better markets.
func (s scale) invert(v float64) float64 {
	if s.degenerate() {
		return DegenerateScale
	}
	return (s.max - v) / (s.max - s.min)
}

func degenerateFactors(income, education, diversity, population, age scale) []Factor {
	var out []Factor
	for _, f := range []struct {
		name Factor
		s    scale
	}{
		{FactorIncome, income},
		{FactorEducation, education},
		{FactorDiversity, diversity},
		{FactorPopulation, population},
		{FactorAge, age},
	} {
		if f.s.degenerate() {
			out = append(out, f.name)
		}
	}
	return out
}
