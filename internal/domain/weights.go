package domain

import "fmt"

// WeightConfig holds the five factor weights supplied by the caller.
// Weights are applied exactly as given: Score does not rescale them, so
// opportunity scores only land in [0,100] when the weights sum to 1.
// Callers wanting that guarantee should pass w.Normalized().
type WeightConfig struct {
	Income     float64 `json:"income"     yaml:"income"`
	Education  float64 `json:"education"  yaml:"education"`
	Diversity  float64 `json:"diversity"  yaml:"diversity"`
	Population float64 `json:"population" yaml:"population"`
	Age        float64 `json:"age"        yaml:"age"`
}

// DefaultWeights returns the standard weighting used by the dashboard:
// income-led, with education a strong second.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Income:     0.35,
		Education:  0.25,
		Diversity:  0.15,
		Population: 0.15,
		Age:        0.10,
	}
}

// Sum returns the total of all five weights.
func (w WeightConfig) Sum() float64 {
	return w.Income + w.Education + w.Diversity + w.Population + w.Age
}

// Normalized returns a copy scaled so the weights sum to 1. A zero-sum
// config is returned unchanged; there is nothing meaningful to scale.
func (w WeightConfig) Normalized() WeightConfig {
	total := w.Sum()
	if total == 0 {
		return w
	}
	return WeightConfig{
		Income:     w.Income / total,
		Education:  w.Education / total,
		Diversity:  w.Diversity / total,
		Population: w.Population / total,
		Age:        w.Age / total,
	}
}

// Validate rejects negative weights. Sum is deliberately unchecked; see
// the WeightConfig doc comment.
func (w WeightConfig) Validate() error {
	for _, f := range []struct {
		name  Factor
		value float64
	}{
		{FactorIncome, w.Income},
		{FactorEducation, w.Education},
		{FactorDiversity, w.Diversity},
		{FactorPopulation, w.Population},
		{FactorAge, w.Age},
	} {
		if f.value < 0 {
			return fmt.Errorf("negative weight for %s: %g", f.name, f.value)
		}
	}
	return nil
}
