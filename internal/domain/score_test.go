package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRecords returns three counties whose incomes split the [0,1] scale
// into exact thirds and whose ages span [25,65].
func testRecords() []CountyRecord {
	return []CountyRecord{
		{
			County: "Alpha", State: "Texas", Population: 10_000,
			MedianIncome: 30_000, PctCollege: 20, MedianAge: 25,
			PctHispanic: 10, PctAsian: 5, Metro: false, Region: "South",
		},
		{
			County: "Beta", State: "Texas", Population: 50_000,
			MedianIncome: 60_000, PctCollege: 35, MedianAge: 45,
			PctHispanic: 20, PctAsian: 10, Metro: true, Region: "South",
		},
		{
			County: "Gamma", State: "Ohio", Population: 90_000,
			MedianIncome: 90_000, PctCollege: 50, MedianAge: 65,
			PctHispanic: 30, PctAsian: 15, Metro: true, Region: "Midwest",
		},
	}
}

func TestScore_IncomeMinMaxScaling(t *testing.T) {
	card := Score(testRecords(), DefaultWeights())
	require.Len(t, card.Counties, 3)

	// Incomes [30000, 60000, 90000] normalize to [0, 0.5, 1].
	assert.Equal(t, 0.0, card.Counties[0].Factors.Income)
	assert.Equal(t, 0.5, card.Counties[1].Factors.Income)
	assert.Equal(t, 1.0, card.Counties[2].Factors.Income)
}

func TestScore_AgeInverted(t *testing.T) {
	card := Score(testRecords(), DefaultWeights())
	require.Len(t, card.Counties, 3)

	// Ages span [25,65]: the youngest county gets 1.0, the oldest 0.0.
	assert.Equal(t, 1.0, card.Counties[0].Factors.Age)
	assert.Equal(t, 0.5, card.Counties[1].Factors.Age)
	assert.Equal(t, 0.0, card.Counties[2].Factors.Age)
}

func TestScore_DiversityCombinesHispanicAndAsian(t *testing.T) {
	card := Score(testRecords(), DefaultWeights())
	require.Len(t, card.Counties, 3)

	// Combined shares are [15, 30, 45], so normalized [0, 0.5, 1].
	assert.Equal(t, 0.0, card.Counties[0].Factors.Diversity)
	assert.Equal(t, 0.5, card.Counties[1].Factors.Diversity)
	assert.Equal(t, 1.0, card.Counties[2].Factors.Diversity)
}

func TestScore_Deterministic(t *testing.T) {
	records := testRecords()
	weights := DefaultWeights()

	first := Score(records, weights)
	second := Score(records, weights)

	require.Len(t, second.Counties, len(first.Counties))
	for i := range first.Counties {
		assert.Equal(t, first.Counties[i].Opportunity, second.Counties[i].Opportunity)
		assert.Equal(t, first.Counties[i].Factors, second.Counties[i].Factors)
	}
}

func TestScore_SubScoresAndTotalInRange(t *testing.T) {
	card := Score(testRecords(), DefaultWeights())

	for _, sc := range card.Counties {
		for _, v := range []float64{
			sc.Factors.Income, sc.Factors.Education, sc.Factors.Diversity,
			sc.Factors.Population, sc.Factors.Age,
		} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		// DefaultWeights sum to 1, so the composite stays in [0,100].
		assert.GreaterOrEqual(t, sc.Opportunity, 0.0)
		assert.LessOrEqual(t, sc.Opportunity, 100.0)
	}
}

func TestScore_DegenerateColumn(t *testing.T) {
	records := testRecords()
	for i := range records {
		records[i].MedianIncome = 55_000
	}

	card := Score(records, DefaultWeights())

	require.Len(t, card.Degenerate, 1)
	assert.Equal(t, FactorIncome, card.Degenerate[0])
	for _, sc := range card.Counties {
		assert.Equal(t, DegenerateScale, sc.Factors.Income)
	}
}

func TestScore_AllColumnsDegenerate(t *testing.T) {
	records := []CountyRecord{
		{County: "Solo", State: "Texas", Population: 1000, MedianIncome: 50_000,
			PctCollege: 30, MedianAge: 40, PctHispanic: 10, PctAsian: 5, Region: "South"},
	}

	card := Score(records, DefaultWeights())

	require.Len(t, card.Counties, 1)
	assert.Len(t, card.Degenerate, 5)
	// Every factor falls back to the constant; score = 100 * 0.5 * Σw.
	assert.InDelta(t, 50.0, card.Counties[0].Opportunity, 1e-9)
}

func TestScore_WeightsAppliedAsSupplied(t *testing.T) {
	records := testRecords()

	// Doubled weights double the score; the engine does not rescale.
	base := Score(records, WeightConfig{Income: 1})
	doubled := Score(records, WeightConfig{Income: 2})

	for i := range base.Counties {
		assert.InDelta(t, 2*base.Counties[i].Opportunity, doubled.Counties[i].Opportunity, 1e-9)
	}
	// Income-only weighting: richest county scores exactly 100.
	assert.Equal(t, 100.0, base.Counties[2].Opportunity)
}

func TestScore_EmptyInput(t *testing.T) {
	card := Score(nil, DefaultWeights())
	assert.Empty(t, card.Counties)
	assert.Empty(t, card.Degenerate)
}

func TestScore_ScoredAtUsesClock(t *testing.T) {
	frozen := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	card := Score(testRecords(), DefaultWeights())
	assert.Equal(t, frozen, card.ScoredAt)
}

func TestWeightConfig_Normalized(t *testing.T) {
	w := WeightConfig{Income: 35, Education: 25, Diversity: 15, Population: 15, Age: 10}

	n := w.Normalized()

	assert.InDelta(t, 1.0, n.Sum(), 1e-9)
	assert.InDelta(t, 0.35, n.Income, 1e-9)
	assert.InDelta(t, 0.10, n.Age, 1e-9)
}

func TestWeightConfig_NormalizedZeroSum(t *testing.T) {
	var w WeightConfig
	assert.Equal(t, w, w.Normalized())
}

func TestWeightConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	bad := WeightConfig{Income: -0.1}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "income")
}
