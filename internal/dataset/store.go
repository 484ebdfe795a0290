package dataset

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/cookjwelch/golf-market-explorer/internal/domain"
)

// affluenceQuantile is the income percentile above which a county counts as
// affluent: the top quartile of median household income.
const affluenceQuantile = 0.75

// Store holds the immutable dataset snapshot for the session. It is safe
// for concurrent readers because nothing mutates it after construction.
type Store struct {
	records   []domain.CountyRecord
	regions   []string
	threshold float64
	loadedAt  time.Time
}

// NewStore wraps loaded records in a session snapshot. The records slice is
// copied; the caller's slice is not retained.
func NewStore(records []domain.CountyRecord, loadedAt time.Time) *Store {
	snapshot := make([]domain.CountyRecord, len(records))
	copy(snapshot, records)

	regionSet := make(map[string]struct{})
	for _, rec := range snapshot {
		if rec.Region != "" {
			regionSet[rec.Region] = struct{}{}
		}
	}
	regions := make([]string, 0, len(regionSet))
	for r := range regionSet {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	return &Store{
		records:   snapshot,
		regions:   regions,
		threshold: affluenceThreshold(snapshot),
		loadedAt:  loadedAt,
	}
}

// Records returns the dataset snapshot. The slice is shared across callers
// and must be treated as read-only; scoring copies values into derived views.
func (s *Store) Records() []domain.CountyRecord {
	return s.records
}

// Len reports the number of counties in the snapshot.
func (s *Store) Len() int { return len(s.records) }

// Regions returns the distinct regions present in the dataset, sorted.
func (s *Store) Regions() []string { return s.regions }

// AffluenceThreshold returns the median-income cutoff used for the
// affluent flag.
func (s *Store) AffluenceThreshold() float64 { return s.threshold }

// LoadedAt returns when the snapshot was built.
func (s *Store) LoadedAt() time.Time { return s.loadedAt }

// flagAffluent marks counties at or above the dataset's 75th percentile of
// median income. Called by the loader once per load so the flag is part of
// the immutable snapshot rather than recomputed per request.
func flagAffluent(records []domain.CountyRecord) {
	threshold := affluenceThreshold(records)
	for i := range records {
		records[i].Affluent = records[i].MedianIncome >= threshold
	}
}

func affluenceThreshold(records []domain.CountyRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	incomes := make([]float64, len(records))
	for i, rec := range records {
		incomes[i] = rec.MedianIncome
	}
	sort.Float64s(incomes)
	return stat.Quantile(affluenceQuantile, stat.Empirical, incomes, nil)
}
