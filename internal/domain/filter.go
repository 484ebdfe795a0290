package domain

import (
	"fmt"
	"sort"
)

// IncomeTier selects counties by the loader-derived affluence flag.
type IncomeTier string

const (
	IncomeTierAll         IncomeTier = "all"
	IncomeTierAffluent    IncomeTier = "affluent"
	IncomeTierNonAffluent IncomeTier = "non_affluent"
)

// ParseIncomeTier validates a tier name. The empty string means "all".
func ParseIncomeTier(s string) (IncomeTier, error) {
	switch IncomeTier(s) {
	case "", IncomeTierAll:
		return IncomeTierAll, nil
	case IncomeTierAffluent, IncomeTierNonAffluent:
		return IncomeTier(s), nil
	default:
		return "", fmt.Errorf("invalid income tier: %q", s)
	}
}

// FilterCriteria are the user-chosen predicates, combined with AND.
// The zero value matches every county.
type FilterCriteria struct {
	// MinScore drops counties scoring below the threshold.
	MinScore float64 `json:"min_score"`

	// Regions restricts output to the listed regions. Empty means no
	// restriction.
	Regions []string `json:"regions,omitempty"`

	// MetroOnly keeps only counties inside a metropolitan statistical area.
	MetroOnly bool `json:"metro_only"`

	// IncomeTier keeps all, affluent-only, or non-affluent-only counties.
	IncomeTier IncomeTier `json:"income_tier,omitempty"`
}

func (c FilterCriteria) matches(sc ScoredCounty, regions map[string]struct{}) bool {
	if sc.Opportunity < c.MinScore {
		return false
	}
	if len(regions) > 0 {
		if _, ok := regions[sc.Region]; !ok {
			return false
		}
	}
	if c.MetroOnly && !sc.Metro {
		return false
	}
	switch c.IncomeTier {
	case IncomeTierAffluent:
		return sc.Affluent
	case IncomeTierNonAffluent:
		return !sc.Affluent
	}
	return true
}

// Apply filters a scored set by the criteria and ranks the survivors by
// opportunity score descending, ties broken by county key ascending. The
// input is never modified; re-applying to already-ranked output reproduces
// it exactly.
func Apply(scored []ScoredCounty, criteria FilterCriteria) []ScoredCounty {
	regions := make(map[string]struct{}, len(criteria.Regions))
	for _, r := range criteria.Regions {
		regions[r] = struct{}{}
	}

	out := make([]ScoredCounty, 0, len(scored))
	for _, sc := range scored {
		if criteria.matches(sc, regions) {
			out = append(out, sc)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Opportunity != out[j].Opportunity {
			return out[i].Opportunity > out[j].Opportunity
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}
