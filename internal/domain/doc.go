// Package domain models county-level demographic data and the opportunity
// scoring that ranks counties as golf-equipment markets.
//
// # Data Source
//
// County records come from the U.S. Census Bureau American Community Survey
// (ACS 5-year estimates), pre-flattened to one CSV row per county with the
// columns listed in [internal/dataset]. The dataset is static for a session:
// loaded once, never mutated, roughly 3,100 rows.
//
// # Scoring Methodology
//
// The opportunity score is a weighted composite of five factors, informed by
// National Golf Foundation golfer demographics research:
//
//	income     — median household income
//	education  — % of adults with a bachelor's degree or higher
//	diversity  — combined Hispanic and Asian population share
//	population — county population (market size)
//	age        — median age, inverted: younger counties score higher
//
// Each factor is min-max normalized to [0,1] across the full input set, then
// combined:
//
//	opportunity = 100 * Σ (weight_i * normalized_i)
//
// A zero-variance column (max == min) normalizes to the constant
// [DegenerateScale] for every county rather than dividing by zero; such
// factors are reported on the [Scorecard].
//
// Weights are applied exactly as supplied. The engine does not rescale them,
// so scores exceed 100 when weights sum past 1; callers wanting the
// documented [0,100] range pass [WeightConfig.Normalized]. Scoring is a pure
// deterministic function of (records, weights) — identical inputs reproduce
// identical scores, which is what makes result caching and the export
// round-trip guarantee possible.
//
// # Filtering and Ranking
//
// [Apply] evaluates conjunctive predicates (minimum score, region allow-list,
// metro flag, income tier) and ranks survivors by score descending with ties
// broken by county key ascending, so output order is fully reproducible.
package domain
