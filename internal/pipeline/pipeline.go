// Package pipeline orchestrates the scoring flow for one request:
// score the dataset snapshot with the caller's weights, filter and rank
// with the caller's criteria, then derive the aggregate views. Every run
// recomputes from the immutable snapshot, so concurrent requests need no
// coordination.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cookjwelch/golf-market-explorer/internal/analytics"
	"github.com/cookjwelch/golf-market-explorer/internal/dataset"
	"github.com/cookjwelch/golf-market-explorer/internal/domain"
	"github.com/cookjwelch/golf-market-explorer/internal/observability"
)

// Request bundles the caller-supplied parameters for one pipeline run.
type Request struct {
	Weights  domain.WeightConfig
	Criteria domain.FilterCriteria
}

// View is a fully materialized pipeline result: the ranked counties plus
// every aggregate the dashboard renders. No lazy or partial state.
type View struct {
	Counties   []domain.ScoredCounty          `json:"counties"`
	Degenerate []domain.Factor                `json:"degenerate,omitempty"`
	Summary    analytics.Summary              `json:"summary"`
	States     []analytics.StateAggregate     `json:"states"`
	Regions    []analytics.RegionDistribution `json:"regions"`
	ScoredAt   time.Time                      `json:"scored_at"`
}

// Explorer runs the scoring pipeline against a loaded dataset snapshot.
type Explorer struct {
	store   *dataset.Store
	logger  *slog.Logger
	metrics *observability.Metrics
	cache   *resultCache
}

// New creates an Explorer. cacheSize <= 0 disables result caching.
func New(store *dataset.Store, logger *slog.Logger, metrics *observability.Metrics, cacheSize int) *Explorer {
	e := &Explorer{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
	if cacheSize > 0 {
		e.cache = newResultCache(cacheSize)
	}
	if store != nil {
		metrics.CountiesLoaded.Set(float64(store.Len()))
	}
	return e
}

// Store exposes the underlying snapshot for callers that need dataset
// metadata (region list, affluence threshold).
func (e *Explorer) Store() *dataset.Store { return e.store }

// Explore runs score → filter → rank → aggregate for one request.
// Results for identical requests may be served from the cache; scoring is a
// deterministic pure function of (snapshot, request), so a cached view is
// indistinguishable from a fresh one.
func (e *Explorer) Explore(req Request) View {
	key := cacheKey(req)
	if e.cache != nil {
		if view, ok := e.cache.get(key); ok {
			e.metrics.CacheLookups.WithLabelValues("hit").Inc()
			return view
		}
		e.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()

	card := domain.Score(e.store.Records(), req.Weights)
	ranked := domain.Apply(card.Counties, req.Criteria)

	view := View{
		Counties:   ranked,
		Degenerate: card.Degenerate,
		Summary:    analytics.Summarize(ranked),
		States:     analytics.ByState(ranked),
		Regions:    analytics.ByRegion(ranked),
		ScoredAt:   card.ScoredAt,
	}

	e.metrics.ScoreRuns.Inc()
	e.metrics.ScoreDuration.Observe(time.Since(start).Seconds())
	e.metrics.CountiesServed.Observe(float64(len(ranked)))
	if len(card.Degenerate) > 0 {
		e.metrics.DegenerateFactors.Add(float64(len(card.Degenerate)))
		e.logger.Warn("zero-variance factor columns, using constant sub-score",
			"factors", card.Degenerate,
		)
	}

	if e.cache != nil {
		e.cache.put(key, view)
	}
	return view
}

// CheckReadiness returns nil once a dataset snapshot is loaded, or an error
// describing why the service is not yet ready.
func (e *Explorer) CheckReadiness(_ context.Context) error {
	if e.store == nil || e.store.Len() == 0 {
		return errors.New("dataset snapshot not loaded")
	}
	return nil
}
