package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cookjwelch/golf-market-explorer/internal/config"
	"github.com/cookjwelch/golf-market-explorer/internal/domain"
	"github.com/cookjwelch/golf-market-explorer/internal/pipeline"
)

// parseRequest turns query parameters into a pipeline request plus a row
// limit for the counties/export endpoints (0 = unlimited).
//
// Weights come from ?preset=<name> or the five w_* parameters, defaulting to
// the standard weighting, and are normalized to sum to 1 before scoring so
// API scores always land in the documented [0,100] range regardless of what
// the sliders send.
func (s *Server) parseRequest(r *http.Request) (pipeline.Request, int, error) {
	q := r.URL.Query()

	weights, err := s.parseWeights(q)
	if err != nil {
		return pipeline.Request{}, 0, err
	}

	criteria, err := parseCriteria(q)
	if err != nil {
		return pipeline.Request{}, 0, err
	}

	limit := 0
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			return pipeline.Request{}, 0, fmt.Errorf("invalid limit: %q", v)
		}
	}

	return pipeline.Request{Weights: weights.Normalized(), Criteria: criteria}, limit, nil
}

func (s *Server) parseWeights(q url.Values) (domain.WeightConfig, error) {
	if name := q.Get("preset"); name != "" {
		preset, ok := config.FindPreset(s.presets, name)
		if !ok {
			return domain.WeightConfig{}, fmt.Errorf("unknown preset: %q", name)
		}
		return preset.Weights(), nil
	}

	w := domain.DefaultWeights()
	for _, p := range []struct {
		param string
		dst   *float64
	}{
		{"w_income", &w.Income},
		{"w_education", &w.Education},
		{"w_diversity", &w.Diversity},
		{"w_population", &w.Population},
		{"w_age", &w.Age},
	} {
		v := q.Get(p.param)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.WeightConfig{}, fmt.Errorf("invalid %s: %q", p.param, v)
		}
		*p.dst = f
	}

	if err := w.Validate(); err != nil {
		return domain.WeightConfig{}, err
	}
	return w, nil
}

func parseCriteria(q url.Values) (domain.FilterCriteria, error) {
	var c domain.FilterCriteria

	if v := q.Get("min_score"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("invalid min_score: %q", v)
		}
		c.MinScore = f
	}

	if v := q.Get("regions"); v != "" {
		for _, region := range strings.Split(v, ",") {
			region = strings.TrimSpace(region)
			if region != "" {
				c.Regions = append(c.Regions, region)
			}
		}
	}

	if v := q.Get("metro_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("invalid metro_only: %q", v)
		}
		c.MetroOnly = b
	}

	tier, err := domain.ParseIncomeTier(q.Get("income_tier"))
	if err != nil {
		return c, err
	}
	c.IncomeTier = tier

	return c, nil
}
