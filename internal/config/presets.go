package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cookjwelch/golf-market-explorer/internal/domain"
)

// WeightPreset is a named weight configuration selectable by API callers.
type WeightPreset struct {
	Name        string  `yaml:"name"        json:"name"`
	Description string  `yaml:"description" json:"description,omitempty"`
	Income      float64 `yaml:"income"      json:"income"`
	Education   float64 `yaml:"education"   json:"education"`
	Diversity   float64 `yaml:"diversity"   json:"diversity"`
	Population  float64 `yaml:"population"  json:"population"`
	Age         float64 `yaml:"age"         json:"age"`
}

// Weights converts a preset to a domain weight configuration.
func (p WeightPreset) Weights() domain.WeightConfig {
	return domain.WeightConfig{
		Income:     p.Income,
		Education:  p.Education,
		Diversity:  p.Diversity,
		Population: p.Population,
		Age:        p.Age,
	}
}

// presetsFile is the on-disk YAML layout.
type presetsFile struct {
	Presets []WeightPreset `yaml:"presets"`
}

// DefaultPresets returns the built-in weight presets used when no presets
// file is configured.
func DefaultPresets() []WeightPreset {
	return []WeightPreset{
		{
			Name:        "balanced",
			Description: "Standard income-led weighting",
			Income:      0.35, Education: 0.25, Diversity: 0.15, Population: 0.15, Age: 0.10,
		},
		{
			Name:        "affluence",
			Description: "Chase high-income, high-education counties",
			Income:      0.50, Education: 0.30, Diversity: 0.05, Population: 0.10, Age: 0.05,
		},
		{
			Name:        "growth",
			Description: "Favor young, diverse, growing markets",
			Income:      0.20, Education: 0.15, Diversity: 0.25, Population: 0.15, Age: 0.25,
		},
	}
}

// LoadPresets reads weight presets from a YAML file. An empty path returns
// the built-in defaults.
func LoadPresets(path string) ([]WeightPreset, error) {
	if path == "" {
		return DefaultPresets(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var file presetsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse presets file %s: %w", path, err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("presets file %s defines no presets", path)
	}

	seen := make(map[string]struct{}, len(file.Presets))
	for _, p := range file.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("presets file %s: preset with empty name", path)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("presets file %s: duplicate preset %q", path, p.Name)
		}
		seen[p.Name] = struct{}{}
		if err := p.Weights().Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return file.Presets, nil
}

// FindPreset looks a preset up by name.
func FindPreset(presets []WeightPreset, name string) (WeightPreset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return WeightPreset{}, false
}
