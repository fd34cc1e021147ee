// Package config holds the strategy parameters of the funnel engine and
// loads them from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/funnel/funnel-core/model"
)

// Strategy is the full parameter set of one funnel policy. Everything here is
// fixed for the lifetime of a match.
type Strategy struct {
	DefensiveRow int        `yaml:"defensive_row"`
	EdgeGuard    int        `yaml:"edge_guard"`    // columns excluded from the funnel scan on each side
	NarrowRadius int        `yaml:"narrow_radius"` // cells that stay open around the funnel
	WideRadius   int        `yaml:"wide_radius"`   // buffer zone that gets TE instead of TB
	FunnelTarget model.Edge `yaml:"funnel_target"`
	HitTolerance int        `yaml:"hit_tolerance"`

	SkipEdge    model.Edge `yaml:"skip_edge"`
	TailOffsets []int      `yaml:"tail_offsets"`

	RouteOrigin      model.Cell `yaml:"route_origin"`
	RouteTarget      model.Edge `yaml:"route_target"`
	StagingPrimary   model.Cell `yaml:"staging_primary"`
	StagingSecondary model.Cell `yaml:"staging_secondary"`
	PrimaryBurst     int        `yaml:"primary_burst"` // deployments sent to the primary cell before switching
	FoodCap          float64    `yaml:"food_cap"`

	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is the serializable form of a deployment rule.
type RuleSpec struct {
	Name      string         `yaml:"name"`
	Priority  int            `yaml:"priority"`
	Unit      model.UnitType `yaml:"unit"`
	Condition string         `yaml:"condition"`
}

// Default returns the stock funnel policy.
func Default() Strategy {
	return Strategy{
		DefensiveRow:     13,
		EdgeGuard:        3,
		NarrowRadius:     1,
		WideRadius:       5,
		FunnelTarget:     model.TopRight,
		HitTolerance:     1,
		SkipEdge:         model.BottomLeft,
		TailOffsets:      []int{-3, 1, 2, -4},
		RouteOrigin:      model.Cell{X: 3, Y: 10},
		RouteTarget:      model.TopRight,
		StagingPrimary:   model.Cell{X: 3, Y: 10},
		StagingSecondary: model.Cell{X: 24, Y: 10},
		PrimaryBurst:     5,
		FoodCap:          model.DefaultFoodCap,
		Rules:            DefaultRules(),
	}
}

// DefaultRules releases heavy units only while the scouting route is closed,
// and light units whenever resources are easy.
func DefaultRules() []RuleSpec {
	return []RuleSpec{
		{
			Name:      "release-heavy",
			Priority:  200,
			Unit:      model.ST,
			Condition: `Turn > 0 && EasyResources() && !RouteFound`,
		},
		{
			Name:      "release-light",
			Priority:  100,
			Unit:      model.SI,
			Condition: `Turn > 0 && EasyResources()`,
		},
	}
}

// Load reads a YAML strategy file on top of Default. Keys missing from the
// file keep their default values; lists replace the default list wholesale.
func Load(path string) (Strategy, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Strategy{}, fmt.Errorf("read strategy: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Strategy{}, fmt.Errorf("parse strategy %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Strategy{}, fmt.Errorf("strategy %s: %w", path, err)
	}
	return s, nil
}

// Validate clamps numeric parameters to workable ranges and rejects
// parameters that cannot be clamped. Limits that depend on the board size
// are applied later by FitBoard, once the host reports it.
func (s *Strategy) Validate() error {
	s.DefensiveRow = max(s.DefensiveRow, 1)
	s.EdgeGuard = max(s.EdgeGuard, 0)
	s.NarrowRadius = max(s.NarrowRadius, 0)
	s.WideRadius = max(s.WideRadius, s.NarrowRadius)
	s.HitTolerance = clampInt(s.HitTolerance, 0, 8)
	s.PrimaryBurst = clampInt(s.PrimaryBurst, 1, 100)
	if s.FoodCap <= 0 {
		s.FoodCap = model.DefaultFoodCap
	}

	var errs []error
	for _, e := range []model.Edge{s.FunnelTarget, s.SkipEdge, s.RouteTarget} {
		if !e.Valid() {
			errs = append(errs, fmt.Errorf("unknown edge %q", e))
		}
	}
	for i, r := range s.Rules {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("rule %d: missing name", i))
		}
		if r.Condition == "" {
			errs = append(errs, fmt.Errorf("rule %q: missing condition", r.Name))
		}
		if !r.Unit.Valid() || r.Unit.IsStructure() {
			errs = append(errs, fmt.Errorf("rule %q: %v is not a mobile unit", r.Name, r.Unit))
		}
	}
	return errors.Join(errs...)
}

// FitBoard returns a copy of s with the row, guard and radii limited to a
// board of the given size. Sizes below 2 use model.DefaultBoardSize.
func (s Strategy) FitBoard(size int) Strategy {
	if size < 2 {
		size = model.DefaultBoardSize
	}
	s.DefensiveRow = clampInt(s.DefensiveRow, 1, size-1)
	s.EdgeGuard = clampInt(s.EdgeGuard, 0, size/2)
	s.NarrowRadius = clampInt(s.NarrowRadius, 0, size)
	s.WideRadius = clampInt(s.WideRadius, s.NarrowRadius, size)
	return s
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
