package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nstehr/funnel/funnel-core/model"
)

func writeStrategy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write strategy: %v", err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if s.NarrowRadius != 1 || s.WideRadius != 5 {
		t.Errorf("radii = %d/%d, want 1/5", s.NarrowRadius, s.WideRadius)
	}
	want := []int{-3, 1, 2, -4}
	if len(s.TailOffsets) != len(want) {
		t.Fatalf("TailOffsets = %v, want %v", s.TailOffsets, want)
	}
	for i := range want {
		if s.TailOffsets[i] != want[i] {
			t.Errorf("TailOffsets[%d] = %d, want %d", i, s.TailOffsets[i], want[i])
		}
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeStrategy(t, `
narrow_radius: 2
wide_radius: 6
funnel_target: top_left
tail_offsets: [-2, 2]
staging_secondary: {x: 20, y: 6}
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.NarrowRadius != 2 || s.WideRadius != 6 {
		t.Errorf("radii = %d/%d, want 2/6", s.NarrowRadius, s.WideRadius)
	}
	if s.FunnelTarget != model.TopLeft {
		t.Errorf("FunnelTarget = %q, want top_left", s.FunnelTarget)
	}
	if len(s.TailOffsets) != 2 {
		t.Errorf("TailOffsets = %v, want [-2 2]", s.TailOffsets)
	}
	if s.StagingSecondary != (model.Cell{X: 20, Y: 6}) {
		t.Errorf("StagingSecondary = %v, want (20,6)", s.StagingSecondary)
	}
	// Untouched keys keep their defaults.
	if s.DefensiveRow != 13 || s.PrimaryBurst != 5 {
		t.Errorf("defaults lost: row=%d burst=%d", s.DefensiveRow, s.PrimaryBurst)
	}
	if len(s.Rules) != 2 {
		t.Errorf("expected default rules to survive, got %d", len(s.Rules))
	}
}

func TestLoadRules(t *testing.T) {
	path := writeStrategy(t, `
rules:
  - name: light-only
    priority: 10
    unit: si
    condition: Turn > 2
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(s.Rules))
	}
	r := s.Rules[0]
	if r.Name != "light-only" || r.Unit != model.SI || r.Condition != "Turn > 2" {
		t.Errorf("rule = %+v", r)
	}
}

func TestLoadRejectsStructureRule(t *testing.T) {
	path := writeStrategy(t, `
rules:
  - name: walls
    unit: TB
    condition: "true"
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "not a mobile unit") {
		t.Errorf("Load error = %v, want mobile unit rejection", err)
	}
}

func TestLoadRejectsUnknownEdge(t *testing.T) {
	path := writeStrategy(t, "skip_edge: north\n")
	if _, err := Load(path); err == nil {
		t.Error("Load should reject an unknown edge")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestValidateClamps(t *testing.T) {
	s := Default()
	s.NarrowRadius = -4
	s.WideRadius = -1
	s.PrimaryBurst = 0
	s.FoodCap = 0
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if s.NarrowRadius != 0 {
		t.Errorf("NarrowRadius = %d, want 0", s.NarrowRadius)
	}
	if s.WideRadius < s.NarrowRadius {
		t.Errorf("WideRadius %d < NarrowRadius %d", s.WideRadius, s.NarrowRadius)
	}
	if s.PrimaryBurst != 1 {
		t.Errorf("PrimaryBurst = %d, want 1", s.PrimaryBurst)
	}
	if s.FoodCap != model.DefaultFoodCap {
		t.Errorf("FoodCap = %v, want %v", s.FoodCap, model.DefaultFoodCap)
	}
}

func TestExampleStrategyMatchesDefault(t *testing.T) {
	s, err := Load(filepath.Join("..", "strategy.example.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default()
	if s.DefensiveRow != d.DefensiveRow || s.FunnelTarget != d.FunnelTarget || s.StagingSecondary != d.StagingSecondary {
		t.Errorf("example strategy drifted from defaults: %+v", s)
	}
	if len(s.Rules) != len(d.Rules) {
		t.Fatalf("got %d rules, want %d", len(s.Rules), len(d.Rules))
	}
	for i := range d.Rules {
		if s.Rules[i] != d.Rules[i] {
			t.Errorf("rule %d = %+v, want %+v", i, s.Rules[i], d.Rules[i])
		}
	}
}

func TestValidateLeavesBoardLimitsToFitBoard(t *testing.T) {
	s := Default()
	s.DefensiveRow = 30
	s.WideRadius = 40
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if s.DefensiveRow != 30 || s.WideRadius != 40 {
		t.Fatalf("Validate clamped board limits: row=%d wide=%d", s.DefensiveRow, s.WideRadius)
	}

	tests := []struct {
		size     int
		wantRow  int
		wantWide int
	}{
		{40, 30, 40},
		{28, 27, 28},
		{20, 19, 20},
		{0, 27, 28}, // unknown size falls back to the default board
	}
	for _, tc := range tests {
		got := s.FitBoard(tc.size)
		if got.DefensiveRow != tc.wantRow || got.WideRadius != tc.wantWide {
			t.Errorf("FitBoard(%d): row=%d wide=%d, want %d/%d",
				tc.size, got.DefensiveRow, got.WideRadius, tc.wantRow, tc.wantWide)
		}
	}
	if s.DefensiveRow != 30 {
		t.Error("FitBoard modified its receiver")
	}
}
