package rules

import (
	"errors"
	"testing"

	"github.com/nstehr/funnel/funnel-core/config"
	"github.com/nstehr/funnel/funnel-core/model"
)

func TestDefaultRulesCompile(t *testing.T) {
	e := newTestEngine(t)
	if len(e.policy.rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(e.policy.rules))
	}
	// Verify priority ordering (descending).
	for i := 1; i < len(e.policy.rules); i++ {
		if e.policy.rules[i].Priority > e.policy.rules[i-1].Priority {
			t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
				e.policy.rules[i].Name, e.policy.rules[i].Priority,
				e.policy.rules[i-1].Name, e.policy.rules[i-1].Priority)
		}
	}
}

func TestNewEngineRejectsBadCondition(t *testing.T) {
	s := config.Default()
	s.Rules = []config.RuleSpec{{Name: "broken", Unit: model.SI, Condition: "Turn >>> 2"}}
	if _, err := NewEngine(s); err == nil {
		t.Error("NewEngine accepted a rule that does not compile")
	}
}

func TestOpeningTurnOnlySeedsWall(t *testing.T) {
	e := newTestEngine(t)
	b := newFakeBoard(0)
	b.pools[model.Cores] = 100
	b.pools[model.Food] = 10
	b.routes[row13(9)] = 3

	if err := e.Step(b); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if len(b.spawns) != 14 {
		t.Errorf("turn 0 issued %d requests, want 14", len(b.spawns))
	}
	for _, p := range b.spawns {
		if p.Unit != model.TB || p.Cell.Y != 13 || p.Cell.X%2 != 0 {
			t.Errorf("unexpected turn 0 request %v at %v", p.Unit, p.Cell)
		}
	}
	if _, ok := e.Funnel(); ok {
		t.Error("funnel locator ran on turn 0")
	}
	if _, ok := e.Anchor(); ok {
		t.Error("support builder ran on turn 0")
	}
	// Only the scouting route is queried.
	if len(b.routeQueries) != 1 || b.routeQueries[0] != routeAt {
		t.Errorf("route queries = %v, want only %v", b.routeQueries, routeAt)
	}
	if b.sent != 1 {
		t.Errorf("SendMessages called %d times, want 1", b.sent)
	}
}

func TestStepBuildsInOrder(t *testing.T) {
	e := newTestEngine(t)
	b := newFakeBoard(12)
	b.routes[row13(13)] = 14
	b.routes[routeAt] = 20
	b.pools[model.Cores] = 200
	b.pools[model.Food] = 4

	if err := e.Step(b); err != nil {
		t.Fatalf("Step: %v", err)
	}

	// Walls, then support, then units.
	phase := func(u model.UnitType) int {
		switch u {
		case model.TE, model.TB:
			return 0
		case model.SU:
			return 1
		}
		return 2
	}
	last := 0
	for _, p := range b.spawns {
		if ph := phase(p.Unit); ph < last {
			t.Fatalf("%v at %v requested after a later phase", p.Unit, p.Cell)
		} else {
			last = ph
		}
	}
	if len(b.requested(model.SU)) == 0 {
		t.Error("no support requested")
	}
	if got := len(b.requested(model.SI)); got != 4 {
		t.Errorf("deployed %d SI, want 4", got)
	}
	if got := len(b.requested(model.ST)); got != 0 {
		t.Errorf("deployed %d ST with the route open, want 0", got)
	}
}

func TestStepPropagatesSendError(t *testing.T) {
	e := newTestEngine(t)
	b := newFakeBoard(1)
	b.sendErr = errors.New("host gone")

	err := e.Step(b)
	if err == nil || !errors.Is(err, b.sendErr) {
		t.Errorf("Step error = %v, want wrapped send error", err)
	}
}

func TestConfigureResetsMemory(t *testing.T) {
	e := newTestEngine(t)
	b := newFakeBoard(1)
	b.routes[row13(9)] = 5
	if err := e.Step(b); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if _, ok := e.Funnel(); !ok {
		t.Fatal("funnel should be latched after a turn with a route")
	}
	if _, ok := e.Anchor(); !ok {
		t.Fatal("anchor should be latched after a turn with an open gap")
	}

	e.Configure([]byte(`{"seed":1}`))

	if _, ok := e.Funnel(); ok {
		t.Error("Configure did not reset the funnel")
	}
	if _, ok := e.Anchor(); ok {
		t.Error("Configure did not reset the anchor")
	}

	b = newFakeBoard(1)
	b.routes[row13(20)] = 5
	e.Step(b)
	if c, _ := e.Funnel(); c != row13(20) {
		t.Errorf("funnel after reconfigure = %v, want %v", c, row13(20))
	}
}

func TestStepFitsStrategyToBoardSize(t *testing.T) {
	s := config.Default()
	s.DefensiveRow = 30
	e, err := NewEngine(s)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	large := newFakeBoard(0)
	large.arena = model.Arena{Size: 40}
	large.pools[model.Cores] = 100
	if err := e.Step(large); err != nil {
		t.Fatalf("Step(size 40): %v", err)
	}
	if got := e.Config().DefensiveRow; got != 30 {
		t.Errorf("row on a 40 board = %d, want 30", got)
	}
	seeds := large.requested(model.TB)
	if len(seeds) == 0 {
		t.Fatal("no opening wall on the 40 board")
	}
	for _, p := range seeds {
		if p.Cell.Y != 30 {
			t.Errorf("opening wall at %v, want row 30", p.Cell)
		}
	}

	small := newFakeBoard(0)
	small.pools[model.Cores] = 100
	if err := e.Step(small); err != nil {
		t.Fatalf("Step(size 28): %v", err)
	}
	if got := e.Config().DefensiveRow; got != 27 {
		t.Errorf("row on a 28 board = %d, want 27", got)
	}
}
