package rules

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/funnel/funnel-core/model"
)

// Policy releases mobile units according to compiled rules and splits each
// burst across two staging cells.
type Policy struct {
	rules     []*Rule
	primary   model.Cell
	secondary model.Cell
	burst     int
}

// NewPolicy compiles all rule conditions into expr bytecode and sorts by priority.
func NewPolicy(rules []*Rule, primary, secondary model.Cell, burst int) (*Policy, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	if burst < 1 {
		return nil, fmt.Errorf("primary burst must be positive, got %d", burst)
	}
	return &Policy{rules: compiled, primary: primary, secondary: secondary, burst: burst}, nil
}

// Decide runs every rule against env and releases units for each that holds.
func (p *Policy) Decide(b Board, env DeployEnv) []Placement {
	var out []Placement
	for _, r := range p.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		match, ok := result.(bool)
		if !ok || !match {
			continue
		}
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "unit", r.Unit)
		out = append(out, p.release(b, r.Unit)...)
	}
	return out
}

func (p *Policy) release(b Board, u model.UnitType) []Placement {
	n := b.NumberAffordable(u)
	targets := splitTargets(n, p.burst, p.primary, p.secondary)
	out := make([]Placement, 0, len(targets))
	for _, c := range targets {
		out = append(out, Placement{Unit: u, Cell: c, Outcome: b.Spawn(u, c)})
	}
	return out
}

// splitTargets sends the first burst deployments to primary and the rest to
// secondary so one volley covers both lanes.
func splitTargets(n, burst int, primary, secondary model.Cell) []model.Cell {
	if n <= 0 {
		return nil
	}
	out := make([]model.Cell, n)
	for i := range out {
		if i < burst {
			out[i] = primary
		} else {
			out[i] = secondary
		}
	}
	return out
}
