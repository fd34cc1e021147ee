package rules

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/nstehr/funnel/funnel-core/config"
)

// CompileStrategy turns the strategy's rule specs into rules. Conditions are
// compiled later by NewPolicy.
func CompileStrategy(s config.Strategy) []*Rule {
	out := make([]*Rule, 0, len(s.Rules))
	for _, spec := range s.Rules {
		out = append(out, &Rule{
			Name:         spec.Name,
			Priority:     spec.Priority,
			Unit:         spec.Unit,
			ConditionSrc: spec.Condition,
		})
	}
	return out
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		if r.Unit.IsStructure() || !r.Unit.Valid() {
			return nil, fmt.Errorf("rule %q: %v is not a mobile unit", r.Name, r.Unit)
		}
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(DeployEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
