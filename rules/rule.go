package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/funnel/funnel-core/model"
)

// Rule releases every affordable unit of one mobile type when its condition
// holds. Rules are evaluated in descending priority, so a higher-priority
// rule spends food before a lower one sees it.
type Rule struct {
	Name         string         // human-readable identifier
	Priority     int            // higher = evaluated first
	Unit         model.UnitType // mobile unit to release
	ConditionSrc string         // expr source (preserved for serialization)
	program      *vm.Program    // compiled bytecode
}
