package model

import (
	"fmt"
	"strings"
)

// Resource names a per-player resource pool.
type Resource string

const (
	Cores Resource = "cores" // pays for structures
	Food  Resource = "food"  // pays for mobile units
)

// DefaultFoodCap is the ceiling of the food pool.
const DefaultFoodCap = 10

// UnitType is the closed set of things the engine can place or deploy.
type UnitType int

const (
	TB UnitType = iota + 1 // cheap outer wall
	TE                     // durable buffer wall
	SU                     // support tail
	ST                     // heavy self-destruct unit
	SI                     // fast light unit
)

// Category separates stationary structures from mobile units.
type Category int

const (
	CategoryStructure Category = iota
	CategoryMobile
)

type unitInfo struct {
	name     string
	category Category
	resource Resource
	cost     float64
}

var unitTable = [...]unitInfo{
	TB: {name: "TB", category: CategoryStructure, resource: Cores, cost: 1},
	TE: {name: "TE", category: CategoryStructure, resource: Cores, cost: 3},
	SU: {name: "SU", category: CategoryStructure, resource: Cores, cost: 4},
	ST: {name: "ST", category: CategoryMobile, resource: Food, cost: 3},
	SI: {name: "SI", category: CategoryMobile, resource: Food, cost: 1},
}

// AllUnitTypes lists every unit type in declaration order.
func AllUnitTypes() []UnitType {
	return []UnitType{TB, TE, SU, ST, SI}
}

func (u UnitType) Valid() bool { return u >= TB && u <= SI }

func (u UnitType) String() string {
	if !u.Valid() {
		return fmt.Sprintf("UnitType(%d)", int(u))
	}
	return unitTable[u].name
}

// info returns the table row for u; invalid types get the zero row, which
// has no name and costs nothing.
func (u UnitType) info() unitInfo {
	if !u.Valid() {
		return unitInfo{}
	}
	return unitTable[u]
}

func (u UnitType) Category() Category { return u.info().category }
func (u UnitType) Resource() Resource { return u.info().resource }
func (u UnitType) Cost() float64      { return u.info().cost }

func (u UnitType) IsStructure() bool { return u.Valid() && unitTable[u].category == CategoryStructure }

// ParseUnitType maps a wire name (case-insensitive) to its UnitType.
func ParseUnitType(s string) (UnitType, error) {
	for _, u := range AllUnitTypes() {
		if strings.EqualFold(unitTable[u].name, s) {
			return u, nil
		}
	}
	return 0, fmt.Errorf("unknown unit type %q", s)
}

func (u UnitType) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("invalid unit type %d", int(u))
	}
	return []byte(u.String()), nil
}

func (u *UnitType) UnmarshalText(b []byte) error {
	parsed, err := ParseUnitType(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Outcome is the per-cell result of a spawn request. The host drops rejected
// requests silently; outcomes let callers see what was dropped.
type Outcome int

const (
	Placed Outcome = iota
	SkippedOccupied
	SkippedUnaffordable
	SkippedOutOfArena
)

func (o Outcome) String() string {
	switch o {
	case Placed:
		return "placed"
	case SkippedOccupied:
		return "skipped-occupied"
	case SkippedUnaffordable:
		return "skipped-unaffordable"
	case SkippedOutOfArena:
		return "skipped-out-of-arena"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}
