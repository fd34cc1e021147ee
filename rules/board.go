package rules

import "github.com/nstehr/funnel/funnel-core/model"

// Board is the host's view of one turn. Queries answer from the pre-turn
// snapshot; spawn requests are buffered until SendMessages and are
// best-effort, reporting an Outcome instead of failing.
type Board interface {
	TurnNumber() int
	BoardSize() int

	IsBlocked(c model.Cell) bool
	InArena(c model.Cell) bool
	GetResource(r model.Resource) float64
	NumberAffordable(u model.UnitType) int
	GetEdgeLocations(e model.Edge) []model.Cell

	// FindPathToEdge returns a route from origin to any cell of target,
	// passing through at most hits blocked cells.
	FindPathToEdge(origin model.Cell, target model.Edge, hits int) ([]model.Cell, bool)

	Spawn(u model.UnitType, c model.Cell) model.Outcome
	AttemptSpawnMultiple(u model.UnitType, cells []model.Cell) []model.Outcome

	// SendMessages commits the turn's buffered requests to the host.
	SendMessages() error
}

// Placement records one request the engine issued and what the board did with it.
type Placement struct {
	Unit    model.UnitType
	Cell    model.Cell
	Outcome model.Outcome
}

func attemptAll(b Board, u model.UnitType, cells []model.Cell) []Placement {
	if len(cells) == 0 {
		return nil
	}
	outcomes := b.AttemptSpawnMultiple(u, cells)
	out := make([]Placement, len(cells))
	for i, c := range cells {
		out[i] = Placement{Unit: u, Cell: c, Outcome: model.SkippedUnaffordable}
		if i < len(outcomes) {
			out[i].Outcome = outcomes[i]
		}
	}
	return out
}
