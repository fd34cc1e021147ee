package rules

import (
	"testing"

	"github.com/nstehr/funnel/funnel-core/config"
	"github.com/nstehr/funnel/funnel-core/model"
)

// fakeBoard is a scripted Board: route lengths are looked up per origin and
// spawn requests are recorded with the outcome they got.
type fakeBoard struct {
	turn    int
	arena   model.Arena
	blocked map[model.Cell]bool
	pending map[model.Cell]bool
	routes  map[model.Cell]int // route length from origin; absent = no route
	pools   map[model.Resource]float64

	spawns       []Placement
	routeQueries []model.Cell
	sent         int
	sendErr      error
}

func newFakeBoard(turn int) *fakeBoard {
	return &fakeBoard{
		turn:    turn,
		arena:   model.Arena{Size: model.DefaultBoardSize},
		blocked: make(map[model.Cell]bool),
		pending: make(map[model.Cell]bool),
		routes:  make(map[model.Cell]int),
		pools:   make(map[model.Resource]float64),
	}
}

func (f *fakeBoard) TurnNumber() int                            { return f.turn }
func (f *fakeBoard) BoardSize() int                             { return f.arena.Size }
func (f *fakeBoard) IsBlocked(c model.Cell) bool                { return f.blocked[c] }
func (f *fakeBoard) InArena(c model.Cell) bool                  { return f.arena.Contains(c) }
func (f *fakeBoard) GetResource(r model.Resource) float64       { return f.pools[r] }
func (f *fakeBoard) GetEdgeLocations(e model.Edge) []model.Cell { return f.arena.EdgeCells(e) }

func (f *fakeBoard) NumberAffordable(u model.UnitType) int {
	return int(f.pools[u.Resource()] / u.Cost())
}

func (f *fakeBoard) FindPathToEdge(origin model.Cell, _ model.Edge, _ int) ([]model.Cell, bool) {
	f.routeQueries = append(f.routeQueries, origin)
	n, ok := f.routes[origin]
	if !ok {
		return nil, false
	}
	return make([]model.Cell, n), true
}

func (f *fakeBoard) Spawn(u model.UnitType, c model.Cell) model.Outcome {
	o := f.spawn(u, c)
	f.spawns = append(f.spawns, Placement{Unit: u, Cell: c, Outcome: o})
	return o
}

func (f *fakeBoard) spawn(u model.UnitType, c model.Cell) model.Outcome {
	if !f.arena.Contains(c) {
		return model.SkippedOutOfArena
	}
	if f.blocked[c] || f.pending[c] {
		return model.SkippedOccupied
	}
	if f.pools[u.Resource()] < u.Cost() {
		return model.SkippedUnaffordable
	}
	f.pools[u.Resource()] -= u.Cost()
	if u.IsStructure() {
		f.pending[c] = true
	}
	return model.Placed
}

func (f *fakeBoard) AttemptSpawnMultiple(u model.UnitType, cells []model.Cell) []model.Outcome {
	out := make([]model.Outcome, len(cells))
	for i, c := range cells {
		out[i] = f.Spawn(u, c)
	}
	return out
}

func (f *fakeBoard) SendMessages() error {
	f.sent++
	return f.sendErr
}

// requested returns the recorded spawn requests of unit type u.
func (f *fakeBoard) requested(u model.UnitType) []Placement {
	var out []Placement
	for _, p := range f.spawns {
		if p.Unit == u {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeBoard) mobileRequests() []Placement {
	var out []Placement
	for _, p := range f.spawns {
		if !p.Unit.IsStructure() {
			out = append(out, p)
		}
	}
	return out
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(config.Default())
	if err != nil {
		t.Fatalf("NewEngine(config.Default()) failed: %v", err)
	}
	return e
}

func row13(x int) model.Cell { return model.Cell{X: x, Y: 13} }
