// Package board answers the engine's board queries from the host's pre-turn
// snapshot and buffers the turn's spawn requests until they are flushed.
package board

import (
	"fmt"

	"github.com/nstehr/funnel/funnel-core/ipc"
	"github.com/nstehr/funnel/funnel-core/model"
)

// Sender delivers a message to the host. *ipc.Connection satisfies it.
type Sender interface {
	Send(msgType string, data any) error
}

// Snapshot is one turn's board. Occupancy queries reflect the pre-turn state;
// resource pools and spawn checks also account for requests made this turn.
type Snapshot struct {
	turn    int
	arena   model.Arena
	blocked map[model.Cell]bool // structures present before the turn
	pending map[model.Cell]bool // structures requested this turn
	pools   map[model.Resource]float64
	batch   ipc.CommandBatch
	sender  Sender
}

func New(gs model.TurnState, sender Sender) *Snapshot {
	s := &Snapshot{
		turn:    gs.Turn,
		arena:   model.Arena{Size: gs.Size()},
		blocked: make(map[model.Cell]bool, len(gs.Structures)),
		pending: make(map[model.Cell]bool),
		pools: map[model.Resource]float64{
			model.Cores: gs.Cores,
			model.Food:  gs.Food,
		},
		batch:  ipc.CommandBatch{Turn: gs.Turn},
		sender: sender,
	}
	for _, st := range gs.Structures {
		s.blocked[st.Cell()] = true
	}
	return s
}

func (s *Snapshot) TurnNumber() int { return s.turn }
func (s *Snapshot) BoardSize() int  { return s.arena.Size }

func (s *Snapshot) IsBlocked(c model.Cell) bool { return s.blocked[c] }
func (s *Snapshot) InArena(c model.Cell) bool   { return s.arena.Contains(c) }

func (s *Snapshot) GetResource(r model.Resource) float64 { return s.pools[r] }

func (s *Snapshot) NumberAffordable(u model.UnitType) int {
	if !u.Valid() {
		return 0
	}
	return int(s.pools[u.Resource()] / u.Cost())
}

func (s *Snapshot) GetEdgeLocations(e model.Edge) []model.Cell {
	return s.arena.EdgeCells(e)
}

// Spawn buffers a request if the host would accept it. Structures claim
// their cell; mobile units may stack on the same cell.
func (s *Snapshot) Spawn(u model.UnitType, c model.Cell) model.Outcome {
	if !s.arena.Contains(c) {
		return model.SkippedOutOfArena
	}
	if s.blocked[c] || s.pending[c] {
		return model.SkippedOccupied
	}
	// Unknown types have no pool to pay from.
	if !u.Valid() || s.pools[u.Resource()] < u.Cost() {
		return model.SkippedUnaffordable
	}
	s.pools[u.Resource()] -= u.Cost()

	cmd := ipc.SpawnCommand{Unit: u.String(), X: c.X, Y: c.Y}
	if u.IsStructure() {
		s.pending[c] = true
		s.batch.Structures = append(s.batch.Structures, cmd)
	} else {
		s.batch.Units = append(s.batch.Units, cmd)
	}
	return model.Placed
}

func (s *Snapshot) AttemptSpawnMultiple(u model.UnitType, cells []model.Cell) []model.Outcome {
	out := make([]model.Outcome, len(cells))
	for i, c := range cells {
		out[i] = s.Spawn(u, c)
	}
	return out
}

// Pending returns the commands buffered so far.
func (s *Snapshot) Pending() ipc.CommandBatch { return s.batch }

// SendMessages sends the buffered batch as one commands envelope and clears it.
// An empty batch is still sent so the host can close the turn.
func (s *Snapshot) SendMessages() error {
	if s.sender == nil {
		return fmt.Errorf("turn %d: no sender attached", s.turn)
	}
	if err := s.sender.Send(ipc.TypeCommands, s.batch); err != nil {
		return fmt.Errorf("send commands: %w", err)
	}
	s.batch = ipc.CommandBatch{Turn: s.turn}
	return nil
}
