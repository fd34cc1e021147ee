package agent

import (
	"fmt"
	"sort"

	"github.com/nstehr/funnel/funnel-core/model"
)

// EventKind identifies a notable change between two consecutive turns.
type EventKind string

const (
	EventStructureLost EventKind = "structure_lost"
	EventWallBreached  EventKind = "wall_breached"
	EventFunnelBlocked EventKind = "funnel_blocked"
	EventFoodCapped    EventKind = "food_capped"
)

// Event is a significant change detected by diffing consecutive turn
// snapshots. Events are diagnostics only; they never change decisions.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string
}

// stateSnapshot captures the diffable fields of one turn.
type stateSnapshot struct {
	turn    int
	mine    map[model.Cell]string // cell → type for our own structures
	blocked map[model.Cell]bool
	food    float64
}

func takeSnapshot(gs model.TurnState) stateSnapshot {
	snap := stateSnapshot{
		turn:    gs.Turn,
		mine:    make(map[model.Cell]string),
		blocked: make(map[model.Cell]bool, len(gs.Structures)),
		food:    gs.Food,
	}
	for _, s := range gs.Structures {
		snap.blocked[s.Cell()] = true
		if s.Mine {
			snap.mine[s.Cell()] = s.Type
		}
	}
	return snap
}

// eventContext carries the engine facts event detection needs.
type eventContext struct {
	defensiveRow int
	foodCap      float64
	funnel       model.Cell
	haveFunnel   bool
}

// detectEvents compares the current turn against the previous snapshot.
// Returns nil if prev is nil (first turn seen on this connection).
func detectEvents(gs model.TurnState, prev *stateSnapshot, ctx eventContext) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(gs)

	var lost, breached []model.Cell
	for c := range prev.mine {
		if _, ok := cur.mine[c]; ok {
			continue
		}
		lost = append(lost, c)
		if c.Y == ctx.defensiveRow {
			breached = append(breached, c)
		}
	}
	sortCells(lost)
	sortCells(breached)

	if len(lost) > 0 {
		events = append(events, Event{
			Kind:   EventStructureLost,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("%d structures lost: %v", len(lost), lost),
		})
	}
	if len(breached) > 0 {
		events = append(events, Event{
			Kind:   EventWallBreached,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("wall cells lost on row %d: %v", ctx.defensiveRow, breached),
		})
	}

	if ctx.haveFunnel && cur.blocked[ctx.funnel] && !prev.blocked[ctx.funnel] {
		events = append(events, Event{
			Kind:   EventFunnelBlocked,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("funnel %v is now occupied", ctx.funnel),
		})
	}

	if cur.food >= ctx.foodCap && prev.food < ctx.foodCap {
		events = append(events, Event{
			Kind:   EventFoodCapped,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("food reached cap %.0f", ctx.foodCap),
		})
	}

	return events
}

func sortCells(cells []model.Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}
