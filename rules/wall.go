package rules

import "github.com/nstehr/funnel/funnel-core/model"

type zone int

const (
	zoneGap    zone = iota // left open so enemy units take the funnel
	zoneBuffer             // durable TE walls flanking the gap
	zoneOuter              // cheap TB walls everywhere else
)

// classify places column x in exactly one zone by its distance from the funnel.
// Both radii are inclusive upper bounds of their zone.
func (e *Engine) classify(x, funnelX int) zone {
	d := abs(x - funnelX)
	switch {
	case d <= e.cfg.NarrowRadius:
		return zoneGap
	case d <= e.cfg.WideRadius:
		return zoneBuffer
	default:
		return zoneOuter
	}
}

// buildWall requests TE in the buffer zone and TB in the outer zone every
// turn. Occupied or unaffordable cells are dropped by the board.
func (e *Engine) buildWall(b Board, funnel model.Cell) []Placement {
	var buffer, outer []model.Cell
	for _, c := range e.defensiveRow(b) {
		switch e.classify(c.X, funnel.X) {
		case zoneBuffer:
			buffer = append(buffer, c)
		case zoneOuter:
			outer = append(outer, c)
		}
	}
	out := attemptAll(b, model.TE, buffer)
	return append(out, attemptAll(b, model.TB, outer)...)
}

// buildOpening seeds TB on every even column of the defensive row.
func (e *Engine) buildOpening(b Board) []Placement {
	var cells []model.Cell
	for _, c := range e.defensiveRow(b) {
		if c.X%2 == 0 {
			cells = append(cells, c)
		}
	}
	return attemptAll(b, model.TB, cells)
}

func (e *Engine) defensiveRow(b Board) []model.Cell {
	size := b.BoardSize()
	out := make([]model.Cell, 0, size)
	for x := 0; x < size; x++ {
		c := model.Cell{X: x, Y: e.cfg.DefensiveRow}
		if b.InArena(c) {
			out = append(out, c)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
