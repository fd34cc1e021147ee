package rules

import (
	"log/slog"

	"github.com/nstehr/funnel/funnel-core/model"
)

// locateAnchor finds the cell behind the highest open column inside the gap.
// It keeps retrying on later turns until a column qualifies.
func (e *Engine) locateAnchor(b Board, funnel model.Cell) (model.Cell, bool) {
	if c, ok := e.anchor.Get(); ok {
		return c, true
	}
	row := e.cfg.DefensiveRow
	for x := b.BoardSize() - 1; x >= 0; x-- {
		if abs(x-funnel.X) > e.cfg.NarrowRadius {
			continue
		}
		if b.IsBlocked(model.Cell{X: x, Y: row}) {
			continue
		}
		a := model.Cell{X: x, Y: row - 1}
		e.anchor.Set(a)
		slog.Info("support anchor located", "cell", a, "funnel", funnel)
		return a, true
	}
	return model.Cell{}, false
}

// skipZone is our own deployment edge plus the row above it.
func (e *Engine) skipZone(b Board) map[model.Cell]bool {
	edge := b.GetEdgeLocations(e.cfg.SkipEdge)
	skip := make(map[model.Cell]bool, 2*len(edge))
	for _, c := range edge {
		skip[c] = true
		skip[c.Offset(0, 1)] = true
	}
	return skip
}

// buildSupport lays the support tails from the anchor until cores run out.
func (e *Engine) buildSupport(b Board, funnel model.Cell) []Placement {
	anchor, ok := e.locateAnchor(b, funnel)
	if !ok {
		slog.Debug("no support anchor yet", "funnel", funnel)
		return nil
	}

	skip := e.skipZone(b)
	var out []Placement
	for _, off := range e.cfg.TailOffsets {
		dx := 1
		if off < 0 {
			dx = -1
		}
		tail, exhausted := buildTail(b, anchor.Offset(off, 0), dx, skip)
		out = append(out, tail...)
		if exhausted {
			break
		}
	}
	return out
}

// buildTail walks diagonally toward our back row from origin, one cell per
// step, until it leaves the arena. It reports whether cores ran out.
func buildTail(b Board, origin model.Cell, dx int, skip map[model.Cell]bool) ([]Placement, bool) {
	var out []Placement
	for c := origin; b.InArena(c); c = c.Offset(dx, -1) {
		if skip[c] {
			continue
		}
		o := b.Spawn(model.SU, c)
		out = append(out, Placement{Unit: model.SU, Cell: c, Outcome: o})
		if o == model.SkippedUnaffordable {
			return out, true
		}
	}
	return out, false
}
