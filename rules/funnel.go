package rules

import (
	"log/slog"

	"github.com/nstehr/funnel/funnel-core/model"
)

// locateFunnel picks the defensive-row column whose route to the funnel
// target is shortest. The first route-backed pick is latched for the rest of
// the match; until then the fallback column is returned without latching.
func (e *Engine) locateFunnel(b Board) model.Cell {
	if c, ok := e.funnel.Get(); ok {
		return c
	}

	size := b.BoardSize()
	row := e.cfg.DefensiveRow
	best := e.fallbackFunnel(size)
	bestLen := -1

	for x := e.cfg.EdgeGuard; x < size-e.cfg.EdgeGuard; x++ {
		c := model.Cell{X: x, Y: row}
		if b.IsBlocked(c) {
			continue
		}
		path, ok := b.FindPathToEdge(c, e.cfg.FunnelTarget, e.cfg.HitTolerance)
		if !ok {
			continue
		}
		// Strict improvement only: the lowest x wins ties.
		if bestLen < 0 || len(path) < bestLen {
			best, bestLen = c, len(path)
		}
	}

	if bestLen < 0 {
		slog.Debug("no funnel candidate has a route, using fallback", "cell", best)
		return best
	}
	e.funnel.Set(best)
	slog.Info("funnel point located", "cell", best, "pathLen", bestLen, "target", e.cfg.FunnelTarget)
	return best
}

func (e *Engine) fallbackFunnel(size int) model.Cell {
	return model.Cell{X: size - e.cfg.EdgeGuard, Y: e.cfg.DefensiveRow}
}
