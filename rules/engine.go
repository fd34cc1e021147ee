package rules

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/funnel/funnel-core/config"
	"github.com/nstehr/funnel/funnel-core/model"
)

// Engine runs the funnel policy for one side of one match. It is driven by a
// single goroutine; nothing in it is safe for concurrent use.
type Engine struct {
	base   config.Strategy
	cfg    config.Strategy // base fitted to the current board size
	sized  int
	policy *Policy

	funnel     latch
	anchor     latch
	routeFound bool
}

// NewEngine validates the strategy and compiles its deployment rules.
func NewEngine(cfg config.Strategy) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid strategy: %w", err)
	}
	policy, err := NewPolicy(CompileStrategy(cfg), cfg.StagingPrimary, cfg.StagingSecondary, cfg.PrimaryBurst)
	if err != nil {
		return nil, err
	}
	return &Engine{base: cfg, cfg: cfg, policy: policy}, nil
}

// Configure starts a new match. The settings payload is opaque; only the
// match memory is reset.
func (e *Engine) Configure(settings []byte) {
	e.funnel.reset()
	e.anchor.reset()
	e.routeFound = false
	slog.Info("engine configured", "settingsBytes", len(settings))
}

// Step decides the turn and flushes the buffered commands to the host.
func (e *Engine) Step(b Board) error {
	placements := e.decide(b)
	logTurnSummary(b.TurnNumber(), e.routeFound, placements)
	if err := b.SendMessages(); err != nil {
		return fmt.Errorf("send turn %d: %w", b.TurnNumber(), err)
	}
	return nil
}

func (e *Engine) decide(b Board) []Placement {
	e.fitBoard(b.BoardSize())
	turn := b.TurnNumber()
	_, e.routeFound = b.FindPathToEdge(e.cfg.RouteOrigin, e.cfg.RouteTarget, e.cfg.HitTolerance)

	if turn == 0 {
		return e.buildOpening(b)
	}

	funnel := e.locateFunnel(b)
	out := e.buildWall(b, funnel)
	// The anchor latches, so support waits for a latched funnel; a fallback
	// column would pin the anchor away from the real gap.
	if _, ok := e.funnel.Get(); ok {
		out = append(out, e.buildSupport(b, funnel)...)
	} else {
		slog.Debug("funnel not settled, deferring support", "turn", turn, "fallback", funnel)
	}
	out = append(out, e.policy.Decide(b, e.deployEnv(b))...)
	return out
}

// fitBoard limits the strategy to the host's board. The host reports its
// size every turn; it only changes between matches.
func (e *Engine) fitBoard(size int) {
	if size == e.sized {
		return
	}
	e.cfg = e.base.FitBoard(size)
	e.sized = size
	if e.cfg.DefensiveRow != e.base.DefensiveRow {
		slog.Warn("defensive row clamped to board", "size", size, "row", e.cfg.DefensiveRow)
	}
}

func (e *Engine) deployEnv(b Board) DeployEnv {
	return DeployEnv{
		Turn:       b.TurnNumber(),
		Food:       b.GetResource(model.Food),
		FoodCap:    e.cfg.FoodCap,
		Cores:      b.GetResource(model.Cores),
		RouteFound: e.routeFound,
	}
}

// Funnel returns the latched funnel point, if any.
func (e *Engine) Funnel() (model.Cell, bool) { return e.funnel.Get() }

// Anchor returns the latched support anchor, if any.
func (e *Engine) Anchor() (model.Cell, bool) { return e.anchor.Get() }

// RouteFound reports whether the scouting route was open on the last turn.
func (e *Engine) RouteFound() bool { return e.routeFound }

// Config returns the strategy as fitted to the last board seen.
func (e *Engine) Config() config.Strategy { return e.cfg }

// logTurnSummary condenses a turn's placements into per-unit counts.
func logTurnSummary(turn int, routeFound bool, placements []Placement) {
	requested := make(map[string]int)
	placed := make(map[string]int)
	for _, p := range placements {
		requested[p.Unit.String()]++
		if p.Outcome == model.Placed {
			placed[p.Unit.String()]++
		}
		slog.Debug("placement", "unit", p.Unit, "cell", p.Cell, "outcome", p.Outcome)
	}
	slog.Info("turn decided",
		"turn", turn,
		"routeFound", routeFound,
		"requested", requested,
		"placed", placed,
	)
}
