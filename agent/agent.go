package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nstehr/funnel/funnel-core/board"
	"github.com/nstehr/funnel/funnel-core/ipc"
	"github.com/nstehr/funnel/funnel-core/model"
	"github.com/nstehr/funnel/funnel-core/rules"
)

// Agent owns the decision-making for a single host connection.
type Agent struct {
	Conn   *ipc.Connection
	Player string
	Engine *rules.Engine

	prev *stateSnapshot
}

func New(conn *ipc.Connection, engine *rules.Engine) *Agent {
	return &Agent{Conn: conn, Engine: engine}
}

// Register wires the agent's handlers into its connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	a.Conn.RegisterHandler(ipc.TypeConfig, a.HandleConfig)
	a.Conn.RegisterHandler(ipc.TypeTurn, a.HandleTurn)
}

// HandleHello completes the handshake so the host knows the sidecar is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.Player = hello.Player
	a.Conn.Player = hello.Player
	slog.Info("player identified", "player", a.Player, "session", a.Conn.Session)

	return ack()
}

// HandleConfig starts a new match: engine memory and turn history are cleared.
func (a *Agent) HandleConfig(env ipc.Envelope) (*ipc.Envelope, error) {
	var cfg ipc.ConfigMessage
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	a.Engine.Configure(cfg.Settings)
	a.prev = nil
	return ack()
}

// HandleTurn runs one decision cycle. The commands envelope is the reply,
// sent by the engine's flush, so no ack follows it.
func (a *Agent) HandleTurn(env ipc.Envelope) (*ipc.Envelope, error) {
	var gs model.TurnState
	if err := json.Unmarshal(env.Data, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal TurnState: %w", err)
	}

	slog.Info("turn received",
		"player", a.Player,
		"turn", gs.Turn,
		"cores", gs.Cores,
		"food", gs.Food,
		"structures", len(gs.Structures),
	)

	cfg := a.Engine.Config()
	funnel, haveFunnel := a.Engine.Funnel()
	for _, ev := range detectEvents(gs, a.prev, eventContext{
		defensiveRow: cfg.DefensiveRow,
		foodCap:      cfg.FoodCap,
		funnel:       funnel,
		haveFunnel:   haveFunnel,
	}) {
		slog.Info("turn event", "kind", ev.Kind, "turn", ev.Turn, "detail", ev.Detail)
	}
	snap := takeSnapshot(gs)
	a.prev = &snap

	if err := a.Engine.Step(board.New(gs, a.Conn)); err != nil {
		// The host waits for this turn's commands; without them the match
		// cannot continue, so end the session.
		a.Conn.Close()
		return nil, fmt.Errorf("step turn %d: %w", gs.Turn, err)
	}
	return nil, nil
}

func ack() (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
