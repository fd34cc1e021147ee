package ipc

import "encoding/json"

// These constants must stay in sync with the host's message type names.
const (
	TypeHello    = "hello"
	TypeAck      = "ack"
	TypeConfig   = "config"
	TypeTurn     = "turn"
	TypeCommands = "commands"
)

type HelloMessage struct {
	Player string `json:"player"`
}

// ConfigMessage carries the host's match settings. The payload is opaque
// to the sidecar; receiving it starts a new match.
type ConfigMessage struct {
	Settings json.RawMessage `json:"settings,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}
