package ipc

import (
	"log/slog"

	"github.com/google/uuid"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection represents a single game host talking to the sidecar.
// Each match side gets its own connection, identified after the hello handshake.
type Connection struct {
	transport Transport
	handlers  map[string]Handler
	Player    string
	Session   string
	closed    bool
}

func NewConnection(t Transport, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		transport: t,
		handlers:  handlers,
		Session:   uuid.NewString(),
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.transport.Write(env)
}

// Close ends the session. A handler may call it to stop ReadLoop after the
// current message.
func (c *Connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.transport.Close()
}

// ReadLoop blocks until the connection closes or errors. It owns the transport
// lifetime so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.Close()

	for {
		env, err := c.transport.Read()
		if err != nil {
			slog.Info("connection read ended", "session", c.Session, "player", c.Player, "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type, "session", c.Session)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "session", c.Session, "error", err)
		}
		if c.closed {
			slog.Info("connection closed by handler", "type", env.Type, "session", c.Session)
			return
		}
		if err != nil {
			continue
		}

		if resp != nil {
			if err := c.transport.Write(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "session", c.Session, "error", err)
				return
			}
			slog.Debug("sent response", "type", resp.Type, "player", c.Player)
		}
	}
}
