package ipc

import "net"

// Transport moves whole envelopes between the host and the sidecar.
// A Transport is owned by a single Connection and is not safe for
// concurrent writers.
type Transport interface {
	Read() (Envelope, error)
	Write(env Envelope) error
	Close() error
}

// streamTransport frames envelopes on a byte stream (unix socket, TCP, pipe).
type streamTransport struct {
	conn net.Conn
}

// NewStreamTransport wraps a stream connection with length-prefixed framing.
func NewStreamTransport(conn net.Conn) Transport {
	return &streamTransport{conn: conn}
}

func (t *streamTransport) Read() (Envelope, error)  { return ReadEnvelope(t.conn) }
func (t *streamTransport) Write(env Envelope) error { return WriteEnvelope(t.conn, env) }
func (t *streamTransport) Close() error             { return t.conn.Close() }
