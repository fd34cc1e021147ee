package ipc

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // the host is a local game process, not a browser
	},
}

// wsTransport carries one envelope per websocket text frame.
type wsTransport struct {
	conn *websocket.Conn
}

// NewWebsocketTransport wraps an established websocket connection.
func NewWebsocketTransport(conn *websocket.Conn) Transport {
	conn.SetReadLimit(maxFrame)
	return &wsTransport{conn: conn}
}

func (t *wsTransport) Read() (Envelope, error) {
	msgType, payload, err := t.conn.ReadMessage()
	if err != nil {
		return Envelope{}, fmt.Errorf("read frame: %w", err)
	}
	if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
		return Envelope{}, fmt.Errorf("unexpected frame type %d", msgType)
	}
	return decodeEnvelope(payload)
}

func (t *wsTransport) Write(env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (t *wsTransport) Close() error {
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return t.conn.Close()
}

// WebsocketHandler upgrades each request and hands the transport to serve.
// serve runs on the request goroutine and owns the transport until it returns.
func WebsocketHandler(serve func(Transport)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		slog.Info("websocket host connected", "remote", r.RemoteAddr)
		serve(NewWebsocketTransport(conn))
	}
}
