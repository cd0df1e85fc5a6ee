package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4 * 1024

	disconnectTimeout = 5 * time.Second
)

// Gateway upgrades HTTP requests to websocket connections and runs
// their read loops, decoding client envelopes and dispatching to the
// Router.
type Gateway struct {
	log        *slog.Logger
	registry   *Registry
	router     *Router
	upgrader   websocket.Upgrader
	sendBuffer int
}

func NewGateway(log *slog.Logger, registry *Registry, router *Router,
	sendBuffer int, allowedOrigin string) *Gateway {
	return &Gateway{
		log:      log,
		registry: registry,
		router:   router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
		sendBuffer: sendBuffer,
	}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sock, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn := newWSConn(g.log, sock, g.sendBuffer)
	g.registry.Register(conn)
	g.log.Debug("client connected", "connection_id", conn.ID())

	go conn.writePump()
	g.readLoop(r.Context(), conn)

	// The request context may already be gone once the socket closes;
	// the offline broadcast gets its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	g.router.HandleDisconnect(ctx, conn.ID())
	conn.Close()
}

func (g *Gateway) readLoop(ctx context.Context, conn *wsConn) {
	sock := conn.sock
	sock.SetReadLimit(maxMessageSize)
	_ = sock.SetReadDeadline(time.Now().Add(pongWait))
	sock.SetPongHandler(func(string) error {
		return sock.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debug("websocket read failed", "connection_id", conn.ID(), "error", err)
			}
			return
		}
		g.dispatch(ctx, conn, data)
	}
}

// dispatch decodes the envelope and routes it. The switch over message
// types is exhaustive: anything else is answered with an error event.
func (g *Gateway) dispatch(ctx context.Context, conn *wsConn, data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		conn.Emit(ServerMessage{Type: EventError, Data: ErrorPayload{Message: "malformed message"}})
		return
	}

	switch msg.Type {
	case MessageAuth:
		var payload AuthPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			conn.Emit(ServerMessage{Type: EventAuthError, Data: ErrorPayload{Message: "malformed auth payload"}})
			return
		}
		g.router.HandleAuthenticate(ctx, conn.ID(), payload)
	case MessageJoinTeam:
		var payload JoinTeamPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			conn.Emit(ServerMessage{Type: EventError, Data: ErrorPayload{Message: "malformed join_team payload"}})
			return
		}
		g.router.HandleJoinTeam(ctx, conn.ID(), payload)
	case MessageLeaveTeam:
		var payload LeaveTeamPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			conn.Emit(ServerMessage{Type: EventError, Data: ErrorPayload{Message: "malformed leave_team payload"}})
			return
		}
		g.router.HandleLeaveTeam(ctx, conn.ID(), payload)
	default:
		conn.Emit(ServerMessage{Type: EventError,
			Data: ErrorPayload{Message: fmt.Sprintf("unsupported message type %q", msg.Type)}})
	}
}

// wsConn adapts one gorilla socket to the Conn interface. All writes go
// through a buffered channel drained by a single writePump goroutine,
// which keeps per-connection delivery FIFO and makes Emit non-blocking.
type wsConn struct {
	id   string
	log  *slog.Logger
	sock *websocket.Conn

	send chan []byte
	done chan struct{}
	once sync.Once
}

func newWSConn(log *slog.Logger, sock *websocket.Conn, sendBuffer int) *wsConn {
	return &wsConn{
		id:   uuid.NewString(),
		log:  log,
		sock: sock,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *wsConn) ID() string { return c.id }

// Emit marshals and enqueues; a full buffer means the client is too
// slow and the message is dropped, per the at-most-once contract.
func (c *wsConn) Emit(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("failed to encode server message", "type", msg.Type, "error", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	default:
		c.log.Warn(fmt.Sprintf("send buffer full, dropping %s", msg.Type),
			"connection_id", c.id)
	}
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.sock.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsConn) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.sock.Close()
	})
}
