package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// fakeConn records every emitted message; safe for use from the
// dispatcher goroutine.
type fakeConn struct {
	id     string
	mu     sync.Mutex
	msgs   []ServerMessage
	closed bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{id: uuid.NewString()}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Emit(msg ServerMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) messages() []ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ServerMessage, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c *fakeConn) lastMessage() (ServerMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.msgs) == 0 {
		return ServerMessage{}, false
	}
	return c.msgs[len(c.msgs)-1], true
}
