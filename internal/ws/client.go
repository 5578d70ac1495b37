package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var errConnClosed = errors.New("connection closed")

// clientConn wraps a websocket connection with a write mutex, since the
// service broadcasts from whichever reader goroutine completed a round.
// It implements game.Conn.
type clientConn struct {
	raw    *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func newClientConn(raw *websocket.Conn) *clientConn {
	return &clientConn{raw: raw}
}

func (c *clientConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	_ = c.raw.SetWriteDeadline(time.Now().Add(writeWait))
	return c.raw.WriteJSON(v)
}

func (c *clientConn) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *clientConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.raw.Close()
}
