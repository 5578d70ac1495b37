package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"numduel/internal/game"
)

var errUnknownType = errors.New("unknown message type")

// internal (untyped) handler signature. The full frame is re-decoded into
// the handler's request type, since payload fields sit flat beside "type".
type rawHandler func(c game.Conn, frame []byte) error

// Router keeps a map[type]handler.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]rawHandler
}

func NewRouter() *Router { return &Router{handlers: make(map[string]rawHandler)} }

// Register binds a message type to a strongly-typed handler.
func Register[Req any](r *Router, msgType string, h func(c game.Conn, req Req) error) {
	if msgType == "" {
		panic("ws router: empty message type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[msgType] = func(c game.Conn, frame []byte) error {
		var req Req
		if err := json.Unmarshal(frame, &req); err != nil {
			return err
		}
		return h(c, req)
	}
}

// dispatch is called by the server's reader loop.
func (r *Router) dispatch(c game.Conn, msgType string, frame []byte) error {
	r.mu.RLock()
	h, ok := r.handlers[msgType]
	r.mu.RUnlock()
	if !ok {
		return errUnknownType
	}
	return h(c, frame)
}
