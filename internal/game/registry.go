package game

import "math/rand/v2"

const (
	codeLen      = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Registry owns the code -> room table. It is not safe for concurrent use on
// its own: the session service funnels every mutation through a single lock,
// which keeps each message handler atomic without per-field locking.
type Registry struct {
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// CreateRoom allocates a collision-free code and inserts an empty room.
func (g *Registry) CreateRoom() *Room {
	code := newCode()
	for g.rooms[code] != nil {
		code = newCode()
	}
	rm := NewRoom(code)
	g.rooms[code] = rm
	return rm
}

func (g *Registry) Lookup(code string) *Room { return g.rooms[code] }

// Destroy removes a room; called as soon as its player set becomes empty.
func (g *Registry) Destroy(code string) { delete(g.rooms, code) }

// FindByConn locates the room holding the given connection, if any.
// A connection belongs to at most one room.
func (g *Registry) FindByConn(c Conn) *Room {
	for _, rm := range g.rooms {
		if rm.PlayerByConn(c) != nil {
			return rm
		}
	}
	return nil
}

func newCode() string {
	b := make([]byte, codeLen)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}
