package game

import (
	"errors"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhasePlaying Phase = "playing"
)

var (
	ErrNameTaken     = errors.New("Name already taken in this room")
	ErrRoomFull      = errors.New("Room is full")
	ErrUnknownPlayer = errors.New("Unknown player in this room")
)

// Conn is one client's outbound side of the wire. It is implemented by the
// websocket layer and faked in tests, so nothing in this package touches a
// real socket.
type Conn interface {
	Send(v any) error
	Alive() bool
	Close()
}

type Player struct {
	ID     string
	Name   string
	Number *int // nil until submitted this round
	Wins   int
	Ready  bool
	Conn   Conn
}

// Room is a single game session. Membership is an ordered slice: insertion
// order drives admin succession and keeps index-based result fields stable.
type Room struct {
	Code    string
	Phase   Phase
	AdminID string
	players []*Player
}

func NewRoom(code string) *Room {
	return &Room{Code: code, Phase: PhaseWaiting}
}

// Join appends a new player. The first member becomes admin. A capacity of 0
// means unlimited.
func (r *Room) Join(name string, c Conn, capacity int) (*Player, error) {
	if capacity > 0 && len(r.players) >= capacity {
		return nil, ErrRoomFull
	}
	for _, p := range r.players {
		if p.Name == name {
			return nil, ErrNameTaken
		}
	}
	p := &Player{
		ID:   uuid.NewString(),
		Name: name,
		Conn: c,
	}
	r.players = append(r.players, p)
	if len(r.players) == 1 {
		r.AdminID = p.ID
	}
	return p, nil
}

func (r *Room) Players() []*Player { return r.players }

func (r *Room) Empty() bool { return len(r.players) == 0 }

func (r *Room) Player(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) PlayerByConn(c Conn) *Player {
	for _, p := range r.players {
		if p.Conn == c {
			return p
		}
	}
	return nil
}

// IsAdmin reports whether the sender connection belongs to the room admin.
// Authorization compares player ids, not connection identity.
func (r *Room) IsAdmin(c Conn) bool {
	p := r.PlayerByConn(c)
	return p != nil && p.ID == r.AdminID
}

// Remove drops a member. If the admin leaves and others remain, the first
// remaining player in roster order succeeds.
func (r *Room) Remove(id string) *Player {
	for i, p := range r.players {
		if p.ID != id {
			continue
		}
		r.players = append(r.players[:i], r.players[i+1:]...)
		if r.AdminID == id && len(r.players) > 0 {
			r.AdminID = r.players[0].ID
		}
		return p
	}
	return nil
}

// Submit records a player's number for the open round.
func (r *Room) Submit(id string, n int) error {
	p := r.Player(id)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.Number = &n
	return nil
}

// AllSubmitted reports whether every current member has a number set.
func (r *Room) AllSubmitted() bool {
	if len(r.players) == 0 {
		return false
	}
	for _, p := range r.players {
		if p.Number == nil {
			return false
		}
	}
	return true
}

// BeginRound opens the room for submissions, clearing per-round state.
func (r *Room) BeginRound() {
	for _, p := range r.players {
		p.Number = nil
		p.Ready = false
	}
	r.Phase = PhasePlaying
}

// EndRound clears submissions and returns the room to the lobby. Win counts
// persist across rounds.
func (r *Room) EndRound() {
	for _, p := range r.players {
		p.Number = nil
	}
	r.Phase = PhaseWaiting
}
