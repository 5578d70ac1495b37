package session

import (
	"errors"
	"math"
	"sync"

	"go.uber.org/zap"

	"numduel/internal/game"
)

var (
	ErrRoomNotFound    = errors.New("Room does not exist")
	ErrInvalidNumber   = errors.New("Number must be between 0 and 100")
	ErrNotAdminStart   = errors.New("Only admin can start the round")
	ErrNotAdminRestart = errors.New("Only admin can start the next round")
	ErrNotAdminKick    = errors.New("Only admin can kick players")
	ErrSelfKick        = errors.New("Admin cannot kick themselves")
)

const eliminatedNotice = "You were eliminated: your number was farthest from the target"

type ISessionService interface {
	CreateRoom(c game.Conn, playerName string) error
	JoinRoom(c game.Conn, roomCode, playerName string) error
	StartRound(c game.Conn, roomCode string) error
	ChooseNumber(c game.Conn, roomCode, playerID string, number *float64) error
	PlayAgain(c game.Conn, roomCode string) error
	KickPlayer(c game.Conn, roomCode, playerID string) error
	Disconnect(c game.Conn)
}

// sessionService owns every room/player mutation. A single mutex serializes
// all message and disconnect handling, so each operation observes and leaves
// consistent state without per-room locking.
type sessionService struct {
	mu           sync.Mutex
	registry     *game.Registry
	targetFactor float64
	capacity     int
}

func NewSessionService(registry *game.Registry, targetFactor float64, capacity int) ISessionService {
	return &sessionService{
		registry:     registry,
		targetFactor: targetFactor,
		capacity:     capacity,
	}
}

func (s *sessionService) CreateRoom(c game.Conn, playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.registry.CreateRoom()
	p, err := rm.Join(playerName, c, s.capacity)
	if err != nil {
		s.registry.Destroy(rm.Code)
		return err
	}

	zap.L().Info("room_created",
		zap.String("room", rm.Code),
		zap.String("player", p.ID),
		zap.String("name", playerName),
	)
	return c.Send(RoomCreatedMsg{
		Type:       "room_created",
		RoomCode:   rm.Code,
		PlayerID:   p.ID,
		PlayerName: playerName,
		Players:    snapshot(rm),
	})
}

func (s *sessionService) JoinRoom(c game.Conn, roomCode, playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.registry.Lookup(roomCode)
	if rm == nil {
		return ErrRoomNotFound
	}
	p, err := rm.Join(playerName, c, s.capacity)
	if err != nil {
		return err
	}

	// Existing members learn about the newcomer; the newcomer gets the
	// confirmation frame instead.
	s.broadcast(rm, PlayerJoinedMsg{
		Type:    "player_joined",
		Player:  JoinedPlayer{ID: p.ID, Name: p.Name, Wins: p.Wins},
		Players: snapshot(rm),
	}, c)

	zap.L().Info("player_joined",
		zap.String("room", rm.Code),
		zap.String("player", p.ID),
		zap.String("name", playerName),
	)
	return c.Send(RoomJoinedMsg{
		Type:       "room_joined",
		RoomCode:   rm.Code,
		PlayerID:   p.ID,
		PlayerName: playerName,
		Players:    snapshot(rm),
	})
}

func (s *sessionService) StartRound(c game.Conn, roomCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.registry.Lookup(roomCode)
	if rm == nil {
		return ErrRoomNotFound
	}
	if !rm.IsAdmin(c) {
		return ErrNotAdminStart
	}

	rm.BeginRound()
	s.broadcast(rm, RoundStartedMsg{Type: "round_started", Players: snapshot(rm)}, nil)
	zap.L().Info("round_started", zap.String("room", rm.Code))
	return nil
}

func (s *sessionService) ChooseNumber(c game.Conn, roomCode, playerID string, number *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.registry.Lookup(roomCode)
	if rm == nil {
		return ErrRoomNotFound
	}
	if number == nil || *number < 0 || *number > 100 || *number != math.Trunc(*number) {
		return ErrInvalidNumber
	}
	if err := rm.Submit(playerID, int(*number)); err != nil {
		return err
	}

	if rm.AllSubmitted() {
		s.finishRound(rm)
		return nil
	}
	s.broadcast(rm, NumberSubmittedMsg{
		Type:     "number_submitted",
		PlayerID: playerID,
		Players:  snapshot(rm),
	}, nil)
	return nil
}

func (s *sessionService) PlayAgain(c game.Conn, roomCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.registry.Lookup(roomCode)
	if rm == nil {
		return ErrRoomNotFound
	}
	if !rm.IsAdmin(c) {
		return ErrNotAdminRestart
	}

	rm.EndRound()
	s.broadcast(rm, PlayAgainMsg{Type: "play_again", Players: snapshot(rm)}, nil)
	zap.L().Info("play_again", zap.String("room", rm.Code))
	return nil
}

func (s *sessionService) KickPlayer(c game.Conn, roomCode, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.registry.Lookup(roomCode)
	if rm == nil {
		return ErrRoomNotFound
	}
	sender := rm.PlayerByConn(c)
	if sender == nil || sender.ID != rm.AdminID {
		return ErrNotAdminKick
	}
	if playerID == sender.ID {
		return ErrSelfKick
	}
	target := rm.Player(playerID)
	if target == nil {
		return game.ErrUnknownPlayer
	}

	rm.Remove(playerID)
	_ = target.Conn.Send(KickedMsg{Type: "kicked", Message: "You have been kicked from the room"})
	s.broadcast(rm, PlayerKickedMsg{
		Type:     "player_kicked",
		PlayerID: playerID,
		Players:  snapshot(rm),
	}, target.Conn)
	target.Conn.Close()

	if rm.Empty() {
		s.registry.Destroy(rm.Code)
	}
	zap.L().Info("player_kicked", zap.String("room", roomCode), zap.String("player", playerID))
	return nil
}

// Disconnect handles connection close for any cause. Removing a player can
// complete a round exactly like a submission can.
func (s *sessionService) Disconnect(c game.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.registry.FindByConn(c)
	if rm == nil {
		return
	}
	p := rm.PlayerByConn(c)
	rm.Remove(p.ID)
	zap.L().Info("player_disconnected", zap.String("room", rm.Code), zap.String("player", p.ID))

	if rm.Empty() {
		s.registry.Destroy(rm.Code)
		return
	}
	if rm.AllSubmitted() {
		s.finishRound(rm)
		return
	}
	s.broadcast(rm, PlayerLeftMsg{
		Type:     "player_left",
		PlayerID: p.ID,
		Players:  snapshot(rm),
	}, nil)
}

// finishRound resolves a fully-submitted round: increment winner counters,
// broadcast the result to everyone (the eliminated player included), then
// remove the eliminated player and return the room to the lobby. Caller
// holds the lock.
func (s *sessionService) finishRound(rm *game.Room) {
	res := game.Resolve(rm.Players(), s.targetFactor)
	if res == nil {
		return
	}

	for _, id := range res.WinnerIDs {
		if w := rm.Player(id); w != nil {
			w.Wins++
		}
	}

	s.broadcast(rm, RoundResultMsg{
		Type:    "round_result",
		Result:  res,
		Players: snapshot(rm),
	}, nil)

	if elim := rm.Player(res.EliminatedID); elim != nil {
		_ = elim.Conn.Send(EliminatedMsg{
			Type:    "eliminated",
			Message: eliminatedNotice,
			Target:  res.Target,
		})
		elim.Conn.Close()
		rm.Remove(elim.ID)
	}

	zap.L().Info("round_resolved",
		zap.String("room", rm.Code),
		zap.Float64("target", res.Target),
		zap.Strings("winners", res.WinnerIDs),
		zap.String("eliminated", res.EliminatedID),
	)

	if rm.Empty() {
		s.registry.Destroy(rm.Code)
		return
	}
	rm.EndRound()
}

// broadcast fans a frame out to every live member, optionally skipping one
// connection. A vanished room is a no-op: a pending broadcast may race room
// destruction and must never fail.
func (s *sessionService) broadcast(rm *game.Room, msg any, exclude game.Conn) {
	if rm == nil {
		return
	}
	for _, p := range rm.Players() {
		if p.Conn == exclude || !p.Conn.Alive() {
			continue
		}
		if err := p.Conn.Send(msg); err != nil {
			zap.L().Debug("broadcast_send_failed",
				zap.String("room", rm.Code),
				zap.String("player", p.ID),
				zap.Error(err),
			)
		}
	}
}
