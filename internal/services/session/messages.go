package session

import (
	"bytes"
	"encoding/json"

	"numduel/internal/game"
)

// RosterEntry is one player's public state in a roster snapshot.
type RosterEntry struct {
	ID      string
	Name    string
	Number  *int
	Wins    int
	IsReady bool
}

// Roster is a full roster snapshot. It marshals as a JSON object keyed by
// player id, emitted in roster order so index-based result fields line up
// with iteration order on the client.
type Roster []RosterEntry

func (r Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(struct {
			Name    string `json:"name"`
			Number  *int   `json:"number"`
			Wins    int    `json:"wins"`
			IsReady bool   `json:"isReady"`
		}{e.Name, e.Number, e.Wins, e.IsReady})
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func snapshot(rm *game.Room) Roster {
	players := rm.Players()
	out := make(Roster, len(players))
	for i, p := range players {
		out[i] = RosterEntry{
			ID:      p.ID,
			Name:    p.Name,
			Number:  p.Number,
			Wins:    p.Wins,
			IsReady: p.Ready,
		}
	}
	return out
}

// ──────────────────────────── Outbound frames ────────────────────────────

type RoomCreatedMsg struct {
	Type       string `json:"type"` // "room_created"
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Players    Roster `json:"players"`
}

type RoomJoinedMsg struct {
	Type       string `json:"type"` // "room_joined"
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Players    Roster `json:"players"`
}

type JoinedPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

type PlayerJoinedMsg struct {
	Type    string       `json:"type"` // "player_joined"
	Player  JoinedPlayer `json:"player"`
	Players Roster       `json:"players"`
}

type RoundStartedMsg struct {
	Type    string `json:"type"` // "round_started"
	Players Roster `json:"players"`
}

type NumberSubmittedMsg struct {
	Type     string `json:"type"` // "number_submitted"
	PlayerID string `json:"playerId"`
	Players  Roster `json:"players"`
}

type RoundResultMsg struct {
	Type    string       `json:"type"` // "round_result"
	Result  *game.Result `json:"result"`
	Players Roster       `json:"players"`
}

type EliminatedMsg struct {
	Type    string  `json:"type"` // "eliminated"
	Message string  `json:"message"`
	Target  float64 `json:"target"`
}

type KickedMsg struct {
	Type    string `json:"type"` // "kicked"
	Message string `json:"message"`
}

type PlayerKickedMsg struct {
	Type     string `json:"type"` // "player_kicked"
	PlayerID string `json:"playerId"`
	Players  Roster `json:"players"`
}

type PlayerLeftMsg struct {
	Type     string `json:"type"` // "player_left"
	PlayerID string `json:"playerId"`
	Players  Roster `json:"players"`
}

type PlayAgainMsg struct {
	Type    string `json:"type"` // "play_again"
	Players Roster `json:"players"`
}
