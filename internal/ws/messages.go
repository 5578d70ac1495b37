package ws

// Every frame is a flat JSON object tagged by a "type" string.
type envelope struct {
	Type string `json:"type"`
}

// ─────────────────────────── Client → server ────────────────────────────

type createRoomReq struct {
	PlayerName string `json:"playerName"`
}

type joinRoomReq struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type startRoundReq struct {
	RoomCode string `json:"roomCode"`
}

type chooseNumberReq struct {
	RoomCode string   `json:"roomCode"`
	PlayerID string   `json:"playerId"`
	Number   *float64 `json:"number"`
}

type playAgainReq struct {
	RoomCode string `json:"roomCode"`
}

type kickPlayerReq struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

// errorMsg is the only frame the transport layer writes on its own; every
// handler failure goes back to the sender alone, never broadcast.
type errorMsg struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}
