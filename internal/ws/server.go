package ws

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"numduel/internal/game"
	"numduel/internal/services/session"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second // must be < pongWait
	maxFrameSize = 1024
)

type WsServer struct {
	router     *Router
	sessionSvc session.ISessionService
	upgrader   websocket.Upgrader
	connCount  atomic.Int64
}

func NewWsServer(sessionSvc session.ISessionService) *WsServer {
	srv := &WsServer{
		router:     NewRouter(),
		sessionSvc: sessionSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true }, // dev-only
		},
	}
	srv.registerHandlers() // ← all WS endpoints configured here
	return srv
}

// ConnCount reports live websocket connections, for the health endpoint.
func (s *WsServer) ConnCount() int64 { return s.connCount.Load() }

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.accept", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(maxFrameSize)
	_ = rawConn.SetReadDeadline(time.Now().Add(pongWait))
	rawConn.SetPongHandler(func(string) error {
		return rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	conn := newClientConn(rawConn)
	s.connCount.Add(1)
	zap.L().Debug("ws.connected")

	go s.reader(conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	Register(s.router, "create_room", func(c game.Conn, req createRoomReq) error {
		return s.sessionSvc.CreateRoom(c, req.PlayerName)
	})
	Register(s.router, "join_room", func(c game.Conn, req joinRoomReq) error {
		return s.sessionSvc.JoinRoom(c, req.RoomCode, req.PlayerName)
	})
	Register(s.router, "start_round", func(c game.Conn, req startRoundReq) error {
		return s.sessionSvc.StartRound(c, req.RoomCode)
	})
	Register(s.router, "choose_number", func(c game.Conn, req chooseNumberReq) error {
		return s.sessionSvc.ChooseNumber(c, req.RoomCode, req.PlayerID, req.Number)
	})
	Register(s.router, "play_again", func(c game.Conn, req playAgainReq) error {
		return s.sessionSvc.PlayAgain(c, req.RoomCode)
	})
	Register(s.router, "kick_player", func(c game.Conn, req kickPlayerReq) error {
		return s.sessionSvc.KickPlayer(c, req.RoomCode, req.PlayerID)
	})
}

func (s *WsServer) reader(conn *clientConn) {
	defer func() {
		s.connCount.Add(-1)
		s.sessionSvc.Disconnect(conn)
		conn.Close()
		zap.L().Debug("ws.disconnected")
	}()

	for {
		_, frame, err := conn.raw.ReadMessage()
		if err != nil {
			return // client closed or errored
		}

		var env envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			// Malformed frames are logged and ignored; the connection
			// stays open.
			zap.L().Warn("ws.bad_frame", zap.Error(err))
			continue
		}

		// ---- error -> {"type":"error","message":"..."} to sender only ----
		if err := s.router.dispatch(conn, env.Type, frame); err != nil {
			_ = conn.Send(errorMsg{Type: "error", Message: err.Error()})
		}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		conn.mu.Lock()
		if conn.closed {
			conn.mu.Unlock()
			return
		}
		err := conn.raw.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		conn.mu.Unlock()
		if err != nil {
			conn.Close()
			return
		}
	}
}
