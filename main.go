package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"numduel/internal/config"
	"numduel/internal/game"
	"numduel/internal/http/http_server"
	"numduel/internal/keepalive"
	"numduel/internal/services/session"
	"numduel/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Room registry + session service (single home for all mutation)
	registry := game.NewRegistry()
	sessionSvc := session.NewSessionService(registry, cfg.TargetFactor, cfg.RoomCapacity)

	// 4. WebSocket server
	wsSrv := ws.NewWsServer(sessionSvc)

	// 5. Background: keep-alive self pinger
	keepalive.Run(ctx, cfg.KeepAliveURL, cfg.KeepAliveInterval)

	// 6. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
