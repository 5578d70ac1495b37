package healthhandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ConnCounter reports the number of live websocket connections.
type ConnCounter interface {
	ConnCount() int64
}

type Handler struct {
	started time.Time
	conns   ConnCounter
}

func New(conns ConnCounter) *Handler {
	return &Handler{started: time.Now(), conns: conns}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "ok",
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
		"uptime":               time.Since(h.started).Seconds(),
		"webSocketConnections": h.conns.ConnCount(),
	})
}
