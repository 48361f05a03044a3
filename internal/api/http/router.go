package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/UmutSen2662/Mono/internal/api/ws"
	"github.com/UmutSen2662/Mono/internal/config"
	"github.com/UmutSen2662/Mono/internal/room"
)

func NewRouter(reg *room.Registry, hub *ws.Hub, cfg config.Server, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log), Session(cfg))

	// Realtime transport for room members and the lobby page.
	r.GET("/ws", hub.HandleWS)

	// --- LOBBY ENDPOINTS ---
	r.GET("/rooms", ListRoomsHandler(reg))
	r.POST("/rooms", CreateRoomHandler(reg, hub, log))
	r.POST("/rooms/:id/join", JoinRoomHandler(reg))
	r.POST("/name", UpdateNameHandler(cfg))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
