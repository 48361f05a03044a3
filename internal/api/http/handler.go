package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/UmutSen2662/Mono/internal/config"
	"github.com/UmutSen2662/Mono/internal/game"
	"github.com/UmutSen2662/Mono/internal/room"
)

// Publisher is the lobby-notification slice of the hub the HTTP handlers
// need.
type Publisher interface {
	PublishLobby()
}

// lobbyListCap keeps the room list short; the client searches to narrow.
const lobbyListCap = 4

func CreateRoomHandler(reg *room.Registry, pub Publisher, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.BindJSON(&req); err != nil {
			abortJSON(c, http.StatusBadRequest, "invalid payload")
			return
		}
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		m := reg.Create(id, req.Name, req.Password)
		log.Info("room created",
			zap.String("room", id),
			zap.String("name", m.Name()),
		)
		pub.PublishLobby()
		c.JSON(http.StatusOK, gin.H{"roomId": id, "name": m.Name()})
	}
}

func ListRoomsHandler(reg *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg.Cleanup()
		search := strings.ToLower(c.Query("search"))

		out := make([]RoomListEntry, 0, lobbyListCap)
		for _, m := range reg.List() {
			if search != "" && !strings.Contains(strings.ToLower(m.Name()), search) {
				continue
			}
			out = append(out, RoomListEntry{
				ID:          m.ID(),
				Name:        m.Name(),
				Players:     m.PlayerCount(),
				HasPassword: m.HasPassword(),
			})
			if len(out) == lobbyListCap {
				break
			}
		}
		c.JSON(http.StatusOK, gin.H{"rooms": out})
	}
}

// JoinRoomHandler validates that the session may enter the room before
// the client opens its websocket: password, capacity, and game state. A
// session that already holds a seat may always come back.
func JoinRoomHandler(reg *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := reg.Get(c.Param("id"))
		if !ok {
			abortJSON(c, http.StatusNotFound, "room not found")
			return
		}

		var req JoinRoomRequest
		_ = c.BindJSON(&req)
		if !m.CheckPassword(req.Password) {
			abortJSON(c, http.StatusForbidden, "wrong password")
			return
		}

		playerID := c.GetString("playerID")
		if !m.Seated(playerID) {
			if m.State() != game.StateLobby || m.PlayerCount() >= game.MaxSeats {
				abortJSON(c, http.StatusConflict, "room is full or in progress")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"roomId": m.ID(), "room": m.Snapshot(playerID)})
	}
}

func UpdateNameHandler(cfg config.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateNameRequest
		if err := c.BindJSON(&req); err != nil {
			abortJSON(c, http.StatusBadRequest, "invalid payload")
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = defaultName
		}
		setNameCookie(c, cfg, name)
		c.JSON(http.StatusOK, gin.H{"name": name})
	}
}
