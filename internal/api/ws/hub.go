package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/UmutSen2662/Mono/internal/card"
	"github.com/UmutSen2662/Mono/internal/game"
	"github.com/UmutSen2662/Mono/internal/room"
)

// Scheduler is the slice of the bot scheduler the hub needs: re-evaluate
// a room after a mutation, and drive the end-of-game flow after a win.
type Scheduler interface {
	Evaluate(roomID string)
	FinishGame(roomID string, version uint64)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one websocket connection with its session identity. Writes
// are serialized per connection.
type client struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	playerID string
	name     string
	roomID   string
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type inFrame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type outFrame struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

// Hub tracks websocket membership per room plus the lobby broadcast
// group, routes inbound game actions into the match, and publishes
// snapshots back out. It implements room.Publisher for the scheduler.
type Hub struct {
	registry *room.Registry
	sched    Scheduler
	log      *zap.Logger

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
	lobby map[*client]struct{}
}

func NewHub(registry *room.Registry, sched Scheduler, log *zap.Logger) *Hub {
	return &Hub{
		registry: registry,
		sched:    sched,
		log:      log,
		rooms:    make(map[string]map[*client]struct{}),
		lobby:    make(map[*client]struct{}),
	}
}

// HandleWS upgrades a connection. With a room_id query the connection
// attaches to that room (joining the match if there is a free seat);
// without one it only receives lobby change notifications.
func (h *Hub) HandleWS(c *gin.Context) {
	playerID := c.GetString("playerID")
	playerName := c.GetString("playerName")
	roomID := c.Query("room_id")

	if roomID != "" {
		if _, ok := h.registry.Get(roomID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	cl := &client{conn: conn, playerID: playerID, name: playerName, roomID: roomID}

	if roomID == "" {
		h.serveLobby(cl)
		return
	}
	h.serveRoom(cl)
}

func (h *Hub) serveLobby(cl *client) {
	h.mu.Lock()
	h.lobby[cl] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.lobby, cl)
		h.mu.Unlock()
		_ = cl.conn.Close()
	}()

	// Lobby connections are receive-only; drain until the peer goes away.
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) serveRoom(cl *client) {
	h.register(cl)
	defer h.disconnect(cl)

	m, ok := h.registry.Get(cl.roomID)
	if !ok {
		return
	}

	// Re-attach a returning session to its seat (possibly taking it back
	// from the replacement bot), or claim a fresh one.
	if m.Seated(cl.playerID) {
		m.ReclaimSeat(cl.playerID, cl.name)
	} else if err := m.AddPlayer(cl.playerID, cl.name, false); err != nil {
		h.sendError(cl, err)
		return
	}

	h.log.Info("player joined room",
		zap.String("room", cl.roomID),
		zap.String("player", cl.playerID),
	)
	h.PublishRoom(cl.roomID)
	h.PublishLobby()
	h.sched.Evaluate(cl.roomID)

	for {
		var msg inFrame
		if err := cl.conn.ReadJSON(&msg); err != nil {
			return
		}
		h.handleAction(cl, msg)
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	if _, ok := h.rooms[cl.roomID]; !ok {
		h.rooms[cl.roomID] = make(map[*client]struct{})
	}
	h.rooms[cl.roomID][cl] = struct{}{}
	h.lobby[cl] = struct{}{}
	h.mu.Unlock()
}

// disconnect hands the seat to a bot so the game can continue, removes
// the room once no humans remain, and in the lobby simply frees the seat.
func (h *Hub) disconnect(cl *client) {
	h.mu.Lock()
	if clients, ok := h.rooms[cl.roomID]; ok {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.rooms, cl.roomID)
		}
	}
	delete(h.lobby, cl)
	h.mu.Unlock()
	_ = cl.conn.Close()

	m, ok := h.registry.Get(cl.roomID)
	if !ok {
		return
	}
	m.ReplaceWithBot(cl.playerID)

	switch {
	case m.HumanCount() == 0:
		h.registry.Remove(cl.roomID)
	case m.State() == game.StateLobby:
		m.RemovePlayer(cl.playerID)
		h.PublishRoom(cl.roomID)
	default:
		h.PublishRoom(cl.roomID)
		h.sched.Evaluate(cl.roomID)
	}
	h.PublishLobby()

	h.log.Info("player left room",
		zap.String("room", cl.roomID),
		zap.String("player", cl.playerID),
	)
}

func (h *Hub) handleAction(cl *client, msg inFrame) {
	m, ok := h.registry.Get(cl.roomID)
	if !ok {
		return
	}

	switch msg.Action {
	case "player_ready":
		if err := m.SetReady(cl.playerID, true); err != nil {
			h.sendError(cl, err)
			return
		}
		if err := m.TryStartGame(); err == nil {
			h.log.Info("game started", zap.String("room", cl.roomID))
		}
		h.PublishRoom(cl.roomID)
		h.PublishLobby()
		h.sched.Evaluate(cl.roomID)

	case "player_unready":
		if err := m.SetReady(cl.playerID, false); err != nil {
			h.sendError(cl, err)
			return
		}
		h.PublishRoom(cl.roomID)

	case "draw_card":
		if err := m.DrawCard(cl.playerID); err != nil {
			h.sendError(cl, err)
			return
		}
		h.PublishRoom(cl.roomID)
		h.sched.Evaluate(cl.roomID)

	case "play_card":
		var data struct {
			Card string `json:"card"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			h.sendError(cl, err)
			return
		}
		c, err := card.Parse(data.Card)
		if err != nil {
			h.sendError(cl, err)
			return
		}
		res, err := m.PlayCard(cl.playerID, c)
		if err != nil {
			h.sendError(cl, err)
			return
		}
		if res.Win {
			h.log.Info("game won",
				zap.String("room", cl.roomID),
				zap.String("winner", res.WinnerName),
			)
			h.sched.FinishGame(cl.roomID, m.Version())
			return
		}
		h.PublishRoom(cl.roomID)
		h.sched.Evaluate(cl.roomID)

	case "color_picker":
		var data struct {
			Color string `json:"color"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			h.sendError(cl, err)
			return
		}
		col, err := card.ParseColor(data.Color)
		if err != nil {
			h.sendError(cl, err)
			return
		}
		if err := m.PickColor(cl.playerID, col); err != nil {
			h.sendError(cl, err)
			return
		}
		h.PublishRoom(cl.roomID)
		h.sched.Evaluate(cl.roomID)

	case "add_bot":
		if err := m.AddBot(); err != nil {
			h.sendError(cl, err)
			return
		}
		h.PublishRoom(cl.roomID)
		h.PublishLobby()

	case "remove_bot":
		var data struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			h.sendError(cl, err)
			return
		}
		m.RemovePlayer(data.ID)
		h.PublishRoom(cl.roomID)
		h.PublishLobby()

	default:
		h.log.Debug("unknown action",
			zap.String("room", cl.roomID),
			zap.String("action", msg.Action),
		)
	}
}

func (h *Hub) sendError(cl *client, err error) {
	_ = cl.send(outFrame{Action: "error", Data: gin.H{"message": err.Error()}})
}

// PublishRoom delivers the room snapshot to every member, redacted so
// each viewer sees only their own hand.
func (h *Hub) PublishRoom(roomID string) {
	m, ok := h.registry.Get(roomID)
	if !ok {
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomID]))
	for cl := range h.rooms[roomID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		snap := m.Snapshot(cl.playerID)
		if err := cl.send(outFrame{Action: "room_update", Data: gin.H{"room": snap}}); err != nil {
			h.log.Debug("dropping unwritable client", zap.Error(err))
		}
	}
}

// PublishLobby nudges every connection to refresh its room list.
func (h *Hub) PublishLobby() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.lobby))
	for cl := range h.lobby {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		_ = cl.send(outFrame{Action: "rooms_changed"})
	}
}
