package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"ludo/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var errUnknownAction = errors.New("unknown action")

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // gorilla connections allow one concurrent writer
}

func (c *client) send(msg shared.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*client]struct{}
	roomManager RoomManager
}

func NewHub(roomManager RoomManager) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		roomManager: roomManager,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type inbound struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type intent struct {
	PlayerID string `json:"playerId"`
	Piece    int    `json:"piece"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_code"})
		return
	}
	if _, err := h.roomManager.Snapshot(roomCode); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	cl := &client{conn: conn}
	log.Printf("WebSocket connection established for room: %s", roomCode)

	h.mu.Lock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*client]struct{})
	}
	h.rooms[roomCode][cl] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.remove(roomCode, cl)
		_ = conn.Close()
	}()

	snap, err := h.roomManager.Snapshot(roomCode)
	if err != nil {
		return
	}
	if err := cl.send(shared.Message{Action: "state-updated", Data: snap}); err != nil {
		log.Printf("Failed to send initial state: %v", err)
		return
	}

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Error reading WebSocket message: %v", err)
			}
			break
		}
		if err := h.handle(roomCode, msg); err != nil {
			if sendErr := cl.send(shared.Message{Action: "error", Data: gin.H{"action": msg.Action, "error": err.Error()}}); sendErr != nil {
				log.Printf("Failed to send error: %v", sendErr)
				break
			}
		}
	}
}

// handle applies one client intent. Successful intents reach every client
// through the room's broadcasts; errors go back to the sender only.
func (h *Hub) handle(roomCode string, msg inbound) error {
	var in intent
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &in); err != nil {
			return err
		}
	}

	switch msg.Action {
	case "roll":
		_, err := h.roomManager.Roll(roomCode, in.PlayerID)
		return err
	case "select":
		_, err := h.roomManager.Select(roomCode, in.PlayerID, in.Piece)
		return err
	case "reset":
		_, err := h.roomManager.Reset(roomCode)
		return err
	case "ping":
		return nil
	default:
		log.Printf("Unknown action: %s", msg.Action)
		return errUnknownAction
	}
}

func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	if h == nil {
		log.Printf("Hub instance is nil")
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomCode]))
	for cl := range h.rooms[roomCode] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	message := shared.Message{Action: action, Data: data}
	for _, cl := range clients {
		if err := cl.send(message); err != nil {
			log.Printf("Failed to send message: %v", err)
			cl.conn.Close()
			h.remove(roomCode, cl)
		}
	}
}

// Clients reports how many connections are watching roomCode.
func (h *Hub) Clients(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

func (h *Hub) remove(roomCode string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[roomCode], cl)
	if len(h.rooms[roomCode]) == 0 {
		delete(h.rooms, roomCode)
	}
}
