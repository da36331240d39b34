package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/restohub/restopos/utils"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans lifecycle events out to websocket clients. Clients only
// receive events for their own restaurant. Delivery is best effort;
// a failed write drops the message, never the operation.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]uint // conn -> restaurant id
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]uint)}
}

func (h *Hub) Register(conn *websocket.Conn, restaurantID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = restaurantID
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Publish implements services.Publisher.
func (h *Hub) Publish(restaurantID uint, event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		utils.ErrorLogger.Printf("ws: marshal %s: %v", event, err)
		return
	}

	for conn, rid := range h.clients {
		if rid != restaurantID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("ws: send %s: %v", event, err)
		}
	}
}
