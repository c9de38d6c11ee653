package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/quizgolf/backend/internal/events"
	"github.com/quizgolf/backend/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin is checked by middleware.WebSocketCORSCheck
	},
}

// WSMessage is the envelope for every outbound command.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Hub maintains the set of connected headsets. Inbound input events are
// handed to onEvent; outbound commands go to every client.
type Hub struct {
	clients    map[string]*Client // deviceID -> Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // closed when Run returns
	mu         sync.RWMutex

	onEvent func(events.Event)
	replay  func() [][]byte
}

// NewHub creates a hub that forwards decoded input events to onEvent.
func NewHub(onEvent func(events.Event)) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		onEvent:    onEvent,
	}
}

// SetReplay installs the source of messages sent to a client as soon as it
// connects, so a reconnecting headset sees the current panels.
func (h *Hub) SetReplay(fn func() [][]byte) {
	h.replay = fn
}

// ClientCount returns the number of connected headsets.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run processes registrations until ctx is done. Connections arriving after
// that are closed straight away.
func (h *Hub) Run(ctx context.Context) {
	log.Println("[WS] Hub started")
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, c := range h.clients {
				c.conn.Close()
				close(c.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			log.Println("[WS] Hub stopping")
			return

		case client := <-h.register:
			h.mu.Lock()
			if old, exists := h.clients[client.deviceID]; exists {
				log.Printf("[WS] Device %s reconnecting - closing old connection", client.deviceID)
				if err := old.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by new connection"), time.Now().Add(5*time.Second)); err != nil {
					log.Printf("[WS] Error writing close control to old client %s: %v", old.deviceID, err)
				}
				old.conn.Close()
				close(old.send)
			}
			h.clients[client.deviceID] = client
			h.mu.Unlock()

			log.Printf("[WS] Device %s connected", client.deviceID)
			if h.replay != nil {
				for _, msg := range h.replay() {
					select {
					case client.send <- msg:
					default:
						log.Printf("[WS] Replay dropped for device %s (buffer full)", client.deviceID)
					}
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.deviceID]; ok && cur == client {
				delete(h.clients, client.deviceID)
				close(client.send)
				log.Printf("[WS] Device %s disconnected", client.deviceID)
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends message to every connected headset.
func (h *Hub) Broadcast(message any) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	h.broadcastRaw(data)
}

func (h *Hub) broadcastRaw(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] Client send buffer full for device %s, dropping message", client.deviceID)
		}
	}
}

// HandleWebSocket upgrades a headset connection.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	deviceID := c.GetString(middleware.DeviceIDKey)
	if deviceID == "" {
		deviceID = c.Query("device")
	}
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		deviceID: deviceID,
		send:     make(chan []byte, 256),
	}

	select {
	case h.register <- client:
	case <-h.done:
		log.Printf("[WS] Hub stopped, refusing device %s", deviceID)
		conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(time.Second))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
