package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/quizgolf/backend/internal/events"
)

// Client is one connected headset.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	deviceID string
	send     chan []byte
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for device %s: %v", c.deviceID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for device %s: %v", c.deviceID, err)
				return
			}
		}
	}
}

// readPump decodes input events from the headset.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Unexpected close for device %s: %v", c.deviceID, err)
			} else {
				log.Printf("[WS] Read error for device %s: %v", c.deviceID, err)
			}
			break
		}

		e, err := events.Decode(message)
		if err != nil {
			c.sendError(err.Error())
			continue
		}
		if c.hub.onEvent != nil {
			c.hub.onEvent(e)
		}
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": message,
	})

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if cur := c.hub.clients[c.deviceID]; cur != c {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
