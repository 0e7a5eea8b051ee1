package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// ClientMessage represents incoming messages from clients
type ClientMessage struct {
	Type  string `json:"type"`
	Table string `json:"table,omitempty"`
}

// Client message types
const (
	ClientMessageSubscribe   = "subscribe"
	ClientMessageUnsubscribe = "unsubscribe"
	ClientMessagePing        = "ping"
)

// Tables that expose a change feed. Chat appends per event; backgrounds
// re-read on each event.
var watchableTables = map[string]bool{
	"chat":        true,
	"backgrounds": true,
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, messageBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var clientMessage ClientMessage
		if err := json.Unmarshal(messageBytes, &clientMessage); err != nil {
			log.Printf("Failed to unmarshal client message: %v", err)
			continue
		}

		c.handleClientMessage(clientMessage)
	}
}

// writePump pumps events from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			// Add timestamp to event
			event.Time = time.Now().Unix()

			eventBytes, err := json.Marshal(event)
			if err != nil {
				log.Printf("Failed to marshal event: %v", err)
				w.Close()
				continue
			}

			w.Write(eventBytes)

			// Add queued events to the current websocket message
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				queuedEvent := <-c.Send
				queuedEvent.Time = time.Now().Unix()

				queuedEventBytes, err := json.Marshal(queuedEvent)
				if err != nil {
					log.Printf("Failed to marshal queued event: %v", err)
					continue
				}
				w.Write(queuedEventBytes)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleClientMessage processes incoming messages from the client
func (c *Client) handleClientMessage(message ClientMessage) {
	switch message.Type {
	case ClientMessageSubscribe:
		if watchableTables[message.Table] {
			c.SubscribeToTable(message.Table)
			log.Printf("Client %s subscribed to table %s", c.ID, message.Table)

			response := Event{
				Type:  "subscribed",
				Table: message.Table,
				Data: map[string]interface{}{
					"table":  message.Table,
					"status": "subscribed",
				},
			}

			select {
			case c.Send <- response:
			default:
				close(c.Send)
			}
		}

	case ClientMessageUnsubscribe:
		if message.Table != "" {
			c.UnsubscribeFromTable(message.Table)
			log.Printf("Client %s unsubscribed from table %s", c.ID, message.Table)

			response := Event{
				Type:  "unsubscribed",
				Table: message.Table,
				Data: map[string]interface{}{
					"table":  message.Table,
					"status": "unsubscribed",
				},
			}

			select {
			case c.Send <- response:
			default:
				close(c.Send)
			}
		}

	case ClientMessagePing:
		response := Event{
			Type: "pong",
			Data: map[string]interface{}{
				"timestamp": time.Now().Unix(),
			},
		}

		select {
		case c.Send <- response:
		default:
			close(c.Send)
		}

	default:
		log.Printf("Unknown client message type: %s", message.Type)
	}
}
