package websocket

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Change feed event kinds pushed to subscribers
const (
	EventRowInsert = "row_insert"
	EventRowUpdate = "row_update"
	EventRowDelete = "row_delete"

	MessageTypeUserOnline  = "user_online"
	MessageTypeUserOffline = "user_offline"
)

// Event is a row-change notification for one table.
type Event struct {
	Type   string      `json:"type"`
	Table  string      `json:"table,omitempty"`
	UserID int         `json:"user_id,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Time   int64       `json:"time"`
}

// Client represents a connected change-feed subscriber
type Client struct {
	ID     string
	UserID int
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan Event
	Tables map[string]bool // tables this client is subscribed to
	mutex  sync.RWMutex
}

// Hub maintains the set of active clients and fans out change events
type Hub struct {
	// Registered clients by user ID
	Clients map[int]map[*Client]bool

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Broadcast channel for change events
	Broadcast chan Event

	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[int]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Event),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.Broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.Clients[client.UserID] == nil {
		h.Clients[client.UserID] = make(map[*Client]bool)
	}
	h.Clients[client.UserID][client] = true

	log.Printf("Client %s registered for user %d. Total clients for user: %d",
		client.ID, client.UserID, len(h.Clients[client.UserID]))

	h.broadcastUserStatus(client.UserID, MessageTypeUserOnline)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if clients, ok := h.Clients[client.UserID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.Send)

			// If no more clients for this user, remove the user
			if len(clients) == 0 {
				delete(h.Clients, client.UserID)
				h.broadcastUserStatus(client.UserID, MessageTypeUserOffline)
			}

			log.Printf("Client %s unregistered for user %d. Remaining clients for user: %d",
				client.ID, client.UserID, len(clients))
		}
	}
}

// broadcastEvent needs the write lock: the slow-subscriber path closes
// Send channels and deletes clients from the map while fanning out.
func (h *Hub) broadcastEvent(event Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	switch event.Type {
	case EventRowInsert, EventRowUpdate, EventRowDelete:
		h.broadcastToTableSubscribers(event)
	case MessageTypeUserOnline, MessageTypeUserOffline:
		h.broadcastToAll(event)
	}
}

// broadcastToTableSubscribers sends the event to every client watching its table
func (h *Hub) broadcastToTableSubscribers(event Event) {
	for userID, clients := range h.Clients {
		for client := range clients {
			client.mutex.RLock()
			isSubscribed := client.Tables[event.Table]
			client.mutex.RUnlock()

			if isSubscribed {
				select {
				case client.Send <- event:
				default:
					close(client.Send)
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.Clients, userID)
					}
				}
			}
		}
	}
}

func (h *Hub) broadcastToAll(event Event) {
	for userID, clients := range h.Clients {
		for client := range clients {
			select {
			case client.Send <- event:
			default:
				close(client.Send)
				delete(clients, client)
				if len(clients) == 0 {
					delete(h.Clients, userID)
				}
			}
		}
	}
}

// broadcastUserStatus tells the other partner this user came or went
func (h *Hub) broadcastUserStatus(userID int, messageType string) {
	event := Event{
		Type:   messageType,
		UserID: userID,
		Data:   map[string]interface{}{"user_id": userID},
	}

	// Don't broadcast to self
	for otherUserID, clients := range h.Clients {
		if otherUserID != userID {
			for client := range clients {
				select {
				case client.Send <- event:
				default:
					close(client.Send)
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.Clients, otherUserID)
					}
				}
			}
		}
	}
}

// BroadcastRowChange notifies table subscribers after a successful write.
// A missed event is never replayed; clients recover with a full re-read.
func (h *Hub) BroadcastRowChange(kind, table string, data interface{}) {
	h.Broadcast <- Event{
		Type:  kind,
		Table: table,
		Data:  data,
	}
}

// GetOnlineUsers returns list of currently connected user IDs
func (h *Hub) GetOnlineUsers() []int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var onlineUsers []int
	for userID := range h.Clients {
		onlineUsers = append(onlineUsers, userID)
	}
	return onlineUsers
}

// SubscribeToTable subscribes a client to a table's change feed
func (c *Client) SubscribeToTable(table string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.Tables == nil {
		c.Tables = make(map[string]bool)
	}
	c.Tables[table] = true
}

// UnsubscribeFromTable unsubscribes a client from a table's change feed
func (c *Client) UnsubscribeFromTable(table string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.Tables != nil {
		delete(c.Tables, table)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Both users connect from the same origin list the API allows
		return true
	},
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(c *gin.Context, userID int) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:     "client_" + uuid.New().String()[:8],
		UserID: userID,
		Hub:    h,
		Conn:   conn,
		Send:   make(chan Event, 256),
		Tables: make(map[string]bool),
	}

	h.Register <- client

	go client.writePump()
	go client.readPump()
}
