package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"us-two/internal/auth"
	"us-two/internal/websocket"
)

type WebSocketHandler struct {
	hub *websocket.Hub
}

func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleWebSocket upgrades the connection and attaches it to the change
// feed hub.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	h.hub.ServeWS(c, userID)
}

// GetOnlineUsers reports who is connected right now. With two users this
// is effectively "is my partner here".
func (h *WebSocketHandler) GetOnlineUsers(c *gin.Context) {
	_, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	onlineUsers := h.hub.GetOnlineUsers()

	c.JSON(http.StatusOK, gin.H{
		"online_users": onlineUsers,
		"count":        len(onlineUsers),
	})
}
