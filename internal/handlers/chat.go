package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"us-two/internal/auth"
	"us-two/internal/database"
	"us-two/internal/models"
	"us-two/internal/websocket"
)

type ChatHandler struct {
	db        *database.DB
	hub       *websocket.Hub
	validator *validator.Validate
}

func NewChatHandler(db *database.DB, hub *websocket.Hub) *ChatHandler {
	return &ChatHandler{
		db:        db,
		hub:       hub,
		validator: validator.New(),
	}
}

// GetMessages returns the full history, oldest first. The client seeds its
// view with this read before subscribing to the chat change feed.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, text, sender, timestamp, created_at
		 FROM chat
		 ORDER BY created_at ASC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var message models.ChatMessage
		if err := rows.Scan(&message.ID, &message.Text, &message.Sender, &message.Timestamp, &message.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan message"})
			return
		}
		messages = append(messages, message)
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	email, exists := auth.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var message models.ChatMessage
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO chat (text, sender)
		 VALUES ($1, $2)
		 RETURNING id, text, sender, timestamp, created_at`,
		req.Text, email).Scan(
		&message.ID, &message.Text, &message.Sender, &message.Timestamp, &message.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.hub.BroadcastRowChange(websocket.EventRowInsert, "chat", message)

	c.JSON(http.StatusCreated, message)
}
