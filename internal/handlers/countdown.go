package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"us-two/internal/database"
	"us-two/internal/models"
)

type CountdownHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewCountdownHandler(db *database.DB) *CountdownHandler {
	return &CountdownHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *CountdownHandler) GetEvents(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, name, date, created_at
		 FROM countdown
		 ORDER BY date ASC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	defer rows.Close()

	now := time.Now()
	events := []models.CountdownEvent{}
	for rows.Next() {
		var event models.CountdownEvent
		if err := rows.Scan(&event.ID, &event.Name, &event.Date, &event.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan event"})
			return
		}
		event.TimeLeft = models.TimeLeftUntil(event.Date, now)
		events = append(events, event)
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *CountdownHandler) CreateEvent(c *gin.Context) {
	var req models.CreateCountdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.CountdownEvent
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO countdown (name, date)
		 VALUES ($1, $2::date)
		 RETURNING id, name, date, created_at`,
		req.Name, req.Date).Scan(&event.ID, &event.Name, &event.Date, &event.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	event.TimeLeft = models.TimeLeftUntil(event.Date, time.Now())

	c.JSON(http.StatusCreated, event)
}

func (h *CountdownHandler) DeleteEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM countdown WHERE id = $1", id)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
