package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"us-two/internal/database"
	"us-two/internal/models"
)

type MemoriesHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewMemoriesHandler(db *database.DB) *MemoriesHandler {
	return &MemoriesHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *MemoriesHandler) GetMemories(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, image, caption, date, created_at
		 FROM memories
		 ORDER BY created_at DESC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch memories"})
		return
	}
	defer rows.Close()

	memories := []models.Memory{}
	for rows.Next() {
		var memory models.Memory
		if err := rows.Scan(&memory.ID, &memory.Image, &memory.Caption, &memory.Date, &memory.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan memory"})
			return
		}
		memory.MediaType = models.ClassifyMedia(memory.Image)
		memories = append(memories, memory)
	}

	c.JSON(http.StatusOK, gin.H{"memories": memories})
}

func (h *MemoriesHandler) CreateMemory(c *gin.Context) {
	var req models.CreateMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var memory models.Memory
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO memories (image, caption, date)
		 VALUES ($1, $2, $3::date)
		 RETURNING id, image, caption, date, created_at`,
		req.Image, req.Caption, req.Date).Scan(
		&memory.ID, &memory.Image, &memory.Caption, &memory.Date, &memory.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save memory"})
		return
	}

	memory.MediaType = models.ClassifyMedia(memory.Image)

	c.JSON(http.StatusCreated, memory)
}

func (h *MemoriesHandler) DeleteMemory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid memory ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM memories WHERE id = $1", id)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete memory"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Memory not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Memory deleted successfully"})
}
