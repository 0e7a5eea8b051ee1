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

// LettersHandler serves the "open when" letters.
type LettersHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewLettersHandler(db *database.DB) *LettersHandler {
	return &LettersHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *LettersHandler) GetLetters(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, title, content, created_at
		 FROM letters
		 ORDER BY created_at DESC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch letters"})
		return
	}
	defer rows.Close()

	letters := []models.Letter{}
	for rows.Next() {
		var letter models.Letter
		if err := rows.Scan(&letter.ID, &letter.Title, &letter.Content, &letter.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan letter"})
			return
		}
		letters = append(letters, letter)
	}

	c.JSON(http.StatusOK, gin.H{"letters": letters})
}

func (h *LettersHandler) CreateLetter(c *gin.Context) {
	var req models.CreateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var letter models.Letter
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO letters (title, content)
		 VALUES ($1, $2)
		 RETURNING id, title, content, created_at`,
		req.Title, req.Content).Scan(&letter.ID, &letter.Title, &letter.Content, &letter.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create letter"})
		return
	}

	c.JSON(http.StatusCreated, letter)
}

func (h *LettersHandler) DeleteLetter(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid letter ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM letters WHERE id = $1", id)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete letter"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Letter not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Letter deleted successfully"})
}
