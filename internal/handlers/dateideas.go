package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"us-two/internal/database"
	"us-two/internal/models"
)

// DateIdeasHandler serves the date-night idea wheel. The table is seeded
// with a starter set by the migrations; the couple can add their own.
type DateIdeasHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewDateIdeasHandler(db *database.DB) *DateIdeasHandler {
	return &DateIdeasHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *DateIdeasHandler) GetIdeas(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, text, created_at
		 FROM date_ideas
		 ORDER BY created_at ASC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ideas"})
		return
	}
	defer rows.Close()

	ideas := []models.DateIdea{}
	for rows.Next() {
		var idea models.DateIdea
		if err := rows.Scan(&idea.ID, &idea.Text, &idea.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan idea"})
			return
		}
		ideas = append(ideas, idea)
	}

	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

// GetRandomIdea spins the wheel server-side.
func (h *DateIdeasHandler) GetRandomIdea(c *gin.Context) {
	var idea models.DateIdea
	err := h.db.QueryRow(context.Background(),
		`SELECT id, text, created_at
		 FROM date_ideas
		 ORDER BY random()
		 LIMIT 1`).Scan(&idea.ID, &idea.Text, &idea.CreatedAt)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No ideas yet"})
		return
	}

	c.JSON(http.StatusOK, idea)
}

func (h *DateIdeasHandler) CreateIdea(c *gin.Context) {
	var req models.CreateDateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var idea models.DateIdea
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO date_ideas (text)
		 VALUES ($1)
		 RETURNING id, text, created_at`,
		req.Text).Scan(&idea.ID, &idea.Text, &idea.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create idea"})
		return
	}

	c.JSON(http.StatusCreated, idea)
}
