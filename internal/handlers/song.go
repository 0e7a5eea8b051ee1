package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"us-two/internal/database"
	"us-two/internal/models"
)

// SongHandler manages the couple's shared song, a singleton row.
type SongHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewSongHandler(db *database.DB) *SongHandler {
	return &SongHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *SongHandler) GetSong(c *gin.Context) {
	var song models.Song
	err := h.db.QueryRow(context.Background(),
		"SELECT id, video_id, created_at FROM song LIMIT 1").Scan(
		&song.ID, &song.VideoID, &song.CreatedAt)

	if err == pgx.ErrNoRows {
		c.JSON(http.StatusOK, gin.H{"song": nil})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch song"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"song": song})
}

// SetSong updates the existing row if there is one, otherwise inserts the
// first. At most one logical song record exists.
func (h *SongHandler) SetSong(c *gin.Context) {
	var req models.SetSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingID int
	err := h.db.QueryRow(context.Background(),
		"SELECT id FROM song LIMIT 1").Scan(&existingID)

	var song models.Song
	if err == pgx.ErrNoRows {
		err = h.db.QueryRow(context.Background(),
			`INSERT INTO song (video_id)
			 VALUES ($1)
			 RETURNING id, video_id, created_at`,
			req.VideoID).Scan(&song.ID, &song.VideoID, &song.CreatedAt)
	} else if err == nil {
		err = h.db.QueryRow(context.Background(),
			`UPDATE song SET video_id = $1
			 WHERE id = $2
			 RETURNING id, video_id, created_at`,
			req.VideoID, existingID).Scan(&song.ID, &song.VideoID, &song.CreatedAt)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save song"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"song": song})
}
