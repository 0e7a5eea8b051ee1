package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"us-two/internal/database"
	"us-two/internal/models"
	"us-two/internal/storage"
	"us-two/internal/websocket"
)

// Shown on the home screen until the couple uploads their own photos.
var defaultBackgrounds = []string{
	"https://images.unsplash.com/photo-1518199266791-5375a83190b7?q=80&w=2070&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1516589178581-6cd7833ae3b2?q=80&w=1974&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1529333166437-7750a6dd5a70?q=80&w=2069&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1523438885200-e635ba2c371e?q=80&w=1974&auto=format&fit=crop",
}

type BackgroundsHandler struct {
	db    *database.DB
	blobs *storage.BlobStore
	hub   *websocket.Hub
}

func NewBackgroundsHandler(db *database.DB, blobs *storage.BlobStore, hub *websocket.Hub) *BackgroundsHandler {
	return &BackgroundsHandler{
		db:    db,
		blobs: blobs,
		hub:   hub,
	}
}

func (h *BackgroundsHandler) GetBackgrounds(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, url, created_at
		 FROM backgrounds
		 ORDER BY created_at DESC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch backgrounds"})
		return
	}
	defer rows.Close()

	backgrounds := []models.Background{}
	for rows.Next() {
		var background models.Background
		if err := rows.Scan(&background.ID, &background.URL, &background.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan background"})
			return
		}
		backgrounds = append(backgrounds, background)
	}

	c.JSON(http.StatusOK, gin.H{
		"backgrounds": backgrounds,
		"defaults":    defaultBackgrounds,
	})
}

// UploadBackground stores the file blob, then writes the row. If the row
// insert fails after a successful upload, the blob is removed so nothing
// is left orphaned in the bucket.
func (h *BackgroundsHandler) UploadBackground(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read file"})
		return
	}
	defer file.Close()

	key := storage.ObjectKey(time.Now(), fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	if err := h.blobs.Upload(c.Request.Context(), key, contentType, file); err != nil {
		log.Printf("Background upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading background"})
		return
	}

	publicURL := h.blobs.PublicURL(key)

	var background models.Background
	err = h.db.QueryRow(context.Background(),
		`INSERT INTO backgrounds (url)
		 VALUES ($1)
		 RETURNING id, url, created_at`,
		publicURL).Scan(&background.ID, &background.URL, &background.CreatedAt)

	if err != nil {
		// Compensate: don't leave an orphaned blob behind the failed row
		if removeErr := h.blobs.Remove(context.Background(), key); removeErr != nil {
			log.Printf("Failed to remove orphaned blob %s: %v", key, removeErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading background"})
		return
	}

	h.hub.BroadcastRowChange(websocket.EventRowInsert, "backgrounds", background)

	c.JSON(http.StatusCreated, background)
}

func (h *BackgroundsHandler) DeleteBackground(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid background ID"})
		return
	}

	var url string
	err = h.db.QueryRow(context.Background(),
		"DELETE FROM backgrounds WHERE id = $1 RETURNING url", id).Scan(&url)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Background not found"})
		return
	}

	// Only our own bucket objects are removed; external URLs stay put
	if key, ok := h.blobs.KeyFromURL(url); ok {
		if err := h.blobs.Remove(context.Background(), key); err != nil {
			log.Printf("Failed to remove blob %s: %v", key, err)
		}
	}

	h.hub.BroadcastRowChange(websocket.EventRowDelete, "backgrounds", gin.H{"id": id})

	c.JSON(http.StatusOK, gin.H{"message": "Background deleted successfully"})
}
