package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"us-two/internal/models"
	"us-two/internal/storage"
)

// MediaHandler uploads a photo or video blob and hands back its public
// URL. The caller writes the domain row (memory, background) as a second
// step with that URL as the media field.
type MediaHandler struct {
	blobs *storage.BlobStore
}

func NewMediaHandler(blobs *storage.BlobStore) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

func (h *MediaHandler) Upload(c *gin.Context) {
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
		log.Printf("Media upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not upload file"})
		return
	}

	url := h.blobs.PublicURL(key)

	c.JSON(http.StatusCreated, gin.H{
		"url":        url,
		"media_type": models.ClassifyMedia(url),
	})
}
