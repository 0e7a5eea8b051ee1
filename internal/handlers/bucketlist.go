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

type BucketListHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewBucketListHandler(db *database.DB) *BucketListHandler {
	return &BucketListHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *BucketListHandler) GetItems(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, text, completed, created_at
		 FROM bucketlist
		 ORDER BY created_at DESC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bucket list"})
		return
	}
	defer rows.Close()

	items := []models.BucketItem{}
	for rows.Next() {
		var item models.BucketItem
		if err := rows.Scan(&item.ID, &item.Text, &item.Completed, &item.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan item"})
			return
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *BucketListHandler) CreateItem(c *gin.Context) {
	var req models.CreateBucketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.BucketItem
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO bucketlist (text, completed)
		 VALUES ($1, false)
		 RETURNING id, text, completed, created_at`,
		req.Text).Scan(&item.ID, &item.Text, &item.Completed, &item.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ToggleItem flips the completed flag to the value the client sent. The
// client applies the flip optimistically before this call returns.
func (h *BucketListHandler) ToggleItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req models.ToggleBucketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var item models.BucketItem
	err = h.db.QueryRow(context.Background(),
		`UPDATE bucketlist SET completed = $1
		 WHERE id = $2
		 RETURNING id, text, completed, created_at`,
		req.Completed, id).Scan(&item.ID, &item.Text, &item.Completed, &item.CreatedAt)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *BucketListHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM bucketlist WHERE id = $1", id)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
