package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"us-two/internal/database"
	"us-two/internal/models"
)

type WishlistHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewWishlistHandler(db *database.DB) *WishlistHandler {
	return &WishlistHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *WishlistHandler) GetItems(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, name, url, price, note, created_at
		 FROM wishlist
		 ORDER BY created_at DESC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}
	defer rows.Close()

	items := []models.WishlistItem{}
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.ID, &item.Name, &item.URL, &item.Price, &item.Note, &item.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan item"})
			return
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *WishlistHandler) CreateItem(c *gin.Context) {
	var req models.CreateWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Ensure URL has protocol
	url := req.URL
	if url != "" && !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	var item models.WishlistItem
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO wishlist (name, url, price, note)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, url, price, note, created_at`,
		req.Name, url, req.Price, req.Note).Scan(
		&item.ID, &item.Name, &item.URL, &item.Price, &item.Note, &item.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *WishlistHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM wishlist WHERE id = $1", id)

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
