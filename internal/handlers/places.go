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

type PlacesHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewPlacesHandler(db *database.DB) *PlacesHandler {
	return &PlacesHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *PlacesHandler) GetPlaces(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, name, date, notes, created_at
		 FROM places
		 ORDER BY created_at DESC`)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch places"})
		return
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		var place models.Place
		if err := rows.Scan(&place.ID, &place.Name, &place.Date, &place.Notes, &place.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan place"})
			return
		}
		places = append(places, place)
	}

	c.JSON(http.StatusOK, gin.H{"places": places})
}

func (h *PlacesHandler) CreatePlace(c *gin.Context) {
	var req models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var place models.Place
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO places (name, date, notes)
		 VALUES ($1, $2::date, $3)
		 RETURNING id, name, date, notes, created_at`,
		req.Name, req.Date, req.Notes).Scan(
		&place.ID, &place.Name, &place.Date, &place.Notes, &place.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create place"})
		return
	}

	c.JSON(http.StatusCreated, place)
}

func (h *PlacesHandler) DeletePlace(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM places WHERE id = $1", id)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete place"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place deleted successfully"})
}
