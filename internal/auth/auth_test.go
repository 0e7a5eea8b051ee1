package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"us-two/internal/config"
	"us-two/internal/models"
)

func testManager() *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: "1h",
	})
}

func TestTokenRoundtrip(t *testing.T) {
	manager := testManager()
	user := &models.User{ID: 7, Email: "a@example.com"}

	token, err := manager.GenerateToken(user)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	manager := testManager()
	other := NewJWTManager(config.JWTConfig{Secret: "different", ExpiresIn: "1h"})

	token, err := manager.GenerateToken(&models.User{ID: 1, Email: "a@example.com"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestExpiresInDaySuffix(t *testing.T) {
	manager := NewJWTManager(config.JWTConfig{Secret: "s", ExpiresIn: "30d"})
	assert.Equal(t, 30*24*time.Hour, manager.expiresIn)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

func setupMiddlewareRouter(manager *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTMiddleware(manager))
	router.GET("/protected", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		email, _ := GetUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})
	return router
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	manager := testManager()
	router := setupMiddlewareRouter(manager)

	token, err := manager.GenerateToken(&models.User{ID: 3, Email: "b@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":3`)
}

func TestMiddlewareAcceptsQueryToken(t *testing.T) {
	manager := testManager()
	router := setupMiddlewareRouter(manager)

	token, err := manager.GenerateToken(&models.User{ID: 4, Email: "c@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	router := setupMiddlewareRouter(testManager())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
