package api

import (
	"github.com/gin-gonic/gin"

	"us-two/internal/auth"
	"us-two/internal/config"
	"us-two/internal/database"
	"us-two/internal/handlers"
	"us-two/internal/storage"
	"us-two/internal/websocket"
)

func SetupRouter(db *database.DB, blobs *storage.BlobStore, hub *websocket.Hub, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Custom CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, jwtManager, cfg)
	memoriesHandler := handlers.NewMemoriesHandler(db)
	bucketListHandler := handlers.NewBucketListHandler(db)
	countdownHandler := handlers.NewCountdownHandler(db)
	lettersHandler := handlers.NewLettersHandler(db)
	placesHandler := handlers.NewPlacesHandler(db)
	wishlistHandler := handlers.NewWishlistHandler(db)
	chatHandler := handlers.NewChatHandler(db, hub)
	backgroundsHandler := handlers.NewBackgroundsHandler(db, blobs, hub)
	songHandler := handlers.NewSongHandler(db)
	dateIdeasHandler := handlers.NewDateIdeasHandler(db)
	mediaHandler := handlers.NewMediaHandler(blobs)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Public routes
	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(jwtManager))
	{
		protected.POST("/auth/unlock", authHandler.Unlock)
		protected.GET("/auth/me", authHandler.Me)

		memories := protected.Group("/memories")
		{
			memories.GET("", memoriesHandler.GetMemories)
			memories.POST("", memoriesHandler.CreateMemory)
			memories.DELETE("/:id", memoriesHandler.DeleteMemory)
		}

		bucketlist := protected.Group("/bucketlist")
		{
			bucketlist.GET("", bucketListHandler.GetItems)
			bucketlist.POST("", bucketListHandler.CreateItem)
			bucketlist.PUT("/:id", bucketListHandler.ToggleItem)
			bucketlist.DELETE("/:id", bucketListHandler.DeleteItem)
		}

		countdown := protected.Group("/countdown")
		{
			countdown.GET("", countdownHandler.GetEvents)
			countdown.POST("", countdownHandler.CreateEvent)
			countdown.DELETE("/:id", countdownHandler.DeleteEvent)
		}

		letters := protected.Group("/letters")
		{
			letters.GET("", lettersHandler.GetLetters)
			letters.POST("", lettersHandler.CreateLetter)
			letters.DELETE("/:id", lettersHandler.DeleteLetter)
		}

		places := protected.Group("/places")
		{
			places.GET("", placesHandler.GetPlaces)
			places.POST("", placesHandler.CreatePlace)
			places.DELETE("/:id", placesHandler.DeletePlace)
		}

		wishlist := protected.Group("/wishlist")
		{
			wishlist.GET("", wishlistHandler.GetItems)
			wishlist.POST("", wishlistHandler.CreateItem)
			wishlist.DELETE("/:id", wishlistHandler.DeleteItem)
		}

		chat := protected.Group("/chat")
		{
			chat.GET("", chatHandler.GetMessages)
			chat.POST("", chatHandler.SendMessage)
		}

		backgrounds := protected.Group("/backgrounds")
		{
			backgrounds.GET("", backgroundsHandler.GetBackgrounds)
			backgrounds.POST("", backgroundsHandler.UploadBackground)
			backgrounds.DELETE("/:id", backgroundsHandler.DeleteBackground)
		}

		song := protected.Group("/song")
		{
			song.GET("", songHandler.GetSong)
			song.PUT("", songHandler.SetSong)
		}

		dateideas := protected.Group("/dateideas")
		{
			dateideas.GET("", dateIdeasHandler.GetIdeas)
			dateideas.GET("/random", dateIdeasHandler.GetRandomIdea)
			dateideas.POST("", dateIdeasHandler.CreateIdea)
		}

		protected.POST("/media", mediaHandler.Upload)

		protected.GET("/ws", wsHandler.HandleWebSocket)
		protected.GET("/online", wsHandler.GetOnlineUsers)
	}

	return router
}
