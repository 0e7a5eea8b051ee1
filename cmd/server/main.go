package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"us-two/internal/api"
	"us-two/internal/config"
	"us-two/internal/database"
	"us-two/internal/storage"
	"us-two/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, cfg.Database); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	blobs, err := storage.NewBlobStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Blob store setup failed: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	router := api.SetupRouter(db, blobs, hub, cfg)
	server := newServer(cfg.Port, router)

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := shutdownOnSignal(ctx, server); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func newServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}
}

// shutdownOnSignal blocks until ctx is cancelled (SIGINT/SIGTERM), then
// drains in-flight requests before the process exits. The pool is closed
// by main's defer once the drain completes.
func shutdownOnSignal(ctx context.Context, server *http.Server) error {
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
