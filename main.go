package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"example.com/socialnet/cmd/server"
	config "example.com/socialnet/internal/init"
	"example.com/socialnet/internal/store"
)

func main() {
	// Initialize application configuration
	cfg := config.Init()

	// Open the SQLite store, creating schema and seed data on first run
	st, err := store.New()
	if err != nil {
		log.Fatalf("Store initialization failed: %v", err)
	}
	defer st.Close()

	// Setup OS signal handling for graceful shutdown (SIGINT, SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Serve HTTP until a shutdown signal arrives
	server.Run(ctx, st, cfg.ServerAddr)

	log.Println("Shutdown completed")
}
