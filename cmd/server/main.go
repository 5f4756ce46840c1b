// Package main implements the entry point for the Triquetra API server, which
// turns a text prompt into images styled for three parallel worlds.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// main loads configuration, sets up logging, builds the generation service
// and serves HTTP until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx)
	if err != nil {
		log.Printf("Failed to initialize application: %v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		app.logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
