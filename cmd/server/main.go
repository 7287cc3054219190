package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/myprofile/internal/config"
	"github.com/nfrund/myprofile/internal/logging"
	"github.com/nfrund/myprofile/internal/server"
)

func main() {
	cfg := config.New()
	logging.New() // Initialize the structured logger

	if err := cfg.ValidateServer(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Wait for interrupt signal to gracefully shut down the server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, cleanup, err := server.Assemble(ctx, cfg)
	if err != nil {
		slog.Error("Failed to assemble server", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := s.Start(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
